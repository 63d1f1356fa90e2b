package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/domain/ebbinghaus"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// CacheInvalidator drops cached aggregates for a user after a completion
// changes the underlying history. Invalidation failures are logged, never
// surfaced: the cache entries carry a TTL and converge on their own.
type CacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// Content listing page bounds.
const (
	defaultContentPageSize = 50
	maxContentPageSize     = 200
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db            *sql.DB
	contents      store.ContentStore
	schedules     store.ScheduleStore
	history       store.HistoryStore
	subscriptions store.SubscriptionStore
	users         store.UserStore
	scheduler     ebbinghaus.Service
	invalidator   CacheInvalidator
	logger        *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
// invalidator may be nil when no cache is configured.
func NewReviewService(
	db *sql.DB,
	contents store.ContentStore,
	schedules store.ScheduleStore,
	history store.HistoryStore,
	subscriptions store.SubscriptionStore,
	users store.UserStore,
	scheduler ebbinghaus.Service,
	invalidator CacheInvalidator,
	logger *slog.Logger,
) ReviewService {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}
	if contents == nil {
		panic("contents cannot be nil")
	}
	if schedules == nil {
		panic("schedules cannot be nil")
	}
	if history == nil {
		panic("history cannot be nil")
	}
	if subscriptions == nil {
		panic("subscriptions cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:            db,
		contents:      contents,
		schedules:     schedules,
		history:       history,
		subscriptions: subscriptions,
		users:         users,
		scheduler:     scheduler,
		invalidator:   invalidator,
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// CreateContent implements ReviewService.CreateContent.
func (s *reviewServiceImpl) CreateContent(
	ctx context.Context,
	userID uuid.UUID,
	req CreateContentRequest,
) (*domain.Content, *domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	content, err := domain.NewContent(userID, req.Title, req.Body, req.Category, req.Priority)
	if err != nil {
		log.Warn("invalid content",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, nil, &ServiceError{
			Operation: "create_content",
			Message:   "invalid content",
			Err:       err,
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to load content owner",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, nil, fmt.Errorf("failed to load content owner: %w", err)
	}

	dueDate := s.scheduler.InitialDueDate(content.CreatedAt, user.Location())
	schedule, err := domain.NewReviewSchedule(userID, content.ID, dueDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build initial schedule: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.contents.WithTx(tx).Create(ctx, content); err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}
		if err := s.schedules.WithTx(tx).Create(ctx, schedule); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create content with schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("content_id", content.ID.String()))
		return nil, nil, err
	}

	log.Info("content created with initial schedule",
		slog.String("user_id", userID.String()),
		slog.String("content_id", content.ID.String()),
		slog.Time("next_review_date", schedule.NextReviewDate))

	return content, schedule, nil
}

// DeleteContent implements ReviewService.DeleteContent.
func (s *reviewServiceImpl) DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to load content: %w", err)
	}

	if content.UserID != userID {
		log.Warn("user does not own content",
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()),
			slog.String("owner_id", content.UserID.String()))
		return ErrContentNotOwned
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The schedule is deactivated, not deleted: history rows keep
		// pointing at it and dashboard aggregates keep counting them.
		if err := s.schedules.WithTx(tx).Deactivate(ctx, contentID); err != nil &&
			!errors.Is(err, store.ErrScheduleNotFound) {
			return fmt.Errorf("failed to deactivate schedule: %w", err)
		}
		if err := s.contents.WithTx(tx).Delete(ctx, contentID); err != nil {
			return fmt.Errorf("failed to delete content: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete content",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()))
		return err
	}

	log.Info("content deleted and schedule deactivated",
		slog.String("user_id", userID.String()),
		slog.String("content_id", contentID.String()))

	return nil
}

// ListContents implements ReviewService.ListContents.
func (s *reviewServiceImpl) ListContents(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Content, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultContentPageSize
	}
	if limit > maxContentPageSize {
		limit = maxContentPageSize
	}
	if offset < 0 {
		offset = 0
	}

	contents, err := s.contents.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		log.Error("failed to list contents",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}

	return contents, nil
}

// DueToday implements ReviewService.DueToday.
func (s *reviewServiceImpl) DueToday(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*DueItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	tier, err := s.effectiveTier(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	capDays := s.scheduler.Policy().MaxDays(tier)

	// "Due today" is a calendar-day comparison in the owner's zone.
	year, month, day := now.In(user.Location()).Date()
	asOf := time.Date(year, month, day, 0, 0, 0, 0, user.Location())

	schedules, err := s.schedules.DueToday(ctx, userID, asOf, capDays)
	if err != nil {
		log.Error("failed to list due schedules",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list due schedules: %w", err)
	}

	items := make([]*DueItem, 0, len(schedules))
	for _, schedule := range schedules {
		content, err := s.contents.GetByID(ctx, schedule.ContentID)
		if err != nil {
			if errors.Is(err, store.ErrContentNotFound) {
				// Content deleted between the two reads; its schedule is
				// inactive by now, skip it.
				continue
			}
			return nil, fmt.Errorf("failed to load due content: %w", err)
		}
		items = append(items, &DueItem{Content: content, Schedule: schedule})
	}

	log.Debug("due list computed",
		slog.String("user_id", userID.String()),
		slog.String("tier", string(tier)),
		slog.Int("count", len(items)))

	return items, nil
}

// CompleteReview implements ReviewService.CompleteReview.
func (s *reviewServiceImpl) CompleteReview(
	ctx context.Context,
	userID, contentID uuid.UUID,
	req CompleteReviewRequest,
	now time.Time,
) (*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !req.Outcome.IsValid() {
		log.Warn("invalid review outcome",
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()),
			slog.String("outcome", string(req.Outcome)))
		return nil, ErrInvalidOutcome
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// The tier is read once at transition time. A later up- or downgrade
	// does not rewrite this completion's result.
	tier, err := s.effectiveTier(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var updated *domain.ReviewSchedule
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSchedules := s.schedules.WithTx(tx)
		txHistory := s.history.WithTx(tx)

		// Row lock serializes concurrent completions of the same schedule.
		schedule, err := txSchedules.GetForUpdate(ctx, userID, contentID)
		if err != nil {
			if errors.Is(err, store.ErrScheduleNotFound) {
				return s.classifyMissingSchedule(ctx, userID, contentID)
			}
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		if !schedule.IsActive {
			return ErrScheduleUnavailable
		}

		// The history count inside the transaction is the duplicate guard;
		// the second of two concurrent completions sees the first's entry
		// once the lock is released.
		n, err := txHistory.CountSince(ctx, userID, contentID, now.Add(-s.scheduler.DuplicateWindow()))
		if err != nil {
			return fmt.Errorf("failed to check for duplicate completion: %w", err)
		}
		if n > 0 {
			return ErrDuplicateCompletion
		}

		next, err := s.scheduler.NextSchedule(schedule, req.Outcome, now, user.Location(), tier)
		if err != nil {
			return fmt.Errorf("failed to compute next schedule: %w", err)
		}

		if err := txSchedules.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}

		entry, err := domain.NewReviewHistoryEntry(userID, contentID, req.Outcome, now, req.TimeSpentSeconds)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}
		if err := txHistory.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append history entry: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) ||
			errors.Is(err, ErrScheduleUnavailable) ||
			errors.Is(err, ErrDuplicateCompletion) ||
			errors.Is(err, ErrContentNotOwned) {
			return nil, err
		}
		log.Error("failed to complete review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()))
		return nil, err
	}

	log.Info("review completed",
		slog.String("user_id", userID.String()),
		slog.String("content_id", contentID.String()),
		slog.String("outcome", string(req.Outcome)),
		slog.Int("ladder_index", updated.LadderIndex),
		slog.Time("next_review_date", updated.NextReviewDate))

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateUser(ctx, userID); err != nil {
			log.Warn("failed to invalidate dashboard cache",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
	}

	return updated, nil
}

// classifyMissingSchedule distinguishes the HTTP-level reasons a schedule
// lookup can miss: the content never existed, it belongs to someone else, or
// its schedule is gone.
func (s *reviewServiceImpl) classifyMissingSchedule(
	ctx context.Context,
	userID, contentID uuid.UUID,
) error {
	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to load content: %w", err)
	}
	if content.UserID != userID {
		return ErrContentNotOwned
	}
	return ErrScheduleNotFound
}

// effectiveTier resolves the tier the scheduler should honor right now.
// A missing subscription row reads as the free tier.
func (s *reviewServiceImpl) effectiveTier(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (domain.Tier, error) {
	sub, err := s.subscriptions.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSubscriptionNotFound) {
			return domain.TierFree, nil
		}
		return "", fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub.EffectiveTier(now), nil
}
