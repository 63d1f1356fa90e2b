package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// PostgresScheduleStore implements the store.ScheduleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of the
// ScheduleStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

const scheduleColumns = `
	user_id, content_id, ladder_index, next_review_date, is_active,
	initial_review_completed, last_reviewed_at, created_at, updated_at`

// Create implements store.ScheduleStore.Create
// Returns store.ErrScheduleExists if a schedule already exists for the
// (user, content) pair, and store.ErrInvalidEntity on foreign key violations.
func (s *PostgresScheduleStore) Create(ctx context.Context, schedule *domain.ReviewSchedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during create",
			slog.String("error", err.Error()),
			slog.String("content_id", schedule.ContentID.String()))
		return err
	}

	query := `
		INSERT INTO review_schedules
			(user_id, content_id, ladder_index, next_review_date, is_active,
			 initial_review_completed, last_reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		schedule.UserID,
		schedule.ContentID,
		schedule.LadderIndex,
		schedule.NextReviewDate,
		schedule.IsActive,
		schedule.InitialReviewCompleted,
		nullableTime(schedule.LastReviewedAt),
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("schedule already exists",
				slog.String("user_id", schedule.UserID.String()),
				slog.String("content_id", schedule.ContentID.String()))
			return store.ErrScheduleExists
		}

		log.Error("failed to create schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", schedule.UserID.String()),
			slog.String("content_id", schedule.ContentID.String()))
		return MapError(err)
	}

	log.Info("schedule created successfully",
		slog.String("user_id", schedule.UserID.String()),
		slog.String("content_id", schedule.ContentID.String()),
		slog.Time("next_review_date", schedule.NextReviewDate))
	return nil
}

// Get implements store.ScheduleStore.Get
// Returns store.ErrScheduleNotFound if the schedule does not exist.
func (s *PostgresScheduleStore) Get(ctx context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM review_schedules
		WHERE user_id = $1 AND content_id = $2
	`
	return s.queryOne(ctx, query, userID, contentID)
}

// GetForUpdate implements store.ScheduleStore.GetForUpdate
// It locks the row with SELECT ... FOR UPDATE so concurrent completions of
// the same schedule serialize. Must be called inside a transaction.
// Returns store.ErrScheduleNotFound if the schedule does not exist.
func (s *PostgresScheduleStore) GetForUpdate(ctx context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM review_schedules
		WHERE user_id = $1 AND content_id = $2
		FOR UPDATE
	`
	return s.queryOne(ctx, query, userID, contentID)
}

func (s *PostgresScheduleStore) queryOne(ctx context.Context, query string, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var schedule domain.ReviewSchedule
	var lastReviewedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID, contentID).Scan(
		&schedule.UserID,
		&schedule.ContentID,
		&schedule.LadderIndex,
		&schedule.NextReviewDate,
		&schedule.IsActive,
		&schedule.InitialReviewCompleted,
		&lastReviewedAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule not found",
				slog.String("user_id", userID.String()),
				slog.String("content_id", contentID.String()))
			return nil, store.ErrScheduleNotFound
		}
		log.Error("failed to get schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()))
		return nil, MapError(err)
	}

	if lastReviewedAt.Valid {
		schedule.LastReviewedAt = lastReviewedAt.Time
	}

	return &schedule, nil
}

// Update implements store.ScheduleStore.Update
// Returns store.ErrScheduleNotFound if the schedule does not exist.
func (s *PostgresScheduleStore) Update(ctx context.Context, schedule *domain.ReviewSchedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during update",
			slog.String("error", err.Error()),
			slog.String("content_id", schedule.ContentID.String()))
		return err
	}

	query := `
		UPDATE review_schedules
		SET ladder_index = $1, next_review_date = $2, is_active = $3,
		    initial_review_completed = $4, last_reviewed_at = $5, updated_at = $6
		WHERE user_id = $7 AND content_id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		schedule.LadderIndex,
		schedule.NextReviewDate,
		schedule.IsActive,
		schedule.InitialReviewCompleted,
		nullableTime(schedule.LastReviewedAt),
		schedule.UpdatedAt,
		schedule.UserID,
		schedule.ContentID,
	)

	if err != nil {
		log.Error("failed to update schedule",
			slog.String("error", err.Error()),
			slog.String("user_id", schedule.UserID.String()),
			slog.String("content_id", schedule.ContentID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("content_id", schedule.ContentID.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("schedule not found for update",
			slog.String("user_id", schedule.UserID.String()),
			slog.String("content_id", schedule.ContentID.String()))
		return store.ErrScheduleNotFound
	}

	log.Info("schedule updated successfully",
		slog.String("user_id", schedule.UserID.String()),
		slog.String("content_id", schedule.ContentID.String()),
		slog.Int("ladder_index", schedule.LadderIndex),
		slog.Time("next_review_date", schedule.NextReviewDate))
	return nil
}

// DueToday implements store.ScheduleStore.DueToday
// The second clause of the WHERE surfaces schedules whose next review date
// lies further out than the caller's current tier cap permits: those were
// scheduled under a roomier cap before a downgrade, and must be treated as
// immediately due rather than becoming unreachable.
func (s *PostgresScheduleStore) DueToday(
	ctx context.Context,
	userID uuid.UUID,
	asOfLocalDate time.Time,
	capDays int,
) ([]*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + scheduleColumns + `
		FROM review_schedules
		WHERE user_id = $1
		  AND is_active
		  AND (next_review_date <= $2::date OR next_review_date > $2::date + $3::int)
		ORDER BY next_review_date, content_id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, asOfLocalDate, capDays)
	if err != nil {
		log.Error("failed to query due schedules",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var schedules []*domain.ReviewSchedule
	for rows.Next() {
		var schedule domain.ReviewSchedule
		var lastReviewedAt sql.NullTime

		err := rows.Scan(
			&schedule.UserID,
			&schedule.ContentID,
			&schedule.LadderIndex,
			&schedule.NextReviewDate,
			&schedule.IsActive,
			&schedule.InitialReviewCompleted,
			&lastReviewedAt,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan schedule row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		if lastReviewedAt.Valid {
			schedule.LastReviewedAt = lastReviewedAt.Time
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if schedules == nil {
		schedules = []*domain.ReviewSchedule{}
	}

	log.Debug("found due schedules",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(schedules)))
	return schedules, nil
}

// Deactivate implements store.ScheduleStore.Deactivate
// Returns store.ErrScheduleNotFound if no schedule exists for the content.
func (s *PostgresScheduleStore) Deactivate(ctx context.Context, contentID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE review_schedules
		SET is_active = FALSE, updated_at = $1
		WHERE content_id = $2 AND is_active
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), contentID)
	if err != nil {
		log.Error("failed to deactivate schedule",
			slog.String("error", err.Error()),
			slog.String("content_id", contentID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("content_id", contentID.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("no active schedule to deactivate",
			slog.String("content_id", contentID.String()))
		return store.ErrScheduleNotFound
	}

	log.Info("schedule deactivated",
		slog.String("content_id", contentID.String()))
	return nil
}

// WithTx implements store.ScheduleStore.WithTx
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableTime converts a zero time to a SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
