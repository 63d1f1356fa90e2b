package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/platform/rediscache"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

const localDateFormat = "2006-01-02"

// Cache is the slice of the Redis cache the dashboard needs. It is an
// interface so tests can substitute an in-memory fake.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Verify interface compliance at compile time
var _ DashboardService = (*dashboardServiceImpl)(nil)

// dashboardServiceImpl implements the DashboardService interface.
type dashboardServiceImpl struct {
	history store.HistoryStore
	users   store.UserStore
	cache   Cache
	logger  *slog.Logger
}

// NewDashboardService creates a new DashboardService implementation.
// cache may be nil, in which case every read recomputes from the history log.
func NewDashboardService(
	history store.HistoryStore,
	users store.UserStore,
	cache Cache,
	logger *slog.Logger,
) DashboardService {
	// Validate inputs
	if history == nil {
		panic("history cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &dashboardServiceImpl{
		history: history,
		users:   users,
		cache:   cache,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// Summary implements DashboardService.Summary.
func (s *dashboardServiceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	windowDays int,
) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	windowDays = clampWindow(windowDays, DefaultSummaryDays, MaxSummaryDays)

	var cached Summary
	key := rediscache.SummaryKey(userID)
	if s.cacheGet(ctx, key, &cached) && cached.WindowDays == windowDays {
		return &cached, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	loc := user.Location()
	today := localMidnight(now, loc)

	// Read once, far enough back to serve the streak as well.
	lookback := windowDays
	if lookback < streakLookbackDays {
		lookback = streakLookbackDays
	}
	from := today.AddDate(0, 0, -(lookback - 1))
	to := today.AddDate(0, 0, 1)

	entries, err := s.history.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Error("failed to read review history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to read review history: %w", err)
	}

	summary := &Summary{WindowDays: windowDays}
	windowStart := today.AddDate(0, 0, -(windowDays - 1))
	activeDays := make(map[string]bool)

	for _, entry := range entries {
		day := localMidnight(entry.CompletedAt, loc)
		activeDays[day.Format(localDateFormat)] = true

		if day.Before(windowStart) {
			continue
		}
		summary.TotalReviews++
		switch entry.Outcome {
		case domain.ReviewOutcomeRemembered:
			summary.Remembered++
		case domain.ReviewOutcomePartial:
			summary.Partial++
		case domain.ReviewOutcomeForgot:
			summary.Forgot++
		}
	}

	if summary.TotalReviews > 0 {
		summary.SuccessRate = float64(summary.Remembered) / float64(summary.TotalReviews)
	}
	summary.StreakDays = streak(activeDays, today)

	s.cacheSet(ctx, key, summary, rediscache.TTLSummary)
	return summary, nil
}

// Daily implements DashboardService.Daily.
func (s *dashboardServiceImpl) Daily(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	days int,
) ([]DayBucket, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	days = clampWindow(days, DefaultSeriesDays, MaxSeriesDays)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	loc := user.Location()
	today := localMidnight(now, loc)

	var cached []DayBucket
	key := rediscache.DailyKey(userID, today.Format(localDateFormat), days)
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	from := today.AddDate(0, 0, -(days - 1))
	entries, err := s.history.ListRange(ctx, userID, from, today.AddDate(0, 0, 1))
	if err != nil {
		log.Error("failed to read review history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to read review history: %w", err)
	}

	byDay := make(map[string]*DayBucket, days)
	buckets := make([]DayBucket, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format(localDateFormat)
		buckets[i] = DayBucket{Date: date}
		byDay[date] = &buckets[i]
	}

	for _, entry := range entries {
		date := localMidnight(entry.CompletedAt, loc).Format(localDateFormat)
		bucket, ok := byDay[date]
		if !ok {
			continue
		}
		bucket.TotalReviews++
		switch entry.Outcome {
		case domain.ReviewOutcomeRemembered:
			bucket.Remembered++
		case domain.ReviewOutcomePartial:
			bucket.Partial++
		case domain.ReviewOutcomeForgot:
			bucket.Forgot++
		}
	}

	s.cacheSet(ctx, key, buckets, rediscache.TTLSeries)
	return buckets, nil
}

// Weekly implements DashboardService.Weekly.
func (s *dashboardServiceImpl) Weekly(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	weeks int,
) ([]WeekBucket, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	weeks = clampWindow(weeks, DefaultSeriesWeeks, MaxSeriesWeeks)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	loc := user.Location()
	today := localMidnight(now, loc)

	var cached []WeekBucket
	key := rediscache.WeeklyKey(userID, today.Format(localDateFormat), weeks)
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	currentWeek := weekStart(today)
	from := currentWeek.AddDate(0, 0, -7*(weeks-1))
	entries, err := s.history.ListRange(ctx, userID, from, today.AddDate(0, 0, 1))
	if err != nil {
		log.Error("failed to read review history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to read review history: %w", err)
	}

	byWeek := make(map[string]*WeekBucket, weeks)
	buckets := make([]WeekBucket, weeks)
	for i := 0; i < weeks; i++ {
		start := from.AddDate(0, 0, 7*i).Format(localDateFormat)
		buckets[i] = WeekBucket{WeekStart: start}
		byWeek[start] = &buckets[i]
	}

	for _, entry := range entries {
		start := weekStart(localMidnight(entry.CompletedAt, loc)).Format(localDateFormat)
		bucket, ok := byWeek[start]
		if !ok {
			continue
		}
		bucket.TotalReviews++
		switch entry.Outcome {
		case domain.ReviewOutcomeRemembered:
			bucket.Remembered++
		case domain.ReviewOutcomePartial:
			bucket.Partial++
		case domain.ReviewOutcomeForgot:
			bucket.Forgot++
		}
	}

	s.cacheSet(ctx, key, buckets, rediscache.TTLSeries)
	return buckets, nil
}

// InvalidateUser implements DashboardService.InvalidateUser.
func (s *dashboardServiceImpl) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPrefix(ctx, rediscache.UserPrefix(userID))
}

// cacheGet reads a cached aggregate. Any cache failure reads as a miss.
func (s *dashboardServiceImpl) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err != nil {
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed",
				slog.String("error", err.Error()),
				slog.String("key", key))
		}
		return false
	}
	return true
}

// cacheSet stores a computed aggregate. Failures are logged, never surfaced.
func (s *dashboardServiceImpl) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("dashboard cache write failed",
			slog.String("error", err.Error()),
			slog.String("key", key))
	}
}

// streak counts consecutive owner-local days with at least one completion,
// walking back from today. A day without a review so far today does not
// break the streak; it just does not extend it.
func streak(activeDays map[string]bool, today time.Time) int {
	day := today
	if !activeDays[day.Format(localDateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for activeDays[day.Format(localDateFormat)] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// clampWindow normalizes a requested window to [1, max], with def for
// non-positive requests.
func clampWindow(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// localMidnight truncates an instant to the start of its calendar day in
// the given zone.
func localMidnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// weekStart returns the Monday of the week containing the given owner-local
// midnight.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
