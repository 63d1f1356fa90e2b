// Package dashboard computes read-only derived statistics from the review
// history: success rate, streaks, and daily/weekly series. Aggregates are
// eventually consistent with the history log; results are cached in Redis
// with a short TTL and invalidated on review completion, and stale-by-seconds
// reads are acceptable.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Window bounds. Requests outside these are clamped, not rejected; the
// dashboard is a lossy view, not a reporting API.
const (
	DefaultSummaryDays = 30
	MaxSummaryDays     = 365
	DefaultSeriesDays  = 14
	MaxSeriesDays      = 90
	DefaultSeriesWeeks = 8
	MaxSeriesWeeks     = 52

	// streakLookbackDays bounds how far back the streak computation reads.
	// A streak longer than a year reports as a year.
	streakLookbackDays = 365
)

// Summary is the headline dashboard view over a trailing window of
// owner-local days.
type Summary struct {
	WindowDays   int     `json:"window_days"`
	TotalReviews int     `json:"total_reviews"`
	Remembered   int     `json:"remembered"`
	Partial      int     `json:"partial"`
	Forgot       int     `json:"forgot"`
	SuccessRate  float64 `json:"success_rate"` // remembered / total, 0 when empty
	StreakDays   int     `json:"streak_days"`
}

// DayBucket is one owner-local calendar day of review activity.
type DayBucket struct {
	Date         string `json:"date"` // YYYY-MM-DD in the owner's zone
	TotalReviews int    `json:"total_reviews"`
	Remembered   int    `json:"remembered"`
	Partial      int    `json:"partial"`
	Forgot       int    `json:"forgot"`
}

// WeekBucket is one owner-local calendar week of review activity. Weeks
// start on Monday.
type WeekBucket struct {
	WeekStart    string `json:"week_start"` // YYYY-MM-DD of the Monday
	TotalReviews int    `json:"total_reviews"`
	Remembered   int    `json:"remembered"`
	Partial      int    `json:"partial"`
	Forgot       int    `json:"forgot"`
}

// ErrUserNotFound indicates the dashboard owner does not exist.
var ErrUserNotFound = errors.New("user not found")

// DashboardService provides the aggregated dashboard views.
type DashboardService interface {
	// Summary computes totals, success rate and streak over the trailing
	// windowDays owner-local days ending today. windowDays <= 0 uses the
	// default window.
	Summary(ctx context.Context, userID uuid.UUID, now time.Time, windowDays int) (*Summary, error)

	// Daily returns one bucket per owner-local day for the trailing days,
	// oldest first, including empty days.
	Daily(ctx context.Context, userID uuid.UUID, now time.Time, days int) ([]DayBucket, error)

	// Weekly returns one bucket per owner-local week for the trailing
	// weeks, oldest first, including empty weeks.
	Weekly(ctx context.Context, userID uuid.UUID, now time.Time, weeks int) ([]WeekBucket, error)

	// InvalidateUser drops every cached aggregate for the user. Called
	// after a review completion changes the underlying history.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
