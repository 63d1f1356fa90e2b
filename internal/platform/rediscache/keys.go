package rediscache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Key prefixes namespace dashboard cache entries per user so that a single
// prefix scan can invalidate everything a review completion may have changed.
const prefixDashboard = "dashboard:"

// Default TTLs for dashboard aggregates. Entries are also invalidated
// eagerly on review completion, so the TTL only bounds staleness from
// writes the invalidation missed.
const (
	TTLSummary = 5 * time.Minute
	TTLSeries  = 10 * time.Minute
)

// UserPrefix returns the prefix shared by all dashboard keys of a user.
func UserPrefix(userID uuid.UUID) string {
	return prefixDashboard + userID.String() + ":"
}

// SummaryKey is the cache key for a user's dashboard summary.
func SummaryKey(userID uuid.UUID) string {
	return UserPrefix(userID) + "summary"
}

// DailyKey is the cache key for a user's daily review series over the given
// number of trailing days, anchored at the user's local date.
func DailyKey(userID uuid.UUID, localDate string, days int) string {
	return fmt.Sprintf("%sdaily:%s:%d", UserPrefix(userID), localDate, days)
}

// WeeklyKey is the cache key for a user's weekly review series over the
// given number of trailing weeks, anchored at the user's local date.
func WeeklyKey(userID uuid.UUID, localDate string, weeks int) string {
	return fmt.Sprintf("%sweekly:%s:%d", UserPrefix(userID), localDate, weeks)
}
