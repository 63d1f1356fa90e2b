package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tier identifies a subscription level. The tier caps how far into the
// future a review may be scheduled; it is the only scheduling input the
// billing collaborator owns.
type Tier string

// Possible subscription tiers
const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// Subscription validation errors
var (
	ErrEmptySubscriptionUserID = errors.New("subscription user ID cannot be empty")
	ErrInvalidMaxInterval      = errors.New("subscription max interval must be greater than 0")
)

// IsValid reports whether the tier is one of free, basic, pro.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierBasic, TierPro:
		return true
	default:
		return false
	}
}

// Subscription is a read-only input to the scheduler. Its lifecycle
// (creation, upgrade, expiry) is owned by the billing collaborator; this
// service never writes it.
type Subscription struct {
	UserID          uuid.UUID  `json:"user_id"`
	Tier            Tier       `json:"tier"`
	MaxIntervalDays int        `json:"max_interval_days"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Validate checks if the Subscription has valid data.
func (s *Subscription) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySubscriptionUserID
	}

	if !s.Tier.IsValid() {
		return ErrInvalidTier
	}

	if s.MaxIntervalDays <= 0 {
		return ErrInvalidMaxInterval
	}

	return nil
}

// EffectiveTier returns the tier the scheduler should honor at the given
// instant. An expired subscription degrades to free; the billing collaborator
// owns the row and may renew it at any time, so expiry is resolved lazily at
// read time rather than by mutating the record.
func (s *Subscription) EffectiveTier(now time.Time) Tier {
	if s == nil {
		return TierFree
	}
	if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
		return TierFree
	}
	return s.Tier
}
