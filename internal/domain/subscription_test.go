package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSubscriptionValidate(t *testing.T) {
	valid := Subscription{
		UserID:          uuid.New(),
		Tier:            TierPro,
		MaxIntervalDays: 180,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	noUser := valid
	noUser.UserID = uuid.Nil
	if err := noUser.Validate(); err != ErrEmptySubscriptionUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptySubscriptionUserID, err)
	}

	badTier := valid
	badTier.Tier = "enterprise"
	if err := badTier.Validate(); err != ErrInvalidTier {
		t.Errorf("Expected error %v, got %v", ErrInvalidTier, err)
	}

	badCap := valid
	badCap.MaxIntervalDays = 0
	if err := badCap.Validate(); err != ErrInvalidMaxInterval {
		t.Errorf("Expected error %v, got %v", ErrInvalidMaxInterval, err)
	}
}

func TestEffectiveTier(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		sub  *Subscription
		want Tier
	}{
		{
			name: "nil subscription reads as free",
			sub:  nil,
			want: TierFree,
		},
		{
			name: "active pro",
			sub:  &Subscription{Tier: TierPro, ExpiresAt: &future},
			want: TierPro,
		},
		{
			name: "expired basic degrades to free",
			sub:  &Subscription{Tier: TierBasic, ExpiresAt: &past},
			want: TierFree,
		},
		{
			name: "no expiry never degrades",
			sub:  &Subscription{Tier: TierBasic},
			want: TierBasic,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.EffectiveTier(now); got != tc.want {
				t.Errorf("EffectiveTier() = %v, want %v", got, tc.want)
			}
		})
	}
}
