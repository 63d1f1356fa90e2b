package ebbinghaus

import (
	"github.com/curvelearn/curve-api/internal/domain"
)

// Default per-tier interval caps in days. The free cap is fixed by product
// contract; the pro cap equals the ladder ceiling, so pro schedules are
// effectively uncapped.
const (
	DefaultFreeMaxDays  = 7
	DefaultBasicMaxDays = 30
	DefaultProMaxDays   = 180
)

// TierPolicy maps a subscription tier to the maximum allowed review interval
// in days. Clamping never raises an error: an unknown tier is treated as
// free, the most restrictive cap.
type TierPolicy struct {
	maxDays map[domain.Tier]int
}

// NewDefaultTierPolicy creates a TierPolicy with the default caps.
func NewDefaultTierPolicy() *TierPolicy {
	return &TierPolicy{
		maxDays: map[domain.Tier]int{
			domain.TierFree:  DefaultFreeMaxDays,
			domain.TierBasic: DefaultBasicMaxDays,
			domain.TierPro:   DefaultProMaxDays,
		},
	}
}

// NewTierPolicy creates a TierPolicy with custom caps. Tiers missing from
// the map, or mapped to a non-positive cap, fall back to the default policy.
func NewTierPolicy(maxDays map[domain.Tier]int) *TierPolicy {
	policy := NewDefaultTierPolicy()
	for tier, days := range maxDays {
		if tier.IsValid() && days > 0 {
			policy.maxDays[tier] = days
		}
	}
	return policy
}

// MaxDays returns the maximum interval in days the given tier permits.
// Unknown tiers get the free cap.
func (p *TierPolicy) MaxDays(tier domain.Tier) int {
	if days, ok := p.maxDays[tier]; ok {
		return days
	}
	return p.maxDays[domain.TierFree]
}

// Clamp caps the requested interval at the tier's maximum. It never errors:
// a tier downgrade that strands an existing schedule beyond the new cap is
// resolved lazily the next time the schedule is touched or read.
func (p *TierPolicy) Clamp(requestedDays int, tier domain.Tier) int {
	max := p.MaxDays(tier)
	if requestedDays > max {
		return max
	}
	return requestedDays
}
