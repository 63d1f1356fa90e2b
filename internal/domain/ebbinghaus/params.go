package ebbinghaus

import (
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling engine.
type Params struct {
	// Table is the interval ladder.
	Table Table

	// TierPolicy caps intervals per subscription tier.
	TierPolicy *TierPolicy

	// InitialIntervalDays is the gap between content creation and the first
	// review. The first scheduling event never consults the ladder: there is
	// no prior outcome to react to. 0 means due the same day, 1 the next day.
	InitialIntervalDays int

	// DuplicateWindow is how soon after a completion a second completion of
	// the same schedule is rejected as a duplicate.
	DuplicateWindow time.Duration
}

// ParamsConfig allows overriding the defaults when creating a Params
// instance. Zero values keep the corresponding default.
type ParamsConfig struct {
	Table                  []int
	TierMaxDays            map[domain.Tier]int
	InitialIntervalDays    int
	DuplicateWindowSeconds int
}

// NewDefaultParams creates a Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		Table:               DefaultTable,
		TierPolicy:          NewDefaultTierPolicy(),
		InitialIntervalDays: 1,
		DuplicateWindow:     60 * time.Second,
	}
}

// NewParams creates a Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.Table) > 0 {
		params.Table = Table(config.Table)
	}

	if len(config.TierMaxDays) > 0 {
		params.TierPolicy = NewTierPolicy(config.TierMaxDays)
	}

	if config.InitialIntervalDays > 0 {
		params.InitialIntervalDays = config.InitialIntervalDays
	}

	if config.DuplicateWindowSeconds > 0 {
		params.DuplicateWindow = time.Duration(config.DuplicateWindowSeconds) * time.Second
	}

	return params
}
