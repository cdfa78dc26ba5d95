// Package rotation classifies meals by how recently they were cooked.
package rotation

import "time"

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

const dayMS = int64(24 * time.Hour / time.Millisecond)

const (
	// highWindowDays is the inclusive recency window for the high tier.
	highWindowDays = 14
	// mediumWindowDays is the inclusive recency window for the medium tier.
	mediumWindowDays = 60

	// Default lastCooked offsets applied when a user picks a tier by hand.
	// Chosen to land comfortably inside the target tier's window.
	mediumDefaultDays = 21
	lowDefaultDays    = 70
)

// Classify maps a last-cooked timestamp (epoch ms) to a tier. The caller
// supplies now so results are deterministic under test.
func Classify(lastCooked int64, now time.Time) Tier {
	elapsed := now.UnixMilli() - lastCooked
	switch {
	case elapsed <= highWindowDays*dayMS:
		return TierHigh
	case elapsed <= mediumWindowDays*dayMS:
		return TierMedium
	default:
		return TierLow
	}
}

// DefaultLastCooked returns the synthetic lastCooked timestamp for a meal
// whose tier was set manually without cooking history.
func DefaultLastCooked(tier Tier, now time.Time) int64 {
	switch tier {
	case TierMedium:
		return now.UnixMilli() - mediumDefaultDays*dayMS
	case TierLow:
		return now.UnixMilli() - lowDefaultDays*dayMS
	default:
		return now.UnixMilli()
	}
}

// ResolveLastCooked decides the lastCooked value to persist when a meal is
// saved with an explicitly selected tier. If the record already classifies
// into the selected tier its timestamp is kept, so editing unrelated fields
// never makes a meal jump between tiers.
func ResolveLastCooked(previous int64, isNew bool, selected Tier, now time.Time) int64 {
	if !isNew && Classify(previous, now) == selected {
		return previous
	}
	return DefaultLastCooked(selected, now)
}
