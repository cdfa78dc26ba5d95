package rotation

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int64) int64 {
	return testNow.UnixMilli() - d*dayMS
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		lastCooked int64
		want       Tier
	}{
		{"cooked today", testNow.UnixMilli(), TierHigh},
		{"exactly 14 days", daysAgo(14), TierHigh},
		{"14 days and 1ms", daysAgo(14) - 1, TierMedium},
		{"exactly 60 days", daysAgo(60), TierMedium},
		{"60 days and 1ms", daysAgo(60) - 1, TierLow},
		{"never cooked", 0, TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.lastCooked, testNow); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.lastCooked, got, tt.want)
			}
		})
	}
}

func TestClassify_AlwaysReturnsAValidTier(t *testing.T) {
	timestamps := []int64{-1, 0, 1, daysAgo(7), daysAgo(365), testNow.UnixMilli() + dayMS}
	for _, ts := range timestamps {
		tier := Classify(ts, testNow)
		if tier != TierHigh && tier != TierMedium && tier != TierLow {
			t.Errorf("Classify(%d) returned unexpected tier %q", ts, tier)
		}
	}
}

func TestDefaultLastCooked_LandsInsideTargetTier(t *testing.T) {
	for _, tier := range []Tier{TierHigh, TierMedium, TierLow} {
		ts := DefaultLastCooked(tier, testNow)
		if got := Classify(ts, testNow); got != tier {
			t.Errorf("DefaultLastCooked(%v) classifies as %v", tier, got)
		}
	}
}

func TestResolveLastCooked(t *testing.T) {
	existing := daysAgo(5) // classifies high

	t.Run("unchanged tier keeps existing timestamp", func(t *testing.T) {
		if got := ResolveLastCooked(existing, false, TierHigh, testNow); got != existing {
			t.Errorf("got %d, want preserved %d", got, existing)
		}
	})

	t.Run("changed tier assigns default", func(t *testing.T) {
		got := ResolveLastCooked(existing, false, TierLow, testNow)
		if got == existing {
			t.Fatal("timestamp was not reassigned on tier change")
		}
		if Classify(got, testNow) != TierLow {
			t.Errorf("reassigned timestamp classifies as %v, want low", Classify(got, testNow))
		}
	})

	t.Run("new record always gets a default", func(t *testing.T) {
		got := ResolveLastCooked(0, true, TierMedium, testNow)
		if Classify(got, testNow) != TierMedium {
			t.Errorf("new record timestamp classifies as %v, want medium", Classify(got, testNow))
		}
	})
}
