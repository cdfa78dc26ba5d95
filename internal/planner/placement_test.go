package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattmelloy/rotation-app/internal/models"
)

func TestAutoAssign_PrefersFirstEmptyDay(t *testing.T) {
	slots := models.EmptyWeek()

	day, err := AutoAssign(slots, "m1")
	if err != nil {
		t.Fatalf("AutoAssign failed: %v", err)
	}
	if day != 0 {
		t.Errorf("first assignment went to day %d, want 0", day)
	}
	if len(slots[0].MealIDs) != 1 || slots[0].MealIDs[0] != "m1" {
		t.Errorf("day 0 slots = %v", slots[0].MealIDs)
	}
}

func TestAutoAssign_FillsWeekThenFails(t *testing.T) {
	slots := models.EmptyWeek()

	// 3 per day across 7 days succeeds.
	for i := 0; i < 21; i++ {
		if _, err := AutoAssign(slots, fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("assignment %d failed: %v", i, err)
		}
	}
	for i, slot := range slots {
		if len(slot.MealIDs) != 3 {
			t.Errorf("day %d has %d meals, want 3", i, len(slot.MealIDs))
		}
	}

	// The 22nd fails and mutates nothing.
	if _, err := AutoAssign(slots, "overflow"); !errors.Is(err, ErrWeekFull) {
		t.Errorf("expected ErrWeekFull, got %v", err)
	}
	for i, slot := range slots {
		if len(slot.MealIDs) != 3 {
			t.Errorf("day %d mutated by failed assignment: %v", i, slot.MealIDs)
		}
	}
}

func TestPlace_ManualCapacity(t *testing.T) {
	slots := models.EmptyWeek()

	for i := 0; i < SlotCapacity; i++ {
		if err := Place(slots, fmt.Sprintf("m%d", i), 2); err != nil {
			t.Fatalf("placement %d failed: %v", i, err)
		}
	}

	err := Place(slots, "overflow", 2)
	if !errors.Is(err, ErrSlotFull) {
		t.Errorf("expected ErrSlotFull, got %v", err)
	}
	if len(slots[2].MealIDs) != SlotCapacity {
		t.Errorf("failed placement mutated slot: %v", slots[2].MealIDs)
	}
}

func TestPlace_DayOutOfRange(t *testing.T) {
	slots := models.EmptyWeek()
	for _, day := range []int{-1, 7, 42} {
		if err := Place(slots, "m1", day); !errors.Is(err, ErrDayOutOfRange) {
			t.Errorf("Place(day=%d) = %v, want ErrDayOutOfRange", day, err)
		}
	}
}

func TestRemove_ClearsWholeSlotWhenNoMealGiven(t *testing.T) {
	slots := models.EmptyWeek()
	slots[3].MealIDs = []string{"a", "b", "c"}

	if err := Remove(slots, 3, ""); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(slots[3].MealIDs) != 0 {
		t.Errorf("slot not cleared: %v", slots[3].MealIDs)
	}
}

// Removing a specific id removes every occurrence, not just the first.
// That mirrors the filter semantics the web client always had; if product
// intent turns out to be "remove one occurrence", this test pins the
// decision point.
func TestRemove_RemovesAllDuplicateOccurrences(t *testing.T) {
	slots := models.EmptyWeek()
	slots[0].MealIDs = []string{"a", "b", "a", "a"}

	if err := Remove(slots, 0, "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(slots[0].MealIDs) != 1 || slots[0].MealIDs[0] != "b" {
		t.Errorf("got %v, want [b]", slots[0].MealIDs)
	}
}

func TestPurgeMeal_RemovesFromEverySlot(t *testing.T) {
	slots := models.EmptyWeek()
	slots[0].MealIDs = []string{"x", "y"}
	slots[4].MealIDs = []string{"x"}
	slots[6].MealIDs = []string{"z", "x", "x"}

	PurgeMeal(slots, "x")

	for i, slot := range slots {
		for _, id := range slot.MealIDs {
			if id == "x" {
				t.Errorf("day %d still references purged meal: %v", i, slot.MealIDs)
			}
		}
	}
	if len(slots[0].MealIDs) != 1 || len(slots[6].MealIDs) != 1 {
		t.Errorf("unrelated ids disturbed: %v / %v", slots[0].MealIDs, slots[6].MealIDs)
	}
}

func TestDistributeVotes_SingleMealPerDayOnFirstPass(t *testing.T) {
	slots := models.EmptyWeek()
	selected := []string{"m1", "m2", "m3", "m4", "m5"}

	placed := DistributeVotes(slots, selected)

	if len(placed) != 5 {
		t.Fatalf("placed %d meals, want 5", len(placed))
	}
	for i := 0; i < 5; i++ {
		if len(slots[i].MealIDs) != 1 || slots[i].MealIDs[0] != selected[i] {
			t.Errorf("day %d = %v, want [%s]", i, slots[i].MealIDs, selected[i])
		}
	}
	for i := 5; i < 7; i++ {
		if len(slots[i].MealIDs) != 0 {
			t.Errorf("day %d unexpectedly received %v", i, slots[i].MealIDs)
		}
	}
}

func TestDistributeVotes_WrapsAcrossPasses(t *testing.T) {
	slots := models.EmptyWeek()
	selected := make([]string, 10)
	for i := range selected {
		selected[i] = fmt.Sprintf("m%d", i)
	}

	DistributeVotes(slots, selected)

	// 7 meals in pass 0, remaining 3 wrap onto days 0-2 in pass 1.
	wantLens := []int{2, 2, 2, 1, 1, 1, 1}
	for i, want := range wantLens {
		if len(slots[i].MealIDs) != want {
			t.Errorf("day %d has %d meals, want %d", i, len(slots[i].MealIDs), want)
		}
	}
}

// Pre-existing assignments count against the pass condition, so days that
// start non-empty absorb fewer winners. Deliberate: voting rounds spread
// load instead of stacking onto already-planned days.
func TestDistributeVotes_PreexistingMealsReduceShare(t *testing.T) {
	slots := models.EmptyWeek()
	slots[0].MealIDs = []string{"existing1", "existing2", "existing3"}

	placed := DistributeVotes(slots, []string{"m1", "m2"})

	if len(placed) != 2 {
		t.Fatalf("placed %d, want 2", len(placed))
	}
	if len(slots[0].MealIDs) != 3 {
		t.Errorf("full day received a vote winner: %v", slots[0].MealIDs)
	}
	if slots[1].MealIDs[0] != "m1" || slots[2].MealIDs[0] != "m2" {
		t.Errorf("winners landed on wrong days: %v %v", slots[1].MealIDs, slots[2].MealIDs)
	}
}

func TestDistributeVotes_StopsAfterThreePasses(t *testing.T) {
	slots := models.EmptyWeek()
	selected := make([]string, 30)
	for i := range selected {
		selected[i] = fmt.Sprintf("m%d", i)
	}

	placed := DistributeVotes(slots, selected)

	if len(placed) != 21 {
		t.Errorf("placed %d meals, want 21 (3 passes x 7 days)", len(placed))
	}
	for i, slot := range slots {
		if len(slot.MealIDs) != 3 {
			t.Errorf("day %d has %d meals, want 3", i, len(slot.MealIDs))
		}
	}
}
