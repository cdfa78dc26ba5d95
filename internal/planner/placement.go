// Package planner places meals into the 7 weekly day slots.
package planner

import (
	"errors"
	"fmt"

	"github.com/mattmelloy/rotation-app/internal/models"
)

const (
	// AutoAssignMax is the per-slot threshold the auto-assign strategy
	// respects. Once every day holds this many meals the week is full.
	AutoAssignMax = 3
	// SlotCapacity is the hard per-slot limit for manual placement.
	SlotCapacity = 6
	// votePasses caps how many meals a single voting round can add per day.
	votePasses = 3
)

var (
	ErrWeekFull      = errors.New("week is full")
	ErrSlotFull      = errors.New("day is full")
	ErrDayOutOfRange = errors.New("day index out of range")
)

// AutoAssign places a meal into the least-full day: the first empty slot in
// day order, else the first slot under AutoAssignMax. Returns the receiving
// day index. On ErrWeekFull the slots are untouched.
func AutoAssign(slots []models.DaySlot, mealID string) (int, error) {
	for i := range slots {
		if len(slots[i].MealIDs) == 0 {
			slots[i].MealIDs = append(slots[i].MealIDs, mealID)
			return i, nil
		}
	}
	for i := range slots {
		if len(slots[i].MealIDs) < AutoAssignMax {
			slots[i].MealIDs = append(slots[i].MealIDs, mealID)
			return i, nil
		}
	}
	return -1, ErrWeekFull
}

// Place appends a meal to a specific day. Arrival order within the day is
// preserved.
func Place(slots []models.DaySlot, mealID string, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(slots) {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, dayIndex)
	}
	if len(slots[dayIndex].MealIDs) >= SlotCapacity {
		return fmt.Errorf("%w: %s already has %d meals", ErrSlotFull, slots[dayIndex].Label, SlotCapacity)
	}
	slots[dayIndex].MealIDs = append(slots[dayIndex].MealIDs, mealID)
	return nil
}

// Remove takes a meal out of a day. An empty mealID clears the whole slot.
// When the slot holds duplicate entries of the id, every occurrence is
// removed, matching the long-standing filter behavior users rely on.
func Remove(slots []models.DaySlot, dayIndex int, mealID string) error {
	if dayIndex < 0 || dayIndex >= len(slots) {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, dayIndex)
	}
	if mealID == "" {
		slots[dayIndex].MealIDs = []string{}
		return nil
	}

	kept := slots[dayIndex].MealIDs[:0]
	for _, id := range slots[dayIndex].MealIDs {
		if id != mealID {
			kept = append(kept, id)
		}
	}
	slots[dayIndex].MealIDs = kept
	return nil
}

// PurgeMeal removes every reference to a meal from all slots.
func PurgeMeal(slots []models.DaySlot, mealID string) {
	for i := range slots {
		kept := slots[i].MealIDs[:0]
		for _, id := range slots[i].MealIDs {
			if id != mealID {
				kept = append(kept, id)
			}
		}
		slots[i].MealIDs = kept
	}
}

// DistributeVotes spreads a voting round's winners across the week.
// Pass p assigns one meal to every slot currently holding <= p meals, in
// day order, until the queue runs out or three passes complete. The pass
// condition checks absolute slot length, so days that started the round
// non-empty absorb fewer winners. Returns the ids that found a slot.
func DistributeVotes(slots []models.DaySlot, selectedIDs []string) []string {
	placed := make([]string, 0, len(selectedIDs))
	next := 0
	for pass := 0; pass < votePasses && next < len(selectedIDs); pass++ {
		for i := range slots {
			if next >= len(selectedIDs) {
				break
			}
			if len(slots[i].MealIDs) <= pass {
				slots[i].MealIDs = append(slots[i].MealIDs, selectedIDs[next])
				placed = append(placed, selectedIDs[next])
				next++
			}
		}
	}
	return placed
}
