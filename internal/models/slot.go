package models

import "encoding/json"

// DayLabels are the fixed single-letter labels for the 7 week slots.
var DayLabels = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// FullDayNames are used where a single letter is ambiguous (CLI output).
var FullDayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DaySlot is one weekly planning bucket. MealIDs holds weak references:
// a meal may appear in any number of slots, or more than once in the same
// slot, and ids pointing at deleted meals are tolerated by readers.
type DaySlot struct {
	Label   string   `json:"label"`
	MealIDs []string `json:"mealIds"`
}

// legacy slot records held a single nullable meal reference instead of a
// sequence. Normalized at load time into a zero- or one-element MealIDs.
type legacySlot struct {
	Label   string    `json:"label"`
	MealIDs *[]string `json:"mealIds"`
	MealID  *string   `json:"mealId"`
}

func (s *DaySlot) UnmarshalJSON(data []byte) error {
	var raw legacySlot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Label = raw.Label
	switch {
	case raw.MealIDs != nil:
		s.MealIDs = *raw.MealIDs
	case raw.MealID != nil && *raw.MealID != "":
		s.MealIDs = []string{*raw.MealID}
	default:
		s.MealIDs = nil
	}
	return nil
}

// EmptyWeek returns the 7 fixed day slots with no assignments.
func EmptyWeek() []DaySlot {
	slots := make([]DaySlot, len(DayLabels))
	for i, label := range DayLabels {
		slots[i] = DaySlot{Label: label, MealIDs: []string{}}
	}
	return slots
}

// NormalizeWeek forces a slot collection back to exactly 7 slots in fixed
// day order, preserving whatever assignments fit. Guards against corrupt
// or truncated snapshots from older clients.
func NormalizeWeek(slots []DaySlot) []DaySlot {
	week := EmptyWeek()
	for i := range week {
		if i < len(slots) && slots[i].MealIDs != nil {
			week[i].MealIDs = slots[i].MealIDs
		}
	}
	return week
}
