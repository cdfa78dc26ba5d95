package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDaySlotUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want DaySlot
	}{
		{
			name: "current shape",
			json: `{"label":"M","mealIds":["a","b"]}`,
			want: DaySlot{Label: "M", MealIDs: []string{"a", "b"}},
		},
		{
			name: "current shape empty list",
			json: `{"label":"T","mealIds":[]}`,
			want: DaySlot{Label: "T", MealIDs: []string{}},
		},
		{
			name: "legacy single reference",
			json: `{"label":"W","mealId":"x"}`,
			want: DaySlot{Label: "W", MealIDs: []string{"x"}},
		},
		{
			name: "legacy null reference",
			json: `{"label":"T","mealId":null}`,
			want: DaySlot{Label: "T"},
		},
		{
			name: "legacy empty string reference",
			json: `{"label":"F","mealId":""}`,
			want: DaySlot{Label: "F"},
		},
		{
			name: "both present prefers the list",
			json: `{"label":"S","mealIds":["a"],"mealId":"b"}`,
			want: DaySlot{Label: "S", MealIDs: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DaySlot
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEmptyWeek(t *testing.T) {
	week := EmptyWeek()
	if len(week) != 7 {
		t.Fatalf("got %d slots, want 7", len(week))
	}
	for i, slot := range week {
		if slot.Label != DayLabels[i] {
			t.Errorf("slot %d label = %q, want %q", i, slot.Label, DayLabels[i])
		}
		if slot.MealIDs == nil || len(slot.MealIDs) != 0 {
			t.Errorf("slot %d not empty: %v", i, slot.MealIDs)
		}
	}
}

func TestNormalizeWeek(t *testing.T) {
	t.Run("truncated input padded to 7", func(t *testing.T) {
		short := []DaySlot{{Label: "M", MealIDs: []string{"a"}}}
		week := NormalizeWeek(short)
		if len(week) != 7 {
			t.Fatalf("got %d slots, want 7", len(week))
		}
		if !reflect.DeepEqual(week[0].MealIDs, []string{"a"}) {
			t.Errorf("assignment lost: %v", week[0].MealIDs)
		}
		for i := 1; i < 7; i++ {
			if len(week[i].MealIDs) != 0 {
				t.Errorf("slot %d should be empty", i)
			}
		}
	})

	t.Run("oversized input trimmed", func(t *testing.T) {
		long := make([]DaySlot, 9)
		for i := range long {
			long[i] = DaySlot{MealIDs: []string{"x"}}
		}
		if got := len(NormalizeWeek(long)); got != 7 {
			t.Errorf("got %d slots, want 7", got)
		}
	})

	t.Run("labels always canonical", func(t *testing.T) {
		week := NormalizeWeek([]DaySlot{{Label: "BOGUS", MealIDs: []string{"a"}}})
		if week[0].Label != "M" {
			t.Errorf("label = %q, want M", week[0].Label)
		}
	})

	t.Run("nil meal lists replaced", func(t *testing.T) {
		week := NormalizeWeek(make([]DaySlot, 7))
		for i, slot := range week {
			if slot.MealIDs == nil {
				t.Errorf("slot %d has nil MealIDs", i)
			}
		}
	})
}
