package tui

import (
	"testing"

	"github.com/mattmelloy/rotation-app/internal/models"
)

func TestItems(t *testing.T) {
	meals := []models.Meal{
		{ID: "a", Title: "Tacos", Ingredients: []string{"tortillas", "beef"}},
		{ID: "b", Title: "Curry", Ingredients: []string{"chicken"}},
		{ID: "c", Title: "No Ingredients"},
	}
	week := []models.DaySlot{
		{Label: "M", MealIDs: []string{"a"}},
		{Label: "T", MealIDs: []string{"b", "a"}}, // a repeats, c never assigned
		{Label: "W"}, {Label: "T"}, {Label: "F"}, {Label: "S"}, {Label: "S"},
	}

	items := Items(meals, week)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	wantKeys := []string{"a-0", "a-1", "b-0"}
	for i, want := range wantKeys {
		if items[i].Key != want {
			t.Errorf("items[%d].Key = %q, want %q", i, items[i].Key, want)
		}
	}
	if items[0].MealTitle != "Tacos" || items[2].MealTitle != "Curry" {
		t.Errorf("meal titles wrong: %+v", items)
	}
}

func TestItems_UnknownMealSkipped(t *testing.T) {
	week := []models.DaySlot{{Label: "M", MealIDs: []string{"ghost"}}}
	if items := Items(nil, week); len(items) != 0 {
		t.Errorf("got %d items for an unknown meal id", len(items))
	}
}
