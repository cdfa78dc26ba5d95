package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/rotation"
	"github.com/mattmelloy/rotation-app/internal/state"
	"github.com/mattmelloy/rotation-app/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "rotation.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	manager := state.NewManager(store, nil)
	if err := manager.SetIdentity(models.Guest()); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}
	return &Context{Manager: manager, Store: store, DataPath: store.Path()}
}

func TestMealEdit_SameTierKeepsCookHistory(t *testing.T) {
	ctx := newTestContext(t)

	add := MealAddCmd{Title: "Slow Brisket", Effort: "hard", Tier: "medium"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	meal, err := findMeal(ctx, "Slow Brisket")
	if err != nil {
		t.Fatal(err)
	}
	before := meal.LastCooked

	edit := MealEditCmd{Meal: meal.ID, Tier: "medium", Description: "low and slow"}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	after, _ := ctx.Manager.MealByID(meal.ID)
	if after.LastCooked != before {
		t.Errorf("re-selecting the current tier moved lastCooked: %d -> %d", before, after.LastCooked)
	}
	if after.Description != "low and slow" {
		t.Errorf("description not updated: %q", after.Description)
	}
}

func TestMealEdit_NewTierRefilesTheMeal(t *testing.T) {
	ctx := newTestContext(t)

	add := MealAddCmd{Title: "Paella", Effort: "medium", Tier: "high"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	meal, err := findMeal(ctx, "Paella")
	if err != nil {
		t.Fatal(err)
	}

	edit := MealEditCmd{Meal: meal.ID, Tier: "low"}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	after, _ := ctx.Manager.MealByID(meal.ID)
	if after.LastCooked == meal.LastCooked {
		t.Error("refiling to a different tier kept the old lastCooked")
	}
	if got := rotation.Classify(after.LastCooked, time.Now()); got != rotation.TierLow {
		t.Errorf("meal classifies as %s after refiling to low", got)
	}
}

func TestMealEdit_UntouchedFieldsSurvive(t *testing.T) {
	ctx := newTestContext(t)

	add := MealAddCmd{
		Title:      "Laksa",
		Effort:     "medium",
		Tier:       "high",
		Ingredient: []string{"noodles", "broth"},
		Tag:        []string{"spicy"},
	}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	meal, err := findMeal(ctx, "Laksa")
	if err != nil {
		t.Fatal(err)
	}

	edit := MealEditCmd{Meal: meal.ID, Title: "Curry Laksa"}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	after, _ := ctx.Manager.MealByID(meal.ID)
	if after.Title != "Curry Laksa" {
		t.Errorf("title not updated: %q", after.Title)
	}
	if len(after.Ingredients) != 2 || len(after.Tags) != 1 {
		t.Errorf("untouched fields lost: ingredients=%v tags=%v", after.Ingredients, after.Tags)
	}
	if after.LastCooked != meal.LastCooked {
		t.Error("edit without a tier flag moved lastCooked")
	}
}

func TestMealEditValidate(t *testing.T) {
	ok := MealEditCmd{Effort: "easy", Tier: ""}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid edit rejected: %v", err)
	}
	bad := MealEditCmd{Tier: "weekly"}
	if err := bad.Validate(); err == nil {
		t.Error("invalid tier accepted")
	}
}
