// Package tui renders the interactive shopping checklist for the meals
// assigned to the current week.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"

	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/state"
)

// Item is one shopping-list line. Key is the composite mealID-index the
// checklist is persisted under.
type Item struct {
	Key       string
	Text      string
	MealID    string
	MealTitle string
}

// Items flattens the week's assigned meals into shopping-list lines,
// grouped by meal in week order. A meal assigned to several days still
// appears once.
func Items(meals []models.Meal, week []models.DaySlot) []Item {
	byID := make(map[string]models.Meal, len(meals))
	for _, meal := range meals {
		byID[meal.ID] = meal
	}

	seen := make(map[string]struct{})
	var items []Item
	for _, slot := range week {
		for _, id := range slot.MealIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			meal, ok := byID[id]
			if !ok {
				continue
			}
			for i, line := range meal.Ingredients {
				items = append(items, Item{
					Key:       fmt.Sprintf("%s-%d", meal.ID, i),
					Text:      line,
					MealID:    meal.ID,
					MealTitle: meal.Title,
				})
			}
		}
	}
	return items
}

type Model struct {
	manager     *state.Manager
	keys        KeyMap
	help        help.Model
	items       []Item
	checked     map[string]struct{}
	cursor      int
	hideChecked bool
	quitting    bool
}

func NewModel(manager *state.Manager) Model {
	m := Model{
		manager: manager,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		items:   Items(manager.Meals(), manager.Week()),
		checked: make(map[string]struct{}),
	}
	for _, key := range manager.CheckedItems() {
		m.checked[key] = struct{}{}
	}
	return m
}

// visible returns the items currently shown, honoring hide-checked mode.
func (m Model) visible() []Item {
	if !m.hideChecked {
		return m.items
	}
	var out []Item
	for _, item := range m.items {
		if _, done := m.checked[item.Key]; !done {
			out = append(out, item)
		}
	}
	return out
}

func (m Model) remaining() int {
	left := 0
	for _, item := range m.items {
		if _, done := m.checked[item.Key]; !done {
			left++
		}
	}
	return left
}
