package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/planner"
)

type WeekShowCmd struct{}

func (c *WeekShowCmd) Run(ctx *Context) error {
	week := ctx.Manager.Week()
	for i, slot := range week {
		var titles []string
		for _, id := range slot.MealIDs {
			if meal, ok := ctx.Manager.MealByID(id); ok {
				titles = append(titles, meal.Title)
			} else {
				titles = append(titles, id)
			}
		}

		line := mutedStyle.Render("(empty)")
		if len(titles) > 0 {
			line = strings.Join(titles, ", ")
		}
		fmt.Printf("%s %s\n", dayStyle.Render(models.FullDayNames[i]), line)
	}
	return nil
}

type WeekAutoCmd struct {
	Meal string `arg:"" help:"Meal id or title to slot into the week."`
}

func (c *WeekAutoCmd) Run(ctx *Context) error {
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	day, err := ctx.Manager.AddToWeek(meal.ID)
	if errors.Is(err, planner.ErrWeekFull) {
		return fmt.Errorf("every day already has %d meals; remove something first", planner.AutoAssignMax)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Assigned %s to %s\n", meal.Title, models.FullDayNames[day])
	return nil
}

type WeekSetCmd struct {
	Meal string `arg:"" help:"Meal id or title."`
	Day  string `arg:"" help:"Day (mon..sun or 0..6)."`
}

func (c *WeekSetCmd) Run(ctx *Context) error {
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}
	day, err := parseDay(c.Day)
	if err != nil {
		return err
	}

	if err := ctx.Manager.AssignToDay(meal.ID, day); err != nil {
		if errors.Is(err, planner.ErrSlotFull) {
			return fmt.Errorf("%s already has %d meals", models.FullDayNames[day], planner.SlotCapacity)
		}
		return err
	}

	fmt.Printf("Assigned %s to %s\n", meal.Title, models.FullDayNames[day])
	return nil
}

type WeekUnsetCmd struct {
	Day  string `arg:"" help:"Day (mon..sun or 0..6)."`
	Meal string `arg:"" optional:"" help:"Meal id or title. Omit to clear the whole day."`
}

func (c *WeekUnsetCmd) Run(ctx *Context) error {
	day, err := parseDay(c.Day)
	if err != nil {
		return err
	}

	mealID := ""
	if c.Meal != "" {
		meal, err := findMeal(ctx, c.Meal)
		if err != nil {
			return err
		}
		mealID = meal.ID
	}

	if err := ctx.Manager.RemoveFromDay(day, mealID); err != nil {
		return err
	}

	if mealID == "" {
		fmt.Printf("Cleared %s\n", models.FullDayNames[day])
	} else {
		fmt.Printf("Removed from %s\n", models.FullDayNames[day])
	}
	return nil
}

type WeekClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *WeekClearCmd) Run(ctx *Context) error {
	ok, err := confirm("Clear the week, reset all votes, and empty the shopping list?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.Manager.ClearWeek()
	fmt.Println("Week cleared.")
	return nil
}

type VoteCmd struct {
	Meals []string `arg:"" help:"Meal ids or titles that won the vote."`
}

func (c *VoteCmd) Run(ctx *Context) error {
	var ids []string
	for _, ref := range c.Meals {
		meal, err := findMeal(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, meal.ID)
	}

	placed := ctx.Manager.CompleteVoting(ids)
	fmt.Printf("Recorded %d votes; %d meals placed into the week\n", len(ids), placed)
	return nil
}
