package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattmelloy/rotation-app/internal/tui"
)

type ShopCmd struct {
	Plain  bool     `help:"Print the list instead of opening the checklist."`
	Toggle []string `short:"t" help:"Toggle items by key (mealID-index) without opening the checklist."`
}

func (c *ShopCmd) Run(ctx *Context) error {
	if len(c.Toggle) > 0 {
		for _, key := range c.Toggle {
			ctx.Manager.ToggleShopItem(key)
		}
		fmt.Printf("Toggled %d items\n", len(c.Toggle))
		return nil
	}

	if c.Plain {
		return c.runPlain(ctx)
	}

	program := tea.NewProgram(tui.NewModel(ctx.Manager), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (c *ShopCmd) runPlain(ctx *Context) error {
	items := tui.Items(ctx.Manager.Meals(), ctx.Manager.Week())
	if len(items) == 0 {
		fmt.Println("Nothing to buy. Assign meals to the week first.")
		return nil
	}

	checked := make(map[string]struct{})
	for _, key := range ctx.Manager.CheckedItems() {
		checked[key] = struct{}{}
	}

	lastMeal := ""
	for _, item := range items {
		if item.MealID != lastMeal {
			if lastMeal != "" {
				fmt.Println()
			}
			fmt.Println(sectionStyle.Render(item.MealTitle))
			lastMeal = item.MealID
		}

		box := "[ ]"
		if _, done := checked[item.Key]; done {
			box = "[x]"
		}
		fmt.Printf("  %s %s  %s\n", box, item.Text, mutedStyle.Render(item.Key))
	}
	return nil
}
