package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Shopping List"))
	b.WriteString(countStyle.Render(fmt.Sprintf(" %d of %d left", m.remaining(), len(m.items))))
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		if len(m.items) == 0 {
			b.WriteString("Nothing to buy. Assign meals to the week first.\n")
		} else {
			b.WriteString("All items checked off.\n")
		}
		b.WriteString("\n" + m.help.View(m.keys))
		return b.String()
	}

	lastMeal := ""
	for i, item := range visible {
		if item.MealID != lastMeal {
			if lastMeal != "" {
				b.WriteString("\n")
			}
			b.WriteString(mealHeaderStyle.Render(item.MealTitle) + "\n")
			lastMeal = item.MealID
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		box := "[ ]"
		line := item.Text
		if _, done := m.checked[item.Key]; done {
			box = "[x]"
			line = checkedStyle.Render(line)
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, line))
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
