package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/rotation"
)

type MealAddCmd struct {
	Title       string   `arg:"" help:"Meal title."`
	Effort      string   `short:"e" help:"Effort level (easy|medium|hard)." default:"medium"`
	Tier        string   `short:"t" help:"Rotation tier to file it under (high|medium|low)." default:"high"`
	Protein     string   `short:"p" help:"Main protein. Derived from the title when omitted."`
	Description string   `short:"d" help:"Short description."`
	Ingredient  []string `short:"i" help:"Ingredient line. Repeatable."`
	Step        []string `short:"s" help:"Method step. Repeatable."`
	Tag         []string `help:"Free-text tag. Repeatable."`
	URL         string   `help:"Source URL the recipe came from."`
}

func (c *MealAddCmd) Validate() error {
	switch c.Effort {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("invalid effort: %q", c.Effort)
	}
	switch c.Tier {
	case "high", "medium", "low":
	default:
		return fmt.Errorf("invalid tier: %q", c.Tier)
	}
	return nil
}

func (c *MealAddCmd) Run(ctx *Context) error {
	meal := models.Meal{
		Title:       c.Title,
		Effort:      models.Effort(c.Effort),
		Protein:     c.Protein,
		Description: c.Description,
		Ingredients: c.Ingredient,
		Method:      c.Step,
		Tags:        c.Tag,
		SourceURL:   c.URL,
		SourceType:  models.SourceManual,
		LastCooked:  rotation.DefaultLastCooked(rotation.Tier(c.Tier), time.Now()),
	}
	if c.URL != "" {
		meal.SourceType = models.SourceURL
	}

	day, err := ctx.Manager.AddOrUpdateMeal(meal, true)
	if err != nil {
		return err
	}

	fmt.Printf("Added meal: %s (ID: %s)\n", c.Title, mealIDByTitle(ctx, c.Title))
	if day >= 0 {
		fmt.Printf("Assigned to %s\n", models.FullDayNames[day])
	} else {
		fmt.Println("Week is full; not assigned to a day")
	}
	return nil
}

// mealIDByTitle finds the id of the most recently added meal with the
// given title. New meals are prepended, so the first match wins.
func mealIDByTitle(ctx *Context, title string) string {
	for _, meal := range ctx.Manager.Meals() {
		if strings.EqualFold(meal.Title, title) {
			return meal.ID
		}
	}
	return ""
}

// findMeal resolves a user-supplied reference to a meal by id first, then
// by case-insensitive title.
func findMeal(ctx *Context, ref string) (models.Meal, error) {
	if meal, ok := ctx.Manager.MealByID(ref); ok {
		return meal, nil
	}
	for _, meal := range ctx.Manager.Meals() {
		if strings.EqualFold(meal.Title, ref) {
			return meal, nil
		}
	}
	return models.Meal{}, fmt.Errorf("no meal matching %q", ref)
}

type MealEditCmd struct {
	Meal        string   `arg:"" help:"Meal id or title."`
	Title       string   `help:"New title."`
	Effort      string   `short:"e" help:"Effort level (easy|medium|hard)."`
	Tier        string   `short:"t" help:"Rotation tier to file it under (high|medium|low)."`
	Protein     string   `short:"p" help:"Main protein."`
	Description string   `short:"d" help:"Short description."`
	Ingredient  []string `short:"i" help:"Replacement ingredient line. Repeatable; replaces the full list."`
	Step        []string `short:"s" help:"Replacement method step. Repeatable; replaces the full list."`
	Tag         []string `help:"Replacement free-text tag. Repeatable; replaces the full list."`
	URL         string   `help:"Source URL the recipe came from."`
}

func (c *MealEditCmd) Validate() error {
	switch c.Effort {
	case "", "easy", "medium", "hard":
	default:
		return fmt.Errorf("invalid effort: %q", c.Effort)
	}
	switch c.Tier {
	case "", "high", "medium", "low":
	default:
		return fmt.Errorf("invalid tier: %q", c.Tier)
	}
	return nil
}

func (c *MealEditCmd) Run(ctx *Context) error {
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	if c.Title != "" {
		meal.Title = c.Title
	}
	if c.Effort != "" {
		meal.Effort = models.Effort(c.Effort)
	}
	if c.Protein != "" {
		meal.Protein = c.Protein
	}
	if c.Description != "" {
		meal.Description = c.Description
	}
	if len(c.Ingredient) > 0 {
		meal.Ingredients = c.Ingredient
	}
	if len(c.Step) > 0 {
		meal.Method = c.Step
	}
	if len(c.Tag) > 0 {
		meal.Tags = c.Tag
	}
	if c.URL != "" {
		meal.SourceURL = c.URL
		meal.SourceType = models.SourceURL
	}
	if c.Tier != "" {
		// Re-selecting the tier the meal already sits in keeps its cook
		// history; picking a different one refiles it under that tier's
		// default timestamp.
		meal.LastCooked = rotation.ResolveLastCooked(meal.LastCooked, false, rotation.Tier(c.Tier), time.Now())
	}

	if _, err := ctx.Manager.AddOrUpdateMeal(meal, false); err != nil {
		return err
	}

	fmt.Printf("Updated meal: %s\n", meal.Title)
	return nil
}

type tierSection struct {
	tier  rotation.Tier
	title string
	note  string
}

var tierSections = []tierSection{
	{rotation.TierHigh, "Heavy Hitters", "last 14 days"},
	{rotation.TierMedium, "The Bench", "15-60 days"},
	{rotation.TierLow, "The Archive", "60+ days"},
}

type MealListCmd struct {
	Search string `short:"s" help:"Filter by title, keyword, protein, or tag."`
}

func (c *MealListCmd) Run(ctx *Context) error {
	var meals []models.Meal
	if c.Search != "" {
		meals = ctx.Manager.Search(c.Search)
	} else {
		meals = ctx.Manager.Meals()
	}
	if len(meals) == 0 {
		fmt.Println("No meals found")
		return nil
	}

	now := time.Now()
	byTier := make(map[rotation.Tier][]models.Meal)
	for _, meal := range meals {
		tier := rotation.Classify(meal.LastCooked, now)
		byTier[tier] = append(byTier[tier], meal)
	}

	for _, section := range tierSections {
		group := byTier[section.tier]
		if len(group) == 0 {
			continue
		}
		fmt.Printf("%s %s\n", sectionStyle.Render(section.title), sectionNoteStyle.Render("("+section.note+")"))
		for _, meal := range group {
			line := fmt.Sprintf("  %s - %s, %s", meal.Title, meal.Effort, meal.Protein)
			if meal.Votes > 0 {
				line += " " + voteStyle.Render(fmt.Sprintf("♥%d", meal.Votes))
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
	return nil
}

type MealShowCmd struct {
	Meal string `arg:"" help:"Meal id or title."`
}

func (c *MealShowCmd) Run(ctx *Context) error {
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	fmt.Println(sectionStyle.Render(meal.Title))
	fmt.Printf("ID: %s\n", meal.ID)
	tier := rotation.Classify(meal.LastCooked, time.Now())
	fmt.Printf("Tier: %s   Effort: %s   Protein: %s   Votes: %d\n", tier, meal.Effort, meal.Protein, meal.Votes)
	if meal.Description != "" {
		fmt.Printf("\n%s\n", meal.Description)
	}
	if len(meal.Tags) > 0 {
		fmt.Printf("\nTags: %s\n", strings.Join(meal.Tags, ", "))
	}
	if meal.SourceURL != "" {
		fmt.Printf("Source: %s\n", meal.SourceURL)
	}
	if len(meal.Ingredients) > 0 {
		fmt.Println("\nIngredients:")
		for _, line := range meal.Ingredients {
			fmt.Printf("  - %s\n", line)
		}
	}
	if len(meal.Method) > 0 {
		fmt.Println("\nMethod:")
		for i, step := range meal.Method {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
	if len(meal.ThermomixMethod) > 0 {
		fmt.Println("\nThermomix:")
		for i, step := range meal.ThermomixMethod {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
	return nil
}

type MealDeleteCmd struct {
	Meal string `arg:"" help:"Meal id or title."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *MealDeleteCmd) Run(ctx *Context) error {
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete %q and remove it from the week?", meal.Title), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.Manager.DeleteMeal(meal.ID)
	fmt.Printf("Deleted meal: %s\n", meal.Title)
	return nil
}
