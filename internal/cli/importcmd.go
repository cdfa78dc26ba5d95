package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/recipe"
	"github.com/mattmelloy/rotation-app/internal/rotation"
)

// saveImported merges an AI response into a fresh meal record and saves it.
func saveImported(ctx *Context, partial recipe.Partial, mutate func(*models.Meal)) error {
	meal := models.Meal{
		SourceType: models.SourceAI,
		LastCooked: rotation.DefaultLastCooked(rotation.TierHigh, time.Now()),
	}
	partial.MergeInto(&meal)
	if mutate != nil {
		mutate(&meal)
	}

	day, err := ctx.Manager.AddOrUpdateMeal(meal, true)
	if err != nil {
		return err
	}

	fmt.Printf("Imported meal: %s\n", meal.Title)
	if day >= 0 {
		fmt.Printf("Assigned to %s\n", models.FullDayNames[day])
	}
	return nil
}

type ImportURLCmd struct {
	URL       string `arg:"" help:"Recipe page URL."`
	Thermomix bool   `help:"Also generate a Thermomix method."`
}

func (c *ImportURLCmd) Run(ctx *Context) error {
	svc, err := ctx.requireAI()
	if err != nil {
		return err
	}

	fmt.Println("Reading recipe from URL...")
	partial, err := svc.GenerateFromText(context.Background(), c.URL, true, c.Thermomix)
	if err != nil {
		return err
	}

	return saveImported(ctx, partial, func(m *models.Meal) {
		m.SourceURL = c.URL
		m.SourceType = models.SourceURL
	})
}

type ImportTextCmd struct {
	Text      string `arg:"" help:"Recipe text, or a dish name to generate from scratch."`
	Thermomix bool   `help:"Also generate a Thermomix method."`
}

func (c *ImportTextCmd) Run(ctx *Context) error {
	svc, err := ctx.requireAI()
	if err != nil {
		return err
	}

	fmt.Println("Generating recipe...")
	partial, err := svc.GenerateFromText(context.Background(), c.Text, false, c.Thermomix)
	if err != nil {
		return err
	}

	return saveImported(ctx, partial, nil)
}

type ImportImageCmd struct {
	File      string `arg:"" type:"existingfile" help:"JPEG photo of a recipe."`
	Thermomix bool   `help:"Also generate a Thermomix method."`
	KeepScan  bool   `help:"Keep the original scan on the record (uses storage space)."`
}

func (c *ImportImageCmd) Run(ctx *Context) error {
	svc, err := ctx.requireAI()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("could not read image: %w", err)
	}

	fmt.Println("Reading recipe from image...")
	partial, err := svc.ParseFromImage(context.Background(), data, c.Thermomix)
	if err != nil {
		return err
	}

	return saveImported(ctx, partial, func(m *models.Meal) {
		m.SourceType = models.SourceImage
		if c.KeepScan {
			m.SourceImage = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
		}
	})
}

type MealRefineCmd struct {
	Meal        string `arg:"" help:"Meal id or title."`
	Instruction string `arg:"" help:"What to change, e.g. 'make it vegetarian'."`
}

func (c *MealRefineCmd) Run(ctx *Context) error {
	svc, err := ctx.requireAI()
	if err != nil {
		return err
	}
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	current := recipe.Partial{
		Title:           meal.Title,
		Description:     meal.Description,
		Ingredients:     meal.Ingredients,
		Method:          meal.Method,
		ThermomixMethod: meal.ThermomixMethod,
		Effort:          string(meal.Effort),
		Tags:            meal.Tags,
	}

	fmt.Println("Updating recipe...")
	partial, err := svc.EditRecipe(context.Background(), current, c.Instruction)
	if err != nil {
		return err
	}

	// Merge only what came back; the record keeps everything else.
	partial.MergeInto(&meal)
	if _, err := ctx.Manager.AddOrUpdateMeal(meal, false); err != nil {
		return err
	}

	fmt.Printf("Updated meal: %s\n", meal.Title)
	return nil
}

type MealThermomixCmd struct {
	Meal string `arg:"" help:"Meal id or title."`
}

func (c *MealThermomixCmd) Run(ctx *Context) error {
	svc, err := ctx.requireAI()
	if err != nil {
		return err
	}
	meal, err := findMeal(ctx, c.Meal)
	if err != nil {
		return err
	}

	current := recipe.Partial{
		Title:       meal.Title,
		Ingredients: meal.Ingredients,
		Method:      meal.Method,
	}

	fmt.Println("Generating Thermomix method...")
	steps, err := svc.GenerateApplianceMethod(context.Background(), current)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("no Thermomix steps were generated")
	}

	meal.ThermomixMethod = steps
	if _, err := ctx.Manager.AddOrUpdateMeal(meal, false); err != nil {
		return err
	}

	fmt.Printf("Added %d Thermomix steps to %s\n", len(steps), meal.Title)
	return nil
}
