// Package ai adapts a generative model into the four recipe operations the
// app consumes: reading a recipe out of a photo, generating one from free
// text or a URL, editing one by instruction, and producing an appliance
// method. Callers only depend on RecipeService; everything model-specific
// stays behind it.
package ai

import (
	"context"

	"github.com/mattmelloy/rotation-app/internal/recipe"
)

// RecipeService is the model-facing surface. All operations return a
// recipe.Partial so the caller merges only the fields the model produced.
type RecipeService interface {
	// ParseFromImage extracts a recipe from a JPEG photo of a recipe card,
	// cookbook page, or handwritten note.
	ParseFromImage(ctx context.Context, imageJPEG []byte, includeThermomix bool) (recipe.Partial, error)

	// GenerateFromText builds a recipe from free text, or from the fetched
	// content of a web page when isURL is set.
	GenerateFromText(ctx context.Context, text string, isURL, includeThermomix bool) (recipe.Partial, error)

	// EditRecipe applies a natural-language instruction to the current edit
	// buffer and returns the updated fields.
	EditRecipe(ctx context.Context, current recipe.Partial, instruction string) (recipe.Partial, error)

	// GenerateApplianceMethod produces a Thermomix step list for an existing
	// recipe without touching its other fields.
	GenerateApplianceMethod(ctx context.Context, current recipe.Partial) ([]string, error)

	Close() error
}
