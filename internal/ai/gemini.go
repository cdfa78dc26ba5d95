package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mattmelloy/rotation-app/internal/recipe"
)

const geminiModel = "gemini-1.5-flash"

// recipeSchema constrains every recipe response to the Partial shape so the
// JSON decode below cannot be surprised by prose.
var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"method":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"thermomixMethod": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Steps adapted for a Thermomix or similar kitchen robot. If not compatible, list prep steps only.",
		},
		"effort": {Type: genai.TypeString, Enum: []string{"easy", "medium", "hard"}},
		"tags":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "ingredients", "method", "effort"},
}

var stepsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"steps": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
}

// Gemini implements RecipeService on the Google Gemini API.
type Gemini struct {
	client  *genai.Client
	fetcher *PageFetcher
}

// NewGemini creates a Gemini-backed recipe service.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, fetcher: NewPageFetcher()}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) recipeModel() *genai.GenerativeModel {
	model := g.client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = recipeSchema
	return model
}

func thermomixInstruction(include bool) string {
	if !include {
		return "Do not include a thermomixMethod."
	}
	return "Additionally, generate a parallel 'thermomixMethod' array. " +
		"Analyze the recipe: if it can be cooked entirely in a kitchen robot " +
		"(stews, soups, doughs), provide the full procedure with Speed, " +
		"Temperature, and Time settings. If the recipe is for something like " +
		"a BBQ steak or Pizza, focus the Thermomix steps on the preparation " +
		"(chopping veg, making the dough, blending the sauce) and label it " +
		"as 'Prep Only'."
}

func (g *Gemini) ParseFromImage(ctx context.Context, imageJPEG []byte, includeThermomix bool) (recipe.Partial, error) {
	prompt := fmt.Sprintf("Analyze this image. If it's a recipe, extract the "+
		"title, description (brief), ingredients, and method steps. Estimate "+
		"the effort level and suggest tags. %s", thermomixInstruction(includeThermomix))

	resp, err := g.recipeModel().GenerateContent(ctx,
		genai.ImageData("jpeg", imageJPEG),
		genai.Text(prompt),
	)
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not read recipe from image: %w", err)
	}
	partial, err := decodePartial(resp)
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not read recipe from image: %w", err)
	}
	return partial, nil
}

func (g *Gemini) GenerateFromText(ctx context.Context, text string, isURL, includeThermomix bool) (recipe.Partial, error) {
	var prompt string
	if isURL {
		page, err := g.fetcher.Fetch(ctx, text)
		if err != nil {
			return recipe.Partial{}, fmt.Errorf("could not generate recipe: %w", err)
		}
		prompt = fmt.Sprintf("Extract the recipe from this web page content "+
			"(source: %s). Extract title, description, ingredients, and "+
			"method. %s\n\nPage content:\n%s",
			text, thermomixInstruction(includeThermomix), page)
	} else {
		prompt = fmt.Sprintf("Extract recipe details from this text: %s. %s",
			text, thermomixInstruction(includeThermomix))
	}

	resp, err := g.recipeModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not generate recipe: %w", err)
	}
	partial, err := decodePartial(resp)
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not generate recipe: %w", err)
	}
	return partial, nil
}

func (g *Gemini) EditRecipe(ctx context.Context, current recipe.Partial, instruction string) (recipe.Partial, error) {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not update recipe: %w", err)
	}

	prompt := fmt.Sprintf(`Here is a current recipe JSON:
%s

Please modify this recipe according to the following instruction: %q.
Return the updated recipe JSON using the same schema.
Maintain any fields that don't need changing, but feel free to update title, ingredients, method, description, effort, or tags if the instruction implies it.`,
		currentJSON, instruction)

	resp, err := g.recipeModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not update recipe: %w", err)
	}
	partial, err := decodePartial(resp)
	if err != nil {
		return recipe.Partial{}, fmt.Errorf("could not update recipe: %w", err)
	}
	return partial, nil
}

func (g *Gemini) GenerateApplianceMethod(ctx context.Context, current recipe.Partial) ([]string, error) {
	ingredients, _ := json.Marshal(current.Ingredients)
	method, _ := json.Marshal(current.Method)

	prompt := fmt.Sprintf(`Here is a recipe:
Title: %s
Ingredients: %s
Method: %s

Please generate a 'thermomixMethod' array for this recipe.
If it can be cooked entirely in a kitchen robot (stews, soups, doughs), provide the full procedure with Speed, Temperature, and Time settings.
If the recipe is for something like a BBQ steak or Pizza, focus the Thermomix steps on the preparation (chopping veg, making the dough, blending the sauce) and label it as 'Prep Only'.
Return ONLY the array of strings for the steps.`,
		current.Title, ingredients, method)

	model := g.client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = stepsSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("could not generate appliance method: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, fmt.Errorf("could not generate appliance method: %w", err)
	}
	var out struct {
		Steps []string `json:"steps"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("could not generate appliance method: %w", err)
	}
	return out.Steps, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}
	return string(text), nil
}

func decodePartial(resp *genai.GenerateContentResponse) (recipe.Partial, error) {
	text, err := responseText(resp)
	if err != nil {
		return recipe.Partial{}, err
	}
	var partial recipe.Partial
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &partial); err != nil {
		return recipe.Partial{}, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return partial, nil
}
