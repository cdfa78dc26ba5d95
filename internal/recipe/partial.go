package recipe

import "github.com/mattmelloy/rotation-app/internal/models"

// Partial is the field subset the AI service returns. Nil slices and empty
// strings mark fields that were absent from the response, so merging never
// clobbers fields the model did not produce.
type Partial struct {
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Method          []string `json:"method,omitempty"`
	ThermomixMethod []string `json:"thermomixMethod,omitempty"`
	Effort          string   `json:"effort,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// MergeInto overwrites only the fields present in the partial, leaving the
// rest of the edit buffer untouched.
func (p Partial) MergeInto(m *models.Meal) {
	if p.Title != "" {
		m.Title = p.Title
	}
	if p.Description != "" {
		m.Description = p.Description
	}
	if p.Ingredients != nil {
		m.Ingredients = p.Ingredients
	}
	if p.Method != nil {
		m.Method = p.Method
	}
	if p.ThermomixMethod != nil {
		m.ThermomixMethod = p.ThermomixMethod
	}
	if p.Tags != nil {
		m.Tags = p.Tags
	}
	switch p.Effort {
	case string(models.EffortEasy), string(models.EffortMedium), string(models.EffortHard):
		m.Effort = models.Effort(p.Effort)
	}
}
