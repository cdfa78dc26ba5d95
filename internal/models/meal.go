package models

type Effort string

const (
	EffortEasy   Effort = "easy"
	EffortMedium Effort = "medium"
	EffortHard   Effort = "hard"
)

type SourceType string

const (
	SourceURL    SourceType = "url"
	SourceImage  SourceType = "image"
	SourceAI     SourceType = "ai"
	SourceManual SourceType = "manual"
)

// Meal is a recipe record. JSON tags match the persisted/cloud row shape,
// so records written by older clients load unchanged.
type Meal struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	LastCooked int64    `json:"lastCooked"` // epoch milliseconds; 0 = never cooked
	Image      string   `json:"image"`
	Effort     Effort   `json:"effort"`
	Protein    string   `json:"protein"`
	Keywords   []string `json:"keywords,omitempty"`

	Description     string   `json:"description,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Method          []string `json:"method,omitempty"`
	ThermomixMethod []string `json:"thermomixMethod,omitempty"`
	SourceURL       string   `json:"sourceUrl,omitempty"`
	Tags            []string `json:"tags,omitempty"`

	SourceType  SourceType `json:"sourceType,omitempty"`
	SourceImage string     `json:"sourceImage,omitempty"`

	Votes int `json:"votes,omitempty"`
}

// Clone returns a deep copy so callers can hand meals out without
// exposing the manager's internal slices.
func (m Meal) Clone() Meal {
	c := m
	c.Keywords = append([]string(nil), m.Keywords...)
	c.Ingredients = append([]string(nil), m.Ingredients...)
	c.Method = append([]string(nil), m.Method...)
	c.ThermomixMethod = append([]string(nil), m.ThermomixMethod...)
	c.Tags = append([]string(nil), m.Tags...)
	return c
}
