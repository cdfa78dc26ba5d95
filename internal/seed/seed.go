// Package seed holds the built-in example meal library loaded for new
// guest sessions.
package seed

import (
	"net/url"
	"time"

	"github.com/mattmelloy/rotation-app/internal/models"
)

const dayMS = int64(24 * time.Hour / time.Millisecond)

// seedIDs is the known seed-set used by RemoveSeedMeals.
var seedIDs = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "10": true, "11": true, "12": true,
}

// IsSeed reports whether an id belongs to the example library.
func IsSeed(id string) bool { return seedIDs[id] }

// IDs returns the seed id set in insertion order.
func IDs() []string {
	return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
}

func img(query string) string {
	q := url.QueryEscape(query + " food photography")
	return "https://tse2.mm.bing.net/th?q=" + q + "&w=800&h=600&c=7&rs=1&p=0"
}

// Meals builds the example library relative to now, so the seed data spans
// all three rotation tiers on first load.
func Meals(now time.Time) []models.Meal {
	ts := func(daysAgo int64) int64 { return now.UnixMilli() - daysAgo*dayMS }

	return []models.Meal{
		// High rotation (last 14 days)
		{
			ID: "1", Title: "Taco Tuesday", LastCooked: ts(2),
			Image: img("beef tacos lime cilantro"), Effort: models.EffortEasy, Protein: "Beef",
			Keywords: []string{"mexican", "beef", "tacos"}, SourceType: models.SourceManual,
			Tags: []string{"Family Fav", "Mexican"}, Votes: 15,
		},
		{
			ID: "2", Title: "Spaghetti Bolognese", LastCooked: ts(5),
			Image: img("spaghetti bolognese parmesan"), Effort: models.EffortMedium, Protein: "Beef",
			Keywords: []string{"pasta", "italian", "beef"}, SourceType: models.SourceManual,
			Tags: []string{"Pasta", "Italian", "Comfort"}, Votes: 12,
		},
		{
			ID: "3", Title: "Grilled Salmon & Veg", LastCooked: ts(10),
			Image: img("grilled salmon roasted vegetables"), Effort: models.EffortEasy, Protein: "Fish",
			Keywords: []string{"healthy", "fish"}, SourceType: models.SourceAI,
			Tags: []string{"Healthy", "Low Carb", "BBQ"}, Votes: 5,
		},

		// Medium rotation (14-60 days)
		{
			ID: "4", Title: "Chicken Curry", LastCooked: ts(20),
			Image: img("chicken curry rice naan"), Effort: models.EffortMedium, Protein: "Chicken",
			Keywords: []string{"spicy", "indian", "rice"}, SourceType: models.SourceURL,
			SourceURL: "https://www.bbcgoodfood.com/recipes/chicken-curry",
			Tags:      []string{"Spicy", "Rice", "Indian"}, Votes: 8,
		},
		{
			ID: "5", Title: "Homemade Pizza", LastCooked: ts(25),
			Image: img("homemade margherita pizza basil"), Effort: models.EffortHard, Protein: "Vegetarian",
			Keywords: []string{"italian", "cheese"}, SourceType: models.SourceManual,
			Tags: []string{"Weekend Project", "Kids"}, Votes: 20,
		},
		{
			ID: "6", Title: "Stir Fry Noodles", LastCooked: ts(30),
			Image: img("pork stir fry noodles vegetables"), Effort: models.EffortEasy, Protein: "Pork",
			Keywords: []string{"asian", "quick"}, SourceType: models.SourceManual,
			Tags: []string{"Asian", "Noodles", "Quick"}, Votes: 6,
		},
		{
			ID: "7", Title: "Burger Night", LastCooked: ts(45),
			Image: img("gourmet cheeseburger fries"), Effort: models.EffortMedium, Protein: "Beef",
			Keywords: []string{"american", "grill"}, SourceType: models.SourceManual,
			Tags: []string{"American", "BBQ"}, Votes: 18,
		},

		// Low rotation (> 60 days)
		{
			ID: "8", Title: "Shepherd's Pie", LastCooked: ts(70),
			Image: img("shepherds pie casserole"), Effort: models.EffortHard, Protein: "Lamb",
			Keywords: []string{"winter", "comfort"}, SourceType: models.SourceManual,
			Tags: []string{"Winter", "Casserole"}, Votes: 3,
		},
		{
			ID: "9", Title: "Fish Tacos", LastCooked: ts(90),
			Image: img("baja fish tacos cabbage"), Effort: models.EffortMedium, Protein: "Fish",
			Keywords: []string{"summer", "mexican"}, SourceType: models.SourceAI,
			Tags: []string{"Summer", "Tacos"}, Votes: 7,
		},
		{
			ID: "10", Title: "Beef Stew", LastCooked: ts(100),
			Image: img("beef stew bowl carrots potatoes"), Effort: models.EffortHard, Protein: "Beef",
			Keywords: []string{"slowcooker", "winter"}, SourceType: models.SourceManual,
			Tags: []string{"Slow Cooker", "Winter"}, Votes: 2,
		},
		{
			ID: "11", Title: "Caesar Salad", LastCooked: ts(65),
			Image: img("chicken caesar salad"), Effort: models.EffortEasy, Protein: "Chicken",
			Keywords: []string{"light", "healthy"}, SourceType: models.SourceManual,
			Tags: []string{"Salad", "Light"}, Votes: 4,
		},
		{
			ID: "12", Title: "Risotto", LastCooked: ts(120),
			Image: img("mushroom risotto"), Effort: models.EffortHard, Protein: "Vegetarian",
			Keywords: []string{"italian", "rice"}, SourceType: models.SourceManual,
			Tags: []string{"Italian", "Rice"}, Votes: 5,
		},
	}
}
