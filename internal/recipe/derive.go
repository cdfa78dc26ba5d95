// Package recipe holds field derivation helpers and the partial-record
// merge used when importing recipes from the AI service.
package recipe

import (
	"net/url"
	"strings"
)

// proteinKeywords maps title substrings to a protein category, checked in
// order. First match wins.
var proteinKeywords = []struct {
	category string
	words    []string
}{
	{"Beef", []string{"beef", "steak", "burger"}},
	{"Chicken", []string{"chicken", "wings"}},
	{"Pork", []string{"pork", "bacon", "ham"}},
	{"Seafood", []string{"fish", "salmon", "tuna", "shrimp"}},
	{"Vegetarian", []string{"tofu", "salad", "veg", "pizza"}},
}

// DeriveProtein guesses a protein category from the meal title.
func DeriveProtein(title string) string {
	t := strings.ToLower(title)
	for _, entry := range proteinKeywords {
		for _, w := range entry.words {
			if strings.Contains(t, w) {
				return entry.category
			}
		}
	}
	return "Pantry / Misc"
}

// DeriveKeywords tokenizes a title into lowercase search keywords.
func DeriveKeywords(title string) []string {
	fields := strings.Fields(strings.ToLower(title))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?'\"&()")
		if len(f) > 2 {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// DeriveImageURL builds a web image-search URL for a meal without a photo.
func DeriveImageURL(title string) string {
	query := url.QueryEscape(title + " delicious cooked food")
	return "https://tse2.mm.bing.net/th?q=" + query + "&w=800&h=600&c=7&rs=1&p=0"
}
