package recommend

import (
	"strings"

	"github.com/seo-audit/backend/analyzer"
)

// categoryKeywords drives the fallback classifier. Order matters: the
// first matching group wins.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"performance", []string{"lcp", "cls", "tbt", "speed", "load", "render", "compression", "image"}},
	{"local", []string{"nap", "local", "business profile", "maps", "area"}},
	{"aeo", []string{"q&a", "question", "answer", "citab", "snippet", "readability", "faq"}},
	{"technical", []string{"ssl", "https", "sitemap", "robots", "certificate"}},
	{"offpage", []string{"authority", "backlink", "directory"}},
	{"seo", []string{"meta", "alt", "title", "canonical", "heading"}},
}

// ClassifyByTitle infers a category from a recommendation title. It is a
// declared fallback for rules that carry no explicit category tag;
// keyword matching on display text is fragile, so any rule that can know
// its category should set it directly.
func ClassifyByTitle(title string) string {
	lower := strings.ToLower(title)
	for _, group := range categoryKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.category
			}
		}
	}
	return "seo"
}

// EnsureCategories fills in the category of any recommendation that has
// none, using the title classifier.
func EnsureCategories(recs []analyzer.Recommendation) {
	for i := range recs {
		if recs[i].Category == "" {
			recs[i].Category = ClassifyByTitle(recs[i].Title)
		}
	}
}
