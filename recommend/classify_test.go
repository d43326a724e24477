package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seo-audit/backend/analyzer"
)

func TestClassifyByTitle(t *testing.T) {
	cases := map[string]string{
		"Improve Largest Contentful Paint (LCP)": "performance",
		"Complete missing NAP data: phone":       "local",
		"Add question-and-answer structure":      "aeo",
		"Enable an SSL certificate (HTTPS)":      "technical",
		"Strengthen domain authority":            "offpage",
		"Add missing meta tags: title":           "seo",
		"Something entirely unrelated":           "seo",
	}
	for title, want := range cases {
		assert.Equal(t, want, ClassifyByTitle(title), title)
	}
}

func TestEnsureCategories(t *testing.T) {
	recs := []analyzer.Recommendation{
		{Title: "Enable an SSL certificate", Category: ""},
		{Title: "Whatever", Category: "local"},
	}
	EnsureCategories(recs)
	assert.Equal(t, "technical", recs[0].Category)
	assert.Equal(t, "local", recs[1].Category, "explicit categories are preserved")
}
