package audit

import (
	"math"

	"github.com/seo-audit/backend/analyzer"
)

// BuildSummary derives the executive summary from a finished result.
// It reads only the result, so the same result always yields the same
// summary.
func BuildSummary(result *analyzer.AnalysisResult) analyzer.Summary {
	highlights := []string{}
	if result.Technical.HasSSL {
		highlights = append(highlights, "SSL certificate active")
	}
	if result.Local.NAPConsistency {
		highlights = append(highlights, "Consistent NAP data")
	}
	if len(result.OnPage.SchemaMarkupTypes) > 0 {
		highlights = append(highlights, "Schema markup detected")
	}
	if result.AEO.HasQAStructure {
		highlights = append(highlights, "Q&A structure present (AEO)")
	}
	if result.AEO.HasFAQSchema || result.AEO.HasHowToSchema || result.AEO.HasArticleSchema {
		highlights = append(highlights, "AEO-optimized schema (FAQ/HowTo/Article)")
	}

	quickWins := []string{}
	for _, rec := range result.Recommendations {
		if rec.Priority == analyzer.PriorityLow {
			continue
		}
		quickWins = append(quickWins, rec.Title)
		if len(quickWins) == 5 {
			break
		}
	}

	weeks := int(math.Round(float64(len(result.Recommendations)) / 2))
	if weeks < 2 {
		weeks = 2
	}
	if weeks > 12 {
		weeks = 12
	}

	return analyzer.Summary{
		Highlights:             highlights,
		QuickWins:              quickWins,
		EstimatedTimelineWeeks: weeks,
	}
}
