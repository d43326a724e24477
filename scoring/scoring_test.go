package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-audit/backend/analyzer"
)

func strongInputs() Inputs {
	return Inputs{
		Technical: analyzer.TechnicalMetrics{
			HasSSL:              true,
			HasSitemap:          true,
			HasRobots:           true,
			PerformanceScore:    95,
			MobileFriendlyScore: 90,
			AverageLoadTimeMs:   900,
		},
		OnPage: analyzer.OnPageMetrics{
			Headings:          map[string]int{"h1": 1, "h2": 4},
			MetaTagsMissing:   []string{},
			CanonicalIssues:   []string{},
			SchemaMarkupTypes: []string{"Restaurant"},
		},
		Local: analyzer.LocalMetrics{
			NAPConsistency:           true,
			NAPDetails:               analyzer.NAPDetails{Name: "x", Address: "Via Roma 1", Phone: "021234567"},
			MentionsLocation:         true,
			HasLocalPages:            true,
			HasLocalSchema:           true,
			GoogleBusinessProfileURL: "https://g.page/x",
		},
		OffPage: analyzer.OffPageMetrics{
			DomainAuthorityScore:     70,
			EstimatedBacklinks:       60,
			DirectoryListings:        20,
			HasGoogleBusinessProfile: true,
		},
		AEO: analyzer.AEOMetrics{
			HasQAStructure:         true,
			HasFAQSchema:           true,
			HasHowToSchema:         true,
			HasArticleSchema:       true,
			EntityMarkup:           true,
			HasStatistics:          true,
			HasSources:             true,
			SnippetReadyContent:    5,
			TopicDepth:             30,
			SemanticKeywords:       15,
			InternalLinks:          12,
			RelatedQuestions:       6,
			BoldKeywords:           6,
			AverageSentenceLength:  15,
			AverageParagraphLength: 3,
			HasBulletLists:         true,
			ContentLength:          1200,
			ContentFreshness:       30,
			HeadingStructure:       true,
		},
	}
}

func TestBuildDeterministic(t *testing.T) {
	in := strongInputs()
	first := Build(in)
	second := Build(in)
	assert.Equal(t, first, second)
}

func TestBuildWeightInvariant(t *testing.T) {
	breakdown := Build(strongInputs())

	require.Len(t, breakdown.Categories, 5)
	totalWeight := 0
	for _, cat := range breakdown.Categories {
		totalWeight += cat.Weight
		assert.Equal(t, cat.Weight, cat.Max)
		assert.GreaterOrEqual(t, cat.Score, 0)
		assert.LessOrEqual(t, cat.Score, cat.Max)
	}
	assert.Equal(t, 100, totalWeight)
}

func TestBuildStrongSiteScoresHigh(t *testing.T) {
	breakdown := Build(strongInputs())
	assert.GreaterOrEqual(t, breakdown.TotalScore, 90)
	assert.LessOrEqual(t, breakdown.TotalScore, 100)
}

func TestBuildEmptyInputsHasFloor(t *testing.T) {
	breakdown := Build(Inputs{
		OnPage: analyzer.OnPageMetrics{Headings: map[string]int{}},
		AEO:    analyzer.AEOMetrics{ContentFreshness: 30},
	})

	// Even an empty site earns the no-issue credits (alt text, broken
	// links, canonical absence is an issue but counted once).
	assert.Greater(t, breakdown.TotalScore, 0)
	assert.Less(t, breakdown.TotalScore, 50)
}

func TestCategoryLabelsStable(t *testing.T) {
	breakdown := Build(Inputs{})
	labels := make([]string, 0, 5)
	for _, cat := range breakdown.Categories {
		labels = append(labels, cat.Label)
	}
	assert.Equal(t, []string{LabelTechnical, LabelOnPage, LabelLocal, LabelOffPage, LabelAEO}, labels)
}

func TestTechnicalScorePageSpeedBranch(t *testing.T) {
	base := analyzer.TechnicalMetrics{
		HasSSL:     true,
		HasSitemap: true,
		HasRobots:  true,
		PageSpeed: &analyzer.PageSpeedReport{
			Mobile: analyzer.StrategyReport{
				PerformanceScore:   100,
				BestPracticesScore: 100,
				CoreWebVitals:      analyzer.CoreWebVitals{LCP: 2000, CLS: 0.05, TBT: 100},
				Metrics:            analyzer.LabMetrics{FCP: 1500},
			},
			Desktop: analyzer.StrategyReport{PerformanceScore: 100, BestPracticesScore: 100},
		},
	}
	assert.InDelta(t, 1.0, technicalScore(base), 1e-9, "all signals at the good thresholds")

	slow := base
	slow.PageSpeed = &analyzer.PageSpeedReport{
		Mobile: analyzer.StrategyReport{
			CoreWebVitals: analyzer.CoreWebVitals{LCP: 5000, CLS: 0.4, TBT: 800},
			Metrics:       analyzer.LabMetrics{FCP: 3500},
		},
	}
	assert.Less(t, technicalScore(slow), technicalScore(base))
}

func TestLocalScorePartialNAPCredit(t *testing.T) {
	missing := analyzer.LocalMetrics{}
	nameOnly := analyzer.LocalMetrics{NAPDetails: analyzer.NAPDetails{Name: "Bar Centrale"}}
	full := analyzer.LocalMetrics{
		NAPConsistency: true,
		NAPDetails:     analyzer.NAPDetails{Name: "x", Address: "y", Phone: "z"},
	}

	assert.Less(t, localScore(missing), localScore(nameOnly))
	assert.Less(t, localScore(nameOnly), localScore(full))
}

func TestOnPageScoreAltPenaltyIsGradual(t *testing.T) {
	clean := analyzer.OnPageMetrics{Headings: map[string]int{"h1": 1}}
	few := clean
	few.ImagesWithoutAlt = 2
	many := clean
	many.ImagesWithoutAlt = 30

	assert.Greater(t, onPageScore(clean), onPageScore(few))
	assert.Greater(t, onPageScore(few), onPageScore(many))
	assert.Positive(t, onPageScore(many), "penalty never zeroes the category")
}

func TestOffPageScoreScalesWithAuthority(t *testing.T) {
	weak := analyzer.OffPageMetrics{DomainAuthorityScore: 25}
	strong := analyzer.OffPageMetrics{DomainAuthorityScore: 70, EstimatedBacklinks: 100, DirectoryListings: 25, HasGoogleBusinessProfile: true}

	assert.Less(t, offPageScore(weak), offPageScore(strong))
	assert.LessOrEqual(t, offPageScore(strong), 1.0)
}
