package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-audit/backend/analyzer"
)

// healthyInputs triggers no rule at all.
func healthyInputs() Inputs {
	return Inputs{
		Technical: analyzer.TechnicalMetrics{
			HasSSL:     true,
			HasSitemap: true,
			HasRobots:  true,
			PageSpeed: &analyzer.PageSpeedReport{
				Mobile: analyzer.StrategyReport{
					CoreWebVitals: analyzer.CoreWebVitals{LCP: 2000, CLS: 0.05, TBT: 150},
					Optimizations: analyzer.Optimizations{TextCompression: true},
				},
			},
		},
		OnPage: analyzer.OnPageMetrics{
			Headings: map[string]int{"h1": 1},
		},
		Local: analyzer.LocalMetrics{
			NAPConsistency: true,
			NAPDetails:     analyzer.NAPDetails{Name: "x", Address: "y", Phone: "z"},
			HasLocalPages:  true,
			HasLocalSchema: true,
		},
		OffPage: analyzer.OffPageMetrics{DomainAuthorityScore: 55},
		AEO: analyzer.AEOMetrics{
			HasQAStructure:         true,
			QASections:             3,
			HasFAQSchema:           true,
			HasStatistics:          true,
			HasSources:             true,
			SnippetReadyContent:    4,
			TopicDepth:             20,
			InternalLinks:          10,
			BoldKeywords:           5,
			AverageSentenceLength:  14,
			AverageParagraphLength: 3,
		},
	}
}

func TestBuildHealthySiteHasNoRecommendations(t *testing.T) {
	recs := Build(healthyInputs())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestBuildMissingSSL(t *testing.T) {
	in := healthyInputs()
	in.Technical.HasSSL = false

	recs := Build(in)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Contains(t, rec.Title, "SSL")
	assert.Equal(t, analyzer.PriorityHigh, rec.Priority)
	assert.Equal(t, "high", rec.Impact)
	assert.NotEmpty(t, rec.ID)
	assert.NotEmpty(t, rec.Evidence)
	assert.NotEmpty(t, rec.Steps)
	assert.Equal(t, "technical", rec.Category)
}

func TestBuildSlowLoadOnlyWithoutPageSpeed(t *testing.T) {
	in := healthyInputs()
	in.Technical.AverageLoadTimeMs = 5000

	// With adapter data the lab metrics rules own performance.
	assert.Empty(t, Build(in))

	in.Technical.PageSpeed = nil
	recs := Build(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Evidence, "5000")
}

func TestBuildCoreWebVitalsRules(t *testing.T) {
	in := healthyInputs()
	in.Technical.PageSpeed.Mobile.CoreWebVitals = analyzer.CoreWebVitals{LCP: 4500, CLS: 0.3, TBT: 700}
	in.Technical.PageSpeed.Mobile.Optimizations.RenderBlockingResources = 4
	in.Technical.PageSpeed.Mobile.Optimizations.UnoptimizedImages = 2
	in.Technical.PageSpeed.Mobile.Optimizations.TextCompression = false

	recs := Build(in)
	assert.Len(t, recs, 6, "LCP, CLS, TBT, render-blocking, images, compression")
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Evidence, rec.Title)
		assert.NotEmpty(t, rec.Steps, rec.Title)
	}
}

func TestBuildNAPEvidenceNamesMissingFields(t *testing.T) {
	in := healthyInputs()
	in.Local.NAPConsistency = false
	in.Local.NAPDetails = analyzer.NAPDetails{Name: "Bar Centrale"}

	recs := Build(in)
	require.Len(t, recs, 1)
	evidence := recs[0].Evidence
	assert.Contains(t, evidence, "address")
	assert.Contains(t, evidence, "phone")
	assert.NotContains(t, evidence, "name")
}

func TestBuildRuleOrderIsStable(t *testing.T) {
	in := healthyInputs()
	in.Technical.HasSSL = false
	in.Technical.HasSitemap = false
	in.OffPage.DomainAuthorityScore = 20
	in.AEO.HasQAStructure = false
	in.AEO.QASections = 0

	first := Build(in)
	second := Build(in)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
	}
	// SSL fires before sitemap/robots, which fires before AEO rules.
	assert.Contains(t, first[0].Title, "SSL")
}

func TestBuildLowPriorityRules(t *testing.T) {
	in := healthyInputs()
	in.Local.HasLocalSchema = false

	recs := Build(in)
	require.Len(t, recs, 1)
	assert.Equal(t, analyzer.PriorityLow, recs[0].Priority)
	assert.Equal(t, "low", recs[0].Impact)
}

func TestBuildReadability(t *testing.T) {
	in := healthyInputs()
	in.AEO.AverageSentenceLength = 28

	recs := Build(in)
	require.Len(t, recs, 1)
	assert.Equal(t, analyzer.PriorityLow, recs[0].Priority)
}
