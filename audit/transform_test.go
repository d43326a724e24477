package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-audit/backend/analyzer"
	"github.com/seo-audit/backend/scoring"
)

func transformFixture() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		ID:        "fixture-id",
		URL:       "https://ristorante.it",
		Timestamp: time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		Scoring: analyzer.ScoringBreakdown{
			TotalScore: 74,
			Categories: []analyzer.CategoryScore{
				{Label: scoring.LabelTechnical, Score: 20, Weight: 25, Max: 25},
				{Label: scoring.LabelOnPage, Score: 18, Weight: 25, Max: 25},
				{Label: scoring.LabelLocal, Score: 15, Weight: 20, Max: 20},
				{Label: scoring.LabelOffPage, Score: 6, Weight: 10, Max: 10},
				{Label: scoring.LabelAEO, Score: 15, Weight: 20, Max: 20},
			},
		},
		Technical: analyzer.TechnicalMetrics{
			HasSSL:              true,
			SSLValidUntil:       time.Now().UTC().Add(90 * 24 * time.Hour).Format(time.RFC3339),
			PerformanceScore:    81,
			AverageLoadTimeMs:   1400,
			MobileFriendlyScore: 85,
			HasSitemap:          true,
			HasRobots:           true,
		},
		OnPage: analyzer.OnPageMetrics{
			MetaTagsMissing:  []string{"meta-description", "open-graph"},
			Headings:         map[string]int{"h1": 1, "h2": 4, "h3": 2},
			ImagesWithoutAlt: 3,
		},
		Local: analyzer.LocalMetrics{
			NAPConsistency:   true,
			NAPDetails:       analyzer.NAPDetails{Name: "Ristorante", Phone: "+39 06 1234567"},
			MentionsLocation: true,
			HasLocalSchema:   true,
		},
		OffPage: analyzer.OffPageMetrics{
			EstimatedBacklinks: 120,
			DirectoryListings:  2,
		},
		Recommendations: []analyzer.Recommendation{
			{ID: "r1", Title: "Add missing meta tags: meta-description", Priority: analyzer.PriorityHigh, Impact: "high", Category: "seo", Difficulty: "easy"},
			{ID: "r2", Title: "Reduce render-blocking resources", Priority: analyzer.PriorityMedium, Impact: "medium", Category: "performance"},
			{ID: "r3", Title: "Add local-business structured data", Priority: analyzer.PriorityLow, Impact: "low", Category: "local"},
		},
		Competitors: []analyzer.CompetitorComparison{
			{URL: "https://rivale.it", DomainAuthority: 44, IndexedPages: 120, SpeedScore: 68, ContentQuality: 9, HasGoogleBusiness: true},
		},
		Summary: analyzer.Summary{EstimatedTimelineWeeks: 2},
	}
}

func TestToFrontendCategoryScores(t *testing.T) {
	out := ToFrontend(transformFixture())

	assert.Equal(t, 74, out.Score)
	assert.Equal(t, 20, out.Technical.Score)
	assert.Equal(t, 18, out.OnPage.Score)
	assert.Equal(t, 15, out.Local.Score)
	assert.Equal(t, 6, out.OffPage.Score)
	assert.Equal(t, 15, out.AEO.Score)
	assert.Equal(t, "2026-02-10T09:30:00Z", out.Timestamp)
}

func TestToFrontendSSL(t *testing.T) {
	out := ToFrontend(transformFixture())

	assert.True(t, out.Technical.SSL.Valid)
	require.NotNil(t, out.Technical.SSL.DaysUntilExpiry)
	assert.InDelta(t, 89, *out.Technical.SSL.DaysUntilExpiry, 1)

	noExpiry := transformFixture()
	noExpiry.Technical.SSLValidUntil = ""
	assert.Nil(t, ToFrontend(noExpiry).Technical.SSL.DaysUntilExpiry)
}

func TestToFrontendMobileThreshold(t *testing.T) {
	r := transformFixture()
	r.Technical.MobileFriendlyScore = 70
	assert.True(t, ToFrontend(r).Technical.Mobile.Friendly)

	r.Technical.MobileFriendlyScore = 69
	out := ToFrontend(r)
	assert.False(t, out.Technical.Mobile.Friendly)
	assert.False(t, out.Technical.Mobile.Viewport)
}

func TestToFrontendMetaTags(t *testing.T) {
	out := ToFrontend(transformFixture())
	tags := out.OnPage.MetaTags

	require.Len(t, tags.Title, 1)
	assert.True(t, tags.Title[0].Present)
	assert.Equal(t, "homepage", tags.Title[0].Page)
	assert.Equal(t, 60, tags.Title[0].Length)

	require.Len(t, tags.Description, 1)
	assert.False(t, tags.Description[0].Present)
	assert.Zero(t, tags.Description[0].Length)

	assert.False(t, tags.OGTags)
	assert.True(t, tags.TwitterCards)
	assert.True(t, tags.Canonical)
}

func TestToFrontendImagesPadding(t *testing.T) {
	out := ToFrontend(transformFixture())
	assert.Equal(t, 8, out.OnPage.Images.Total)
	assert.Equal(t, 3, out.OnPage.Images.WithoutAlt)
}

func TestToFrontendNAP(t *testing.T) {
	out := ToFrontend(transformFixture())
	assert.True(t, out.Local.NAP.Name)
	assert.False(t, out.Local.NAP.Address)
	assert.True(t, out.Local.NAP.Phone)
	assert.True(t, out.Local.NAP.Consistent)
	assert.Equal(t, 1, out.Local.LocationMentions)
}

func TestToFrontendRecommendationMapping(t *testing.T) {
	out := ToFrontend(transformFixture())
	require.Len(t, out.Recommendations, 3)

	assert.Equal(t, "onPage", out.Recommendations[0].Category)
	assert.Equal(t, "High impact on ranking", out.Recommendations[0].Impact)
	assert.Equal(t, "technical", out.Recommendations[1].Category)
	assert.Equal(t, "Medium impact on ranking", out.Recommendations[1].Impact)
	assert.Equal(t, "local", out.Recommendations[2].Category)
	assert.Equal(t, "Low impact on ranking", out.Recommendations[2].Impact)
}

func TestFrontendCategory(t *testing.T) {
	cases := map[string]string{
		"performance":    "technical",
		"accessibility":  "technical",
		"best-practices": "technical",
		"technical":      "technical",
		"local":          "local",
		"aeo":            "aeo",
		"offpage":        "offPage",
		"offPage":        "offPage",
		"seo":            "onPage",
		"":               "onPage",
		"unknown":        "onPage",
	}
	for in, want := range cases {
		assert.Equal(t, want, frontendCategory(analyzer.Recommendation{Category: in}), in)
	}
}

func TestToFrontendCompetitorAnalysis(t *testing.T) {
	out := ToFrontend(transformFixture())
	require.NotNil(t, out.CompetitorAnalysis)
	require.Len(t, out.CompetitorAnalysis.Competitors, 1)

	c := out.CompetitorAnalysis.Competitors[0]
	assert.Equal(t, 900, c.AvgContentLength)
	assert.Equal(t, 44, out.CompetitorAnalysis.Comparison.DomainAuthority["https://rivale.it"])
	assert.Equal(t, 68, out.CompetitorAnalysis.Comparison.Speed["https://rivale.it"])
	assert.Equal(t, 900, out.CompetitorAnalysis.Comparison.ContentQuality["https://rivale.it"])

	none := transformFixture()
	none.Competitors = nil
	assert.Nil(t, ToFrontend(none).CompetitorAnalysis)
}

func TestToFrontendSummary(t *testing.T) {
	out := ToFrontend(transformFixture())

	assert.Equal(t, 1, out.Summary.TotalPages)
	assert.Equal(t, 3, out.Summary.TotalIssues)
	assert.Equal(t, "2 weeks", out.Summary.EstimatedTime)

	// Quick wins carry only high-priority items, stripped of metadata.
	require.Len(t, out.Summary.QuickWins, 1)
	assert.Equal(t, "r1", out.Summary.QuickWins[0].ID)
	assert.Equal(t, "easy", out.Recommendations[0].Difficulty)
	assert.Empty(t, out.Summary.QuickWins[0].Difficulty)
}

func TestEstimatedTimeLabel(t *testing.T) {
	assert.Equal(t, "1 week", estimatedTimeLabel(1))
	assert.Equal(t, "6 weeks", estimatedTimeLabel(6))
}
