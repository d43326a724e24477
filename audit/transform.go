package audit

import (
	"math"
	"strconv"
	"time"

	"github.com/seo-audit/backend/analyzer"
	"github.com/seo-audit/backend/scoring"
)

// The frontend consumes a different shape than the stored aggregate:
// category scores flattened, booleans instead of raw strings, display
// text for impact. These types mirror that contract.

type FrontendSSL struct {
	Valid           bool   `json:"valid"`
	ExpiryDate      string `json:"expiryDate,omitempty"`
	DaysUntilExpiry *int   `json:"daysUntilExpiry,omitempty"`
}

type FrontendSpeed struct {
	Score    int `json:"score"`
	LoadTime int `json:"loadTime,omitempty"`
}

type FrontendMobile struct {
	Friendly bool `json:"friendly"`
	Viewport bool `json:"viewport"`
}

type FrontendTechnical struct {
	Score       int                       `json:"score"`
	SSL         FrontendSSL               `json:"ssl"`
	Speed       FrontendSpeed             `json:"speed"`
	Mobile      FrontendMobile            `json:"mobile"`
	Sitemap     bool                      `json:"sitemap"`
	Robots      bool                      `json:"robots"`
	BrokenLinks []struct{}                `json:"brokenLinks"`
	PageSpeed   *analyzer.PageSpeedReport `json:"pagespeed,omitempty"`
}

type FrontendMetaTag struct {
	Page    string `json:"page"`
	Present bool   `json:"present"`
	Length  int    `json:"length,omitempty"`
	Content string `json:"content,omitempty"`
}

type FrontendMetaTags struct {
	Title        []FrontendMetaTag `json:"title"`
	Description  []FrontendMetaTag `json:"description"`
	OGTags       bool              `json:"ogTags"`
	TwitterCards bool              `json:"twitterCards"`
	Canonical    bool              `json:"canonical"`
}

type FrontendHeadings struct {
	H1     int      `json:"h1"`
	H2     int      `json:"h2"`
	H3     int      `json:"h3"`
	Issues []string `json:"issues"`
}

type FrontendImages struct {
	Total      int        `json:"total"`
	WithoutAlt int        `json:"withoutAlt"`
	Images     []struct{} `json:"images"`
}

type FrontendContent struct {
	AverageLength int `json:"averageLength"`
	PagesAnalyzed int `json:"pagesAnalyzed"`
}

type FrontendOnPage struct {
	Score    int              `json:"score"`
	MetaTags FrontendMetaTags `json:"metaTags"`
	Headings FrontendHeadings `json:"headings"`
	Images   FrontendImages   `json:"images"`
	Content  FrontendContent  `json:"content"`
}

type FrontendNAP struct {
	Name       bool                `json:"name"`
	Address    bool                `json:"address"`
	Phone      bool                `json:"phone"`
	Consistent bool                `json:"consistent"`
	Data       analyzer.NAPDetails `json:"data"`
}

type FrontendLocal struct {
	Score            int         `json:"score"`
	NAP              FrontendNAP `json:"nap"`
	LocalSchema      bool        `json:"localSchema"`
	LocationMentions int         `json:"locationMentions"`
	LocationPages    bool        `json:"locationPages"`
	GoogleBusiness   bool        `json:"googleBusiness"`
}

type FrontendOffPage struct {
	Score             int `json:"score"`
	Backlinks         int `json:"backlinks"`
	DirectoryListings int `json:"directoryListings"`
}

type FrontendAEO struct {
	Score       int `json:"score"`
	QAStructure struct {
		Present  bool `json:"present"`
		Sections int  `json:"sections"`
	} `json:"qaStructure"`
	Schema struct {
		FAQ     bool     `json:"faq"`
		HowTo   bool     `json:"howTo"`
		Article bool     `json:"article"`
		Types   []string `json:"types"`
	} `json:"schema"`
	Citability struct {
		Statistics   bool `json:"statistics"`
		Sources      bool `json:"sources"`
		SnippetReady int  `json:"snippetReady"`
	} `json:"citability"`
	Semantic struct {
		TopicDepth    int `json:"topicDepth"`
		Keywords      int `json:"keywords"`
		InternalLinks int `json:"internalLinks"`
		Questions     int `json:"questions"`
	} `json:"semantic"`
	Readability struct {
		AvgSentenceLength  float64 `json:"avgSentenceLength"`
		AvgParagraphLength float64 `json:"avgParagraphLength"`
		BoldKeywords       int     `json:"boldKeywords"`
		HasLists           bool    `json:"hasLists"`
	} `json:"readability"`
	Authority struct {
		ContentLength    int  `json:"contentLength"`
		Freshness        int  `json:"freshness"`
		HeadingStructure bool `json:"headingStructure"`
	} `json:"authority"`
}

type FrontendRecommendation struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Impact      string   `json:"impact"`

	CodeExamples      []string                        `json:"codeExamples,omitempty"`
	Resources         []analyzer.ResourceLink         `json:"resources,omitempty"`
	Metrics           *analyzer.RecommendationMetrics `json:"metrics,omitempty"`
	Difficulty        string                          `json:"difficulty,omitempty"`
	EstimatedTime     string                          `json:"estimatedTime,omitempty"`
	AffectedResources []string                        `json:"affectedResources,omitempty"`
}

type FrontendCompetitor struct {
	URL              string `json:"url"`
	DomainAuthority  int    `json:"domainAuthority"`
	IndexedPages     int    `json:"indexedPages"`
	Speed            int    `json:"speed"`
	GoogleBusiness   bool   `json:"googleBusiness"`
	AvgContentLength int    `json:"avgContentLength"`
}

type FrontendCompetitorAnalysis struct {
	Competitors []FrontendCompetitor `json:"competitors"`
	Comparison  struct {
		DomainAuthority map[string]int `json:"domainAuthority"`
		Speed           map[string]int `json:"speed"`
		ContentQuality  map[string]int `json:"contentQuality"`
	} `json:"comparison"`
}

type FrontendSummary struct {
	TotalPages    int                      `json:"totalPages"`
	TotalIssues   int                      `json:"totalIssues"`
	QuickWins     []FrontendRecommendation `json:"quickWins"`
	EstimatedTime string                   `json:"estimatedTime"`
}

// FrontendResult is the dashboard-facing shape of a finished audit.
type FrontendResult struct {
	ID                 string                      `json:"id"`
	URL                string                      `json:"url"`
	Timestamp          string                      `json:"timestamp"`
	Score              int                         `json:"score"`
	Technical          FrontendTechnical           `json:"technical"`
	OnPage             FrontendOnPage              `json:"onPage"`
	Local              FrontendLocal               `json:"local"`
	OffPage            FrontendOffPage             `json:"offPage"`
	AEO                FrontendAEO                 `json:"aeo"`
	Recommendations    []FrontendRecommendation    `json:"recommendations"`
	CompetitorAnalysis *FrontendCompetitorAnalysis `json:"competitorAnalysis,omitempty"`
	Summary            FrontendSummary             `json:"summary"`
}

// ToFrontend flattens a stored result into the dashboard contract.
func ToFrontend(result *analyzer.AnalysisResult) *FrontendResult {
	out := &FrontendResult{
		ID:        result.ID,
		URL:       result.URL,
		Timestamp: result.Timestamp.UTC().Format(time.RFC3339),
		Score:     result.Scoring.TotalScore,
	}

	out.Technical = FrontendTechnical{
		Score: categoryScore(result, scoring.LabelTechnical),
		SSL: FrontendSSL{
			Valid:      result.Technical.HasSSL,
			ExpiryDate: result.Technical.SSLValidUntil,
		},
		Speed: FrontendSpeed{
			Score:    result.Technical.PerformanceScore,
			LoadTime: result.Technical.AverageLoadTimeMs,
		},
		Mobile: FrontendMobile{
			Friendly: result.Technical.MobileFriendlyScore >= 70,
			Viewport: result.Technical.MobileFriendlyScore >= 70,
		},
		Sitemap:     result.Technical.HasSitemap,
		Robots:      result.Technical.HasRobots,
		BrokenLinks: []struct{}{},
		PageSpeed:   result.Technical.PageSpeed,
	}
	if result.Technical.SSLValidUntil != "" {
		if expiry, err := time.Parse(time.RFC3339, result.Technical.SSLValidUntil); err == nil {
			days := int(math.Floor(time.Until(expiry).Hours() / 24))
			out.Technical.SSL.DaysUntilExpiry = &days
		}
	}

	out.OnPage = FrontendOnPage{
		Score: categoryScore(result, scoring.LabelOnPage),
		MetaTags: FrontendMetaTags{
			Title:        metaTagEntry(contains(result.OnPage.MetaTagsMissing, "title"), 60, "Title"),
			Description:  metaTagEntry(contains(result.OnPage.MetaTagsMissing, "meta-description"), 140, "Description"),
			OGTags:       !contains(result.OnPage.MetaTagsMissing, "open-graph"),
			TwitterCards: !contains(result.OnPage.MetaTagsMissing, "twitter-card"),
			Canonical:    len(result.OnPage.CanonicalIssues) == 0,
		},
		Headings: FrontendHeadings{
			H1:     result.OnPage.Headings["h1"],
			H2:     result.OnPage.Headings["h2"],
			H3:     result.OnPage.Headings["h3"],
			Issues: []string{},
		},
		Images: FrontendImages{
			// Only missing-alt images are tracked per page; pad the total
			// so the ratio widget has a denominator.
			Total:      result.OnPage.ImagesWithoutAlt + 5,
			WithoutAlt: result.OnPage.ImagesWithoutAlt,
			Images:     []struct{}{},
		},
		Content: FrontendContent{AverageLength: 500, PagesAnalyzed: 1},
	}

	out.Local = FrontendLocal{
		Score: categoryScore(result, scoring.LabelLocal),
		NAP: FrontendNAP{
			Name:       result.Local.NAPDetails.Name != "",
			Address:    result.Local.NAPDetails.Address != "",
			Phone:      result.Local.NAPDetails.Phone != "",
			Consistent: result.Local.NAPConsistency,
			Data:       result.Local.NAPDetails,
		},
		LocalSchema:    result.Local.HasLocalSchema,
		LocationPages:  result.Local.HasLocalPages,
		GoogleBusiness: result.Local.GoogleBusinessProfileURL != "" || result.OffPage.HasGoogleBusinessProfile,
	}
	if result.Local.MentionsLocation {
		out.Local.LocationMentions = 1
	}

	out.OffPage = FrontendOffPage{
		Score:             categoryScore(result, scoring.LabelOffPage),
		Backlinks:         result.OffPage.EstimatedBacklinks,
		DirectoryListings: result.OffPage.DirectoryListings,
	}

	out.AEO.Score = categoryScore(result, scoring.LabelAEO)
	out.AEO.QAStructure.Present = result.AEO.HasQAStructure
	out.AEO.QAStructure.Sections = result.AEO.QASections
	out.AEO.Schema.FAQ = result.AEO.HasFAQSchema
	out.AEO.Schema.HowTo = result.AEO.HasHowToSchema
	out.AEO.Schema.Article = result.AEO.HasArticleSchema
	out.AEO.Schema.Types = result.AEO.StructuredDataTypes
	if out.AEO.Schema.Types == nil {
		out.AEO.Schema.Types = []string{}
	}
	out.AEO.Citability.Statistics = result.AEO.HasStatistics
	out.AEO.Citability.Sources = result.AEO.HasSources
	out.AEO.Citability.SnippetReady = result.AEO.SnippetReadyContent
	out.AEO.Semantic.TopicDepth = result.AEO.TopicDepth
	out.AEO.Semantic.Keywords = result.AEO.SemanticKeywords
	out.AEO.Semantic.InternalLinks = result.AEO.InternalLinks
	out.AEO.Semantic.Questions = result.AEO.RelatedQuestions
	out.AEO.Readability.AvgSentenceLength = result.AEO.AverageSentenceLength
	out.AEO.Readability.AvgParagraphLength = result.AEO.AverageParagraphLength
	out.AEO.Readability.BoldKeywords = result.AEO.BoldKeywords
	out.AEO.Readability.HasLists = result.AEO.HasBulletLists
	out.AEO.Authority.ContentLength = result.AEO.ContentLength
	out.AEO.Authority.Freshness = result.AEO.ContentFreshness
	out.AEO.Authority.HeadingStructure = result.AEO.HeadingStructure

	out.Recommendations = make([]FrontendRecommendation, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		out.Recommendations = append(out.Recommendations, FrontendRecommendation{
			ID:                rec.ID,
			Category:          frontendCategory(rec),
			Priority:          rec.Priority,
			Title:             rec.Title,
			Description:       rec.Description,
			Steps:             rec.Steps,
			Impact:            impactDisplay(rec.Impact),
			CodeExamples:      rec.CodeExamples,
			Resources:         rec.Resources,
			Metrics:           rec.Metrics,
			Difficulty:        rec.Difficulty,
			EstimatedTime:     rec.EstimatedTime,
			AffectedResources: rec.AffectedResources,
		})
	}

	if len(result.Competitors) > 0 {
		ca := &FrontendCompetitorAnalysis{
			Competitors: make([]FrontendCompetitor, 0, len(result.Competitors)),
		}
		ca.Comparison.DomainAuthority = map[string]int{}
		ca.Comparison.Speed = map[string]int{}
		ca.Comparison.ContentQuality = map[string]int{}
		for _, comp := range result.Competitors {
			ca.Competitors = append(ca.Competitors, FrontendCompetitor{
				URL:              comp.URL,
				DomainAuthority:  comp.DomainAuthority,
				IndexedPages:     comp.IndexedPages,
				Speed:            comp.SpeedScore,
				GoogleBusiness:   comp.HasGoogleBusiness,
				AvgContentLength: comp.ContentQuality * 100,
			})
			ca.Comparison.DomainAuthority[comp.URL] = comp.DomainAuthority
			ca.Comparison.Speed[comp.URL] = comp.SpeedScore
			ca.Comparison.ContentQuality[comp.URL] = comp.ContentQuality * 100
		}
		out.CompetitorAnalysis = ca
	}

	quickWins := []FrontendRecommendation{}
	for _, rec := range out.Recommendations {
		if rec.Priority != analyzer.PriorityHigh {
			continue
		}
		quickWins = append(quickWins, FrontendRecommendation{
			ID:          rec.ID,
			Category:    rec.Category,
			Priority:    rec.Priority,
			Title:       rec.Title,
			Description: rec.Description,
			Steps:       rec.Steps,
			Impact:      rec.Impact,
		})
		if len(quickWins) == 5 {
			break
		}
	}
	out.Summary = FrontendSummary{
		TotalPages:    1,
		TotalIssues:   len(result.Recommendations),
		QuickWins:     quickWins,
		EstimatedTime: estimatedTimeLabel(result.Summary.EstimatedTimelineWeeks),
	}

	return out
}

func categoryScore(result *analyzer.AnalysisResult, label string) int {
	for _, c := range result.Scoring.Categories {
		if c.Label == label {
			return c.Score
		}
	}
	return 0
}

func metaTagEntry(missing bool, length int, content string) []FrontendMetaTag {
	if missing {
		return []FrontendMetaTag{{Page: "homepage", Present: false}}
	}
	return []FrontendMetaTag{{Page: "homepage", Present: true, Length: length, Content: content}}
}

// frontendCategory maps backend categories (including the adapter's
// performance/accessibility/best-practices tags) onto the dashboard's
// five buckets.
func frontendCategory(rec analyzer.Recommendation) string {
	switch rec.Category {
	case "performance", "accessibility", "best-practices", "technical":
		return "technical"
	case "local":
		return "local"
	case "aeo":
		return "aeo"
	case "offpage", "offPage":
		return "offPage"
	case "seo", "":
		return "onPage"
	default:
		return "onPage"
	}
}

func impactDisplay(impact string) string {
	switch impact {
	case "high":
		return "High impact on ranking"
	case "medium":
		return "Medium impact on ranking"
	default:
		return "Low impact on ranking"
	}
}

func estimatedTimeLabel(weeks int) string {
	if weeks == 1 {
		return "1 week"
	}
	return strconv.Itoa(weeks) + " weeks"
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
