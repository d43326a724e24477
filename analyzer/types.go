package analyzer

import "time"

// Priority tiers for recommendations.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// CoreWebVitals holds the lab Core Web Vitals for one strategy, in
// milliseconds except CLS which is unitless.
type CoreWebVitals struct {
	LCP float64 `json:"lcp"`
	FID float64 `json:"fid"`
	CLS float64 `json:"cls"`
	TBT float64 `json:"tbt"`
}

// LabMetrics holds the secondary lab metrics for one strategy.
type LabMetrics struct {
	FCP                float64 `json:"fcp"`
	SpeedIndex         float64 `json:"si"`
	TTI                float64 `json:"tti"`
	ServerResponseTime float64 `json:"serverResponseTime"`
}

// Optimizations flags opportunity audits surfaced by the performance adapter.
type Optimizations struct {
	RenderBlockingResources int  `json:"renderBlockingResources"`
	UnoptimizedImages       int  `json:"unoptimizedImages"`
	TextCompression         bool `json:"textCompression"`
	ResponsiveImages        bool `json:"responsiveImages"`
	ModernImageFormats      bool `json:"modernImageFormats"`
}

// StrategyReport is one strategy's (mobile or desktop) slice of a
// performance adapter response. Category scores are 0-100.
type StrategyReport struct {
	PerformanceScore   int           `json:"performanceScore"`
	AccessibilityScore int           `json:"accessibilityScore"`
	BestPracticesScore int           `json:"bestPracticesScore"`
	SEOScore           int           `json:"seoScore"`
	CoreWebVitals      CoreWebVitals `json:"coreWebVitals"`
	Metrics            LabMetrics    `json:"metrics"`
	Optimizations      Optimizations `json:"optimizations"`
}

// PageSpeedReport pairs the mobile and desktop strategy reports.
type PageSpeedReport struct {
	Mobile  StrategyReport `json:"mobile"`
	Desktop StrategyReport `json:"desktop"`
}

// TechnicalMetrics covers infrastructure-level checks. When the
// performance adapter succeeded, PageSpeed is non-nil and its values are
// authoritative; otherwise the heuristic fields stand alone.
type TechnicalMetrics struct {
	HasSSL              bool             `json:"hasSsl"`
	SSLValidUntil       string           `json:"sslValidUntil,omitempty"`
	HasSitemap          bool             `json:"hasSitemap"`
	HasRobots           bool             `json:"hasRobots"`
	PerformanceScore    int              `json:"performanceScore"`
	MobileFriendlyScore int              `json:"mobileFriendlyScore"`
	AverageLoadTimeMs   int              `json:"averageLoadTimeMs"`
	PageSpeed           *PageSpeedReport `json:"pagespeed,omitempty"`
}

// OnPageMetrics covers content-level checks on the audited page.
type OnPageMetrics struct {
	MetaTagsMissing     []string       `json:"metaTagsMissing"`
	Headings            map[string]int `json:"headings"`
	ImagesWithoutAlt    int            `json:"imagesWithoutAlt"`
	BrokenInternalLinks int            `json:"brokenInternalLinks"`
	BrokenExternalLinks int            `json:"brokenExternalLinks"`
	CanonicalIssues     []string       `json:"canonicalIssues"`
	SchemaMarkupTypes   []string       `json:"schemaMarkupTypes"`
}

// NAPDetails are the name/address/phone values extracted from the page.
// An empty string means the field was not found or failed validation.
type NAPDetails struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LocalMetrics covers local-presence signals.
type LocalMetrics struct {
	NAPConsistency           bool       `json:"napConsistency"`
	NAPDetails               NAPDetails `json:"napDetails"`
	MentionsLocation         bool       `json:"mentionsLocation"`
	HasLocalPages            bool       `json:"hasLocalPages"`
	HasLocalSchema           bool       `json:"hasLocalSchema"`
	GoogleBusinessProfileURL string     `json:"googleBusinessProfileUrl,omitempty"`
}

// OffPageMetrics are estimates: the service has no crawler index, so the
// values come from live probes where possible and deterministic seeded
// estimates otherwise.
type OffPageMetrics struct {
	EstimatedBacklinks       int  `json:"estimatedBacklinks"`
	DirectoryListings        int  `json:"directoryListings"`
	DomainAuthorityScore     int  `json:"domainAuthorityScore"`
	HasGoogleBusinessProfile bool `json:"hasGoogleBusinessProfile"`
}

// AEOMetrics covers answer-engine readiness: question/answer structure,
// structured data, citability, semantic coverage, readability and
// authority signals.
type AEOMetrics struct {
	HasQAStructure   bool `json:"hasQaStructure"`
	QASections       int  `json:"qaSections"`
	HasFAQSchema     bool `json:"hasFaqSchema"`
	HasHowToSchema   bool `json:"hasHowToSchema"`
	HasArticleSchema bool `json:"hasArticleSchema"`

	StructuredDataTypes []string `json:"structuredDataTypes"`
	EntityMarkup        bool     `json:"entityMarkup"`
	RichMetadata        bool     `json:"richMetadata"`

	HasStatistics       bool `json:"hasStatistics"`
	HasSources          bool `json:"hasSources"`
	SnippetReadyContent int  `json:"snippetReadyContent"`
	HasLists            bool `json:"hasLists"`
	HasTables           bool `json:"hasTables"`

	TopicDepth       int `json:"topicDepth"`
	SemanticKeywords int `json:"semanticKeywords"`
	InternalLinks    int `json:"internalLinks"`
	RelatedQuestions int `json:"relatedQuestions"`

	BoldKeywords           int     `json:"boldKeywords"`
	AverageSentenceLength  float64 `json:"averageSentenceLength"`
	AverageParagraphLength float64 `json:"averageParagraphLength"`
	HasBulletLists         bool    `json:"hasBulletLists"`

	ContentFreshness int  `json:"contentFreshness"`
	ContentLength    int  `json:"contentLength"`
	HeadingStructure bool `json:"headingStructure"`
}

// CategoryScore is one category's contribution to the total.
type CategoryScore struct {
	Label  string `json:"label"`
	Score  int    `json:"score"`
	Weight int    `json:"weight"`
	Max    int    `json:"max"`
}

// ScoringBreakdown is the weighted aggregate of the five categories.
type ScoringBreakdown struct {
	TotalScore int             `json:"totalScore"`
	Categories []CategoryScore `json:"categories"`
}

// ResourceLink points to reference material attached to a recommendation.
type ResourceLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// RecommendationMetrics quantifies current vs target for a recommendation.
type RecommendationMetrics struct {
	Current     string `json:"current,omitempty"`
	Target      string `json:"target,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Improvement string `json:"improvement,omitempty"`
}

// Recommendation is one prioritized, actionable remediation item.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Impact      string   `json:"impact"`
	Steps       []string `json:"steps"`
	Evidence    string   `json:"evidence"`

	CodeExamples      []string               `json:"codeExamples,omitempty"`
	Resources         []ResourceLink         `json:"resources,omitempty"`
	Metrics           *RecommendationMetrics `json:"metrics,omitempty"`
	Difficulty        string                 `json:"difficulty,omitempty"`
	EstimatedTime     string                 `json:"estimatedTime,omitempty"`
	Category          string                 `json:"category,omitempty"`
	AffectedResources []string               `json:"affectedResources,omitempty"`
}

// CompetitorComparison holds the seeded estimates for one competitor URL.
type CompetitorComparison struct {
	URL               string `json:"url"`
	DomainAuthority   int    `json:"domainAuthority"`
	IndexedPages      int    `json:"indexedPages"`
	SpeedScore        int    `json:"speedScore"`
	ContentQuality    int    `json:"contentQuality"`
	HasGoogleBusiness bool   `json:"hasGoogleBusiness"`
}

// Summary is the derived executive view of a result.
type Summary struct {
	Highlights             []string `json:"highlights"`
	QuickWins              []string `json:"quickWins"`
	EstimatedTimelineWeeks int      `json:"estimatedTimelineWeeks"`
}

// AnalysisResult is the aggregate root for one audit. It is created once
// per audit run and never mutated afterwards.
type AnalysisResult struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	BusinessType string    `json:"businessType"`
	Location     string    `json:"location"`
	Timestamp    time.Time `json:"timestamp"`

	Technical TechnicalMetrics `json:"technical"`
	OnPage    OnPageMetrics    `json:"onPage"`
	Local     LocalMetrics     `json:"local"`
	OffPage   OffPageMetrics   `json:"offPage"`
	AEO       AEOMetrics       `json:"aeo"`

	Scoring         ScoringBreakdown       `json:"scoring"`
	Recommendations []Recommendation       `json:"recommendations"`
	Competitors     []CompetitorComparison `json:"competitors"`
	Summary         Summary                `json:"summary"`
}
