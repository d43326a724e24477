// Package scoring turns the five metric records into a weighted
// breakdown. It is a pure function of its inputs: no clock, no
// randomness, no I/O, so repeated calls over the same metrics always
// produce the identical breakdown.
package scoring

import (
	"math"

	"github.com/seo-audit/backend/analyzer"
)

// Category weights. They must sum to exactly 100.
const (
	WeightTechnical = 25
	WeightOnPage    = 25
	WeightLocal     = 20
	WeightOffPage   = 10
	WeightAEO       = 20
)

// Category display labels. Consumers look categories up by label, so
// these are part of the stored contract.
const (
	LabelTechnical = "Technical SEO"
	LabelOnPage    = "On-Page SEO"
	LabelLocal     = "Local SEO"
	LabelOffPage   = "Off-Page SEO"
	LabelAEO       = "AEO/RAO"
)

// Inputs bundles the five metric records.
type Inputs struct {
	Technical analyzer.TechnicalMetrics
	OnPage    analyzer.OnPageMetrics
	Local     analyzer.LocalMetrics
	OffPage   analyzer.OffPageMetrics
	AEO       analyzer.AEOMetrics
}

// Build computes the scoring breakdown. Each category score is a weighted
// sum of sub-signals normalized to [0,1]; rounding to integers happens
// only at the output boundary.
func Build(in Inputs) analyzer.ScoringBreakdown {
	categories := []analyzer.CategoryScore{
		category(LabelTechnical, technicalScore(in.Technical), WeightTechnical),
		category(LabelOnPage, onPageScore(in.OnPage), WeightOnPage),
		category(LabelLocal, localScore(in.Local), WeightLocal),
		category(LabelOffPage, offPageScore(in.OffPage), WeightOffPage),
		category(LabelAEO, aeoScore(in.AEO), WeightAEO),
	}

	total := 0.0
	for _, cat := range categories {
		total += float64(cat.Score) / float64(cat.Max) * float64(cat.Weight)
	}
	return analyzer.ScoringBreakdown{
		TotalScore: int(math.Round(math.Min(100, total))),
		Categories: categories,
	}
}

func category(label string, frac float64, weight int) analyzer.CategoryScore {
	return analyzer.CategoryScore{
		Label:  label,
		Score:  int(math.Round(frac * float64(weight))),
		Weight: weight,
		Max:    weight,
	}
}

// technicalScore has two branches that must land on the same [0,1] scale:
// the Core-Web-Vitals path when adapter data is present, and the local
// heuristic path otherwise.
func technicalScore(t analyzer.TechnicalMetrics) float64 {
	if t.PageSpeed != nil {
		mobile := t.PageSpeed.Mobile
		desktop := t.PageSpeed.Desktop

		// Linear clamps between the good and poor thresholds.
		lcp := clamp01(1 - (mobile.CoreWebVitals.LCP-2500)/1500)
		cls := clamp01(1 - (mobile.CoreWebVitals.CLS-0.1)/0.15)
		tbt := clamp01(1 - (mobile.CoreWebVitals.TBT-200)/400)
		fcp := clamp01(1 - (mobile.Metrics.FCP-1800)/1200)
		coreWebVitals := 0.35*lcp + 0.25*cls + 0.20*tbt + 0.20*fcp

		// Mobile matters more for ranking, hence the 60/40 blend.
		perf := (float64(mobile.PerformanceScore)*0.6 + float64(desktop.PerformanceScore)*0.4) / 100
		bestPractices := (float64(mobile.BestPracticesScore)*0.6 + float64(desktop.BestPracticesScore)*0.4) / 100

		return 0.10*boolVal(t.HasSSL) +
			0.10*boolVal(t.HasSitemap) +
			0.05*boolVal(t.HasRobots) +
			0.50*coreWebVitals +
			0.15*clamp01(perf) +
			0.10*clamp01(bestPractices)
	}

	loadMs := math.Max(float64(t.AverageLoadTimeMs), 1)
	return 0.15*boolVal(t.HasSSL) +
		0.15*boolVal(t.HasSitemap) +
		0.10*boolVal(t.HasRobots) +
		0.25*clamp01(float64(t.PerformanceScore)/100) +
		0.25*clamp01(float64(t.MobileFriendlyScore)/100) +
		0.10*clamp01(2000/loadMs)
}

func onPageScore(o analyzer.OnPageMetrics) float64 {
	altScore := 1.0
	if o.ImagesWithoutAlt > 0 {
		altScore = 1 / (1 + float64(o.ImagesWithoutAlt)/5)
	}
	broken := float64(o.BrokenInternalLinks + o.BrokenExternalLinks)

	return 0.25*(1-clamp01(float64(len(o.MetaTagsMissing))/10)) +
		0.20*clamp01(altScore) +
		0.20*boolVal(o.Headings["h1"] > 0) +
		0.15*boolVal(len(o.CanonicalIssues) == 0) +
		0.20*clamp01(1-broken/10)
}

// localScore gives partial NAP credit when full consistency is missed:
// each field found contributes on its own.
func localScore(l analyzer.LocalMetrics) float64 {
	napScore := 1.0
	if !l.NAPConsistency {
		napScore = 0
		if l.NAPDetails.Name != "" {
			napScore += 0.4
		}
		if l.NAPDetails.Address != "" {
			napScore += 0.3
		}
		if l.NAPDetails.Phone != "" {
			napScore += 0.3
		}
	}

	return 0.30*napScore +
		0.25*boolVal(l.HasLocalSchema) +
		0.20*boolVal(l.MentionsLocation) +
		0.15*boolVal(l.HasLocalPages) +
		0.10*boolVal(l.GoogleBusinessProfileURL != "")
}

// offPageScore normalizes each estimate against a ceiling realistic for
// small local businesses, not enterprise domains.
func offPageScore(o analyzer.OffPageMetrics) float64 {
	domainAuth := clamp01((float64(o.DomainAuthorityScore) - 25) / 45)
	backlinks := clamp01(float64(o.EstimatedBacklinks) / 60)
	directories := clamp01(float64(o.DirectoryListings) / 20)

	return 0.35*domainAuth +
		0.25*backlinks +
		0.20*directories +
		0.20*boolVal(o.HasGoogleBusinessProfile)
}

func aeoScore(a analyzer.AEOMetrics) float64 {
	qa := 1.0
	if !a.HasQAStructure {
		qa = clamp(float64(a.QASections)/3, 0, 0.7)
	}

	schema := 0.0
	if a.HasFAQSchema {
		schema += 0.4
	}
	if a.HasHowToSchema {
		schema += 0.3
	}
	if a.HasArticleSchema {
		schema += 0.2
	}
	if a.EntityMarkup {
		schema += 0.1
	}

	citable := clamp(float64(a.SnippetReadyContent)/5, 0, 0.4)
	if a.HasStatistics {
		citable += 0.3
	}
	if a.HasSources {
		citable += 0.3
	}

	semantic := clamp(float64(a.TopicDepth)/20, 0, 0.4) +
		clamp(float64(a.SemanticKeywords)/10, 0, 0.3) +
		clamp(float64(a.InternalLinks)/10, 0, 0.2) +
		clamp(float64(a.RelatedQuestions)/5, 0, 0.1)

	readability := clamp(float64(a.BoldKeywords)/5, 0, 0.2)
	if a.AverageSentenceLength > 0 && a.AverageSentenceLength <= 20 {
		readability += 0.3
	}
	if a.AverageParagraphLength > 0 && a.AverageParagraphLength <= 4 {
		readability += 0.3
	}
	if a.HasBulletLists {
		readability += 0.2
	}

	authority := 0.0
	if a.ContentLength >= 500 {
		authority += 0.4
	} else {
		authority += clamp(float64(a.ContentLength)/500, 0, 0.4)
	}
	if a.HeadingStructure {
		authority += 0.3
	}
	if a.ContentFreshness <= 90 {
		authority += 0.3
	} else {
		authority += clamp(1-float64(a.ContentFreshness-90)/365, 0, 0.3)
	}

	return clamp01(0.20*qa +
		0.25*schema +
		0.20*citable +
		0.15*semantic +
		0.10*readability +
		0.10*authority)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
