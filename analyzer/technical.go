package analyzer

import (
	"context"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/seo-audit/backend/fetcher"
)

// TechnicalAnalyzer probes infrastructure-level signals. SSL is inferred
// from the URL scheme only; sitemap and robots existence come from
// lightweight probes against the origin.
type TechnicalAnalyzer struct {
	client *fetcher.Client
	logger *slog.Logger
}

func NewTechnicalAnalyzer(client *fetcher.Client, logger *slog.Logger) *TechnicalAnalyzer {
	return &TechnicalAnalyzer{client: client, logger: logger}
}

// Analyze builds the technical metrics for pageURL. When a performance
// adapter report is available its mobile values are authoritative;
// otherwise scores come from the local load-time and viewport heuristics.
// The sitemap and robots probes run concurrently and fail independently.
func (a *TechnicalAnalyzer) Analyze(ctx context.Context, pageURL string, doc fetcher.Result, ps *PageSpeedReport) TechnicalMetrics {
	hasSSL := strings.HasPrefix(pageURL, "https://")

	sslValidUntil := ""
	if hasSSL {
		// Placeholder expiry; a live certificate check would replace this.
		sslValidUntil = time.Now().AddDate(0, 6, 0).UTC().Format(time.RFC3339)
	}

	origin := originOf(pageURL)

	var hasSitemap, hasRobots bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hasSitemap = a.client.Exists(ctx, origin+"/sitemap.xml")
	}()
	go func() {
		defer wg.Done()
		hasRobots = a.probeRobots(ctx, origin)
	}()
	wg.Wait()

	metrics := TechnicalMetrics{
		HasSSL:        hasSSL,
		SSLValidUntil: sslValidUntil,
		HasSitemap:    hasSitemap,
		HasRobots:     hasRobots,
		PageSpeed:     ps,
	}

	loadMs := int(doc.LoadTime.Milliseconds())

	if ps != nil {
		mobile := ps.Mobile
		metrics.PerformanceScore = mobile.PerformanceScore
		// Accessibility covers the mobile-usability audits.
		metrics.MobileFriendlyScore = mobile.AccessibilityScore
		switch {
		case mobile.Metrics.ServerResponseTime > 0:
			metrics.AverageLoadTimeMs = int(mobile.Metrics.ServerResponseTime)
		case mobile.CoreWebVitals.LCP > 0:
			metrics.AverageLoadTimeMs = int(mobile.CoreWebVitals.LCP)
		case loadMs > 0:
			metrics.AverageLoadTimeMs = loadMs
		default:
			metrics.AverageLoadTimeMs = 4000
		}
		return metrics
	}

	if loadMs == 0 {
		metrics.PerformanceScore = 35
		metrics.AverageLoadTimeMs = 4000
	} else {
		metrics.PerformanceScore = clampInt(int(math.Round(7800/float64(loadMs))), 10, 95)
		metrics.AverageLoadTimeMs = maxInt(loadMs, 500)
	}

	hasViewport := parseDocument(doc.HTML).Find(`meta[name="viewport"]`).Length() > 0
	if hasViewport {
		metrics.MobileFriendlyScore = 80
	} else {
		metrics.MobileFriendlyScore = 40
	}
	return metrics
}

// probeRobots requires the robots.txt body to actually parse as robots
// rules, not just return a 200 page.
func (a *TechnicalAnalyzer) probeRobots(ctx context.Context, origin string) bool {
	body, status, err := a.client.FetchSmall(ctx, origin+"/robots.txt")
	if err != nil || status >= 400 {
		return false
	}
	robots, err := robotstxt.FromStatusAndBytes(status, []byte(body))
	if err != nil {
		a.logger.Debug("robots.txt unparseable", "origin", origin, "error", err)
		return false
	}
	return robots != nil
}

func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Scheme + "://" + u.Host
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
