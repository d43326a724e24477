// Package pagespeed adapts the Google PageSpeed Insights v5 API into the
// analyzer's performance report. The adapter degrades gracefully: any
// failure, timeout or missing API key yields nil, and the technical
// analysis falls back to its local heuristics.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/seo-audit/backend/analyzer"
)

const apiURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// perStrategyTimeout bounds each Lighthouse run; a cold run usually takes
// 30-60s.
const perStrategyTimeout = 60 * time.Second

// Client calls PageSpeed Insights for both strategies in parallel.
type Client struct {
	apiKey string
	http   *http.Client
	logger *slog.Logger
}

// New returns a client. An empty apiKey produces a disabled client whose
// Analyze always returns nil.
func New(apiKey string, totalTimeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: totalTimeout},
		logger: logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Analyze runs mobile and desktop Lighthouse audits concurrently and
// collects whatever settled. Returns nil when disabled or when both
// strategies failed; a single-strategy failure yields a zero-valued
// report for that strategy.
func (c *Client) Analyze(ctx context.Context, pageURL string) *analyzer.PageSpeedReport {
	if !c.Enabled() {
		return nil
	}

	var (
		mobile, desktop *analyzer.StrategyReport
		wg              sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		mobile = c.analyzeStrategy(ctx, pageURL, "mobile")
	}()
	go func() {
		defer wg.Done()
		desktop = c.analyzeStrategy(ctx, pageURL, "desktop")
	}()
	wg.Wait()

	if mobile == nil && desktop == nil {
		c.logger.Warn("pagespeed unavailable for both strategies", "url", pageURL)
		return nil
	}

	report := &analyzer.PageSpeedReport{}
	if mobile != nil {
		report.Mobile = *mobile
	}
	if desktop != nil {
		report.Desktop = *desktop
	}
	c.logger.Info("pagespeed analysis completed",
		"url", pageURL,
		"mobile", mobile != nil,
		"desktop", desktop != nil)
	return report
}

// apiResponse mirrors the slice of the v5 payload this adapter reads.
type apiResponse struct {
	LoadingExperience *struct {
		Metrics map[string]struct {
			Percentile float64 `json:"percentile"`
		} `json:"metrics"`
	} `json:"loadingExperience"`
	LighthouseResult *struct {
		Categories map[string]struct {
			Score *float64 `json:"score"`
		} `json:"categories"`
		Audits map[string]struct {
			NumericValue float64  `json:"numericValue"`
			Score        *float64 `json:"score"`
			Details      *struct {
				Items []json.RawMessage `json:"items"`
			} `json:"details"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

func (c *Client) analyzeStrategy(ctx context.Context, pageURL, strategy string) *analyzer.StrategyReport {
	sctx, cancel := context.WithTimeout(ctx, perStrategyTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("key", c.apiKey)
	params.Set("strategy", strategy)
	params["category"] = []string{"PERFORMANCE", "ACCESSIBILITY", "BEST_PRACTICES", "SEO"}

	req, err := http.NewRequestWithContext(sctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("pagespeed request failed", "strategy", strategy, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("pagespeed request rejected", "strategy", strategy, "status", resp.StatusCode, "hint", statusHint(resp.StatusCode))
		return nil
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("pagespeed payload undecodable", "strategy", strategy, "error", err)
		return nil
	}
	lighthouse := payload.LighthouseResult
	if lighthouse == nil || lighthouse.Categories == nil {
		return nil
	}

	audit := func(name string) float64 { return lighthouse.Audits[name].NumericValue }
	auditPassed := func(name string) bool {
		s := lighthouse.Audits[name].Score
		return s != nil && *s == 1
	}
	auditItems := func(name string) int {
		d := lighthouse.Audits[name].Details
		if d == nil {
			return 0
		}
		return len(d.Items)
	}
	category := func(name string) int {
		s := lighthouse.Categories[name].Score
		if s == nil {
			return 0
		}
		return int(math.Round(*s * 100))
	}

	// FID comes from field data when present; TBT is the lab stand-in.
	fid := audit("total-blocking-time")
	if payload.LoadingExperience != nil {
		if m, ok := payload.LoadingExperience.Metrics["FIRST_INPUT_DELAY_MS"]; ok && m.Percentile > 0 {
			fid = m.Percentile
		}
	}

	return &analyzer.StrategyReport{
		PerformanceScore:   category("performance"),
		AccessibilityScore: category("accessibility"),
		BestPracticesScore: category("best-practices"),
		SEOScore:           category("seo"),
		CoreWebVitals: analyzer.CoreWebVitals{
			LCP: math.Round(audit("largest-contentful-paint")),
			FID: math.Round(fid),
			CLS: math.Round(audit("cumulative-layout-shift")*1000) / 1000,
			TBT: math.Round(audit("total-blocking-time")),
		},
		Metrics: analyzer.LabMetrics{
			FCP:                math.Round(audit("first-contentful-paint")),
			SpeedIndex:         math.Round(audit("speed-index")),
			TTI:                math.Round(audit("interactive")),
			ServerResponseTime: math.Round(audit("server-response-time")),
		},
		Optimizations: analyzer.Optimizations{
			RenderBlockingResources: auditItems("render-blocking-resources"),
			UnoptimizedImages:       auditItems("uses-optimized-images"),
			TextCompression:         auditPassed("uses-text-compression"),
			ResponsiveImages:        auditPassed("uses-responsive-images"),
			ModernImageFormats:      auditPassed("modern-image-formats"),
		},
	}
}

func statusHint(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "URL invalid or unreachable for Lighthouse"
	case http.StatusForbidden:
		return "API key invalid or quota exhausted"
	case http.StatusTooManyRequests:
		return "daily quota exhausted"
	default:
		return fmt.Sprintf("unexpected status %d", status)
	}
}
