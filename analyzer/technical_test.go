package analyzer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seo-audit/backend/fetcher"
)

func newTechnicalAnalyzer() *TechnicalAnalyzer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTechnicalAnalyzer(fetcher.New(2*time.Second, 1*time.Second, "TestBot/1.0", logger), logger)
}

func TestTechnicalAnalyzeHeuristicBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			w.WriteHeader(http.StatusOK)
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	doc := fetcher.Result{
		HTML:     `<html><head><meta name="viewport" content="width=device-width"></head><body></body></html>`,
		Status:   200,
		LoadTime: 2 * time.Second,
	}
	m := newTechnicalAnalyzer().Analyze(context.Background(), srv.URL, doc, nil)

	assert.False(t, m.HasSSL, "httptest serves plain http")
	assert.Empty(t, m.SSLValidUntil)
	assert.True(t, m.HasSitemap)
	assert.True(t, m.HasRobots)
	assert.Equal(t, 10, m.PerformanceScore, "round(7800/2000) clamped to the floor")
	assert.Equal(t, 2000, m.AverageLoadTimeMs)
	assert.Equal(t, 80, m.MobileFriendlyScore)
	assert.Nil(t, m.PageSpeed)
}

func TestTechnicalAnalyzeFailedFetch(t *testing.T) {
	m := newTechnicalAnalyzer().Analyze(context.Background(), "http://127.0.0.1:1", fetcher.Result{}, nil)

	assert.False(t, m.HasSitemap)
	assert.False(t, m.HasRobots)
	assert.Equal(t, 35, m.PerformanceScore)
	assert.Equal(t, 4000, m.AverageLoadTimeMs)
	assert.Equal(t, 40, m.MobileFriendlyScore, "no viewport in an empty document")
}

func TestTechnicalAnalyzePageSpeedBranch(t *testing.T) {
	ps := &PageSpeedReport{
		Mobile: StrategyReport{
			PerformanceScore:   72,
			AccessibilityScore: 88,
			Metrics:            LabMetrics{ServerResponseTime: 350},
		},
	}
	m := newTechnicalAnalyzer().Analyze(context.Background(), "https://example.invalid", fetcher.Result{LoadTime: time.Second}, ps)

	assert.True(t, m.HasSSL)
	assert.NotEmpty(t, m.SSLValidUntil)
	assert.Equal(t, 72, m.PerformanceScore)
	assert.Equal(t, 88, m.MobileFriendlyScore)
	assert.Equal(t, 350, m.AverageLoadTimeMs)
	assert.Same(t, ps, m.PageSpeed)
}

func TestTechnicalAnalyzePageSpeedLoadTimeFallbacks(t *testing.T) {
	ps := &PageSpeedReport{Mobile: StrategyReport{CoreWebVitals: CoreWebVitals{LCP: 2600}}}
	m := newTechnicalAnalyzer().Analyze(context.Background(), "https://example.invalid", fetcher.Result{}, ps)
	assert.Equal(t, 2600, m.AverageLoadTimeMs)

	empty := &PageSpeedReport{}
	m = newTechnicalAnalyzer().Analyze(context.Background(), "https://example.invalid", fetcher.Result{}, empty)
	assert.Equal(t, 4000, m.AverageLoadTimeMs)
}

func TestRobotsProbeRejectsHTMLErrorPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>not found</html>"))
	}))
	defer srv.Close()

	a := newTechnicalAnalyzer()
	assert.False(t, a.probeRobots(context.Background(), srv.URL))
}

func TestOriginOf(t *testing.T) {
	assert.Equal(t, "https://example.it", originOf("https://example.it/menu/piatti"))
	assert.Equal(t, "not a url", originOf("not a url"))
}
