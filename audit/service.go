// Package audit orchestrates a full analysis run:
// validate, check cache, fetch and extract, score, recommend, summarize,
// then persist and cache.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seo-audit/backend/analyzer"
	"github.com/seo-audit/backend/cache"
	"github.com/seo-audit/backend/config"
	"github.com/seo-audit/backend/fetcher"
	"github.com/seo-audit/backend/pagespeed"
	"github.com/seo-audit/backend/recommend"
	"github.com/seo-audit/backend/scoring"
	"github.com/seo-audit/backend/stats"
	"github.com/seo-audit/backend/store"
)

// ErrInvalidURL marks a request URL that has no usable hostname.
var ErrInvalidURL = errors.New("invalid URL")

// Request is one audit request after transport-level decoding.
type Request struct {
	URL          string
	BusinessType string
	Location     string
	Competitors  []string
	ForceRefresh bool
}

// Service runs audits. Construct one per process and share it; all
// collaborators are safe for concurrent use.
type Service struct {
	fetcher   *fetcher.Client
	pagespeed *pagespeed.Client
	technical *analyzer.TechnicalAnalyzer
	offPage   *analyzer.OffPageAnalyzer
	cache     *cache.ResultCache
	store     *store.Store
	usage     *stats.Storage
	logger    *slog.Logger

	pagespeedTimeout time.Duration
}

// New wires the audit service from its collaborators. usage may be nil
// when counter tracking is not wanted.
func New(cfg *config.Config, fc *fetcher.Client, ps *pagespeed.Client, rc *cache.ResultCache, st *store.Store, usage *stats.Storage, logger *slog.Logger) *Service {
	return &Service{
		fetcher:          fc,
		pagespeed:        ps,
		technical:        analyzer.NewTechnicalAnalyzer(fc, logger),
		offPage:          analyzer.NewOffPageAnalyzer(fc, logger),
		cache:            rc,
		store:            st,
		usage:            usage,
		logger:           logger,
		pagespeedTimeout: cfg.PageSpeedTimeout,
	}
}

// Analyze runs the full pipeline for one request. Upstream failures
// degrade to fallback values; only validation and persistence failures
// surface as errors.
func (s *Service) Analyze(ctx context.Context, req Request) (*analyzer.AnalysisResult, error) {
	normalizedURL := fetcher.NormalizeURL(req.URL)
	if !validURL(normalizedURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, req.URL)
	}

	key := cache.Key(normalizedURL, req.Location)
	if !req.ForceRefresh {
		cached := s.cache.Get(key)
		if s.usage != nil {
			s.usage.RecordCache(cached != nil)
		}
		if cached != nil {
			s.logger.Info("audit served from cache", "url", normalizedURL, "id", cached.ID)
			return cached, nil
		}
	}

	started := time.Now()

	// The performance adapter and the document fetch run concurrently;
	// the adapter races its own timeout and the pipeline continues
	// without it.
	var (
		psReport *analyzer.PageSpeedReport
		doc      fetcher.Result
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		psCtx, cancel := context.WithTimeout(ctx, s.pagespeedTimeout)
		defer cancel()
		psReport = s.pagespeed.Analyze(psCtx, normalizedURL)
	}()
	go func() {
		defer wg.Done()
		doc = s.fetcher.Fetch(ctx, normalizedURL)
	}()
	wg.Wait()

	sanitized := fetcher.Sanitize(doc.HTML)
	sanitizedDoc := doc
	sanitizedDoc.HTML = sanitized

	technical := s.technical.Analyze(ctx, normalizedURL, sanitizedDoc, psReport)
	onPage := analyzer.AnalyzeOnPage(sanitized)
	local := analyzer.AnalyzeLocal(sanitized, req.Location)
	aeo := analyzer.AnalyzeAEO(sanitized, normalizedURL)

	offPage := s.offPage.Analyze(ctx, normalizedURL, analyzer.DomainSignals{
		HasSSL:     technical.HasSSL,
		HasSitemap: technical.HasSitemap,
		HasRobots:  technical.HasRobots,
	})
	// A local-business schema on the page is itself evidence of a
	// maintained business presence.
	offPage.HasGoogleBusinessProfile = offPage.HasGoogleBusinessProfile || local.HasLocalSchema

	competitors := AnalyzeCompetitors(req.Competitors)

	recommendations := recommend.Build(recommend.Inputs{
		Technical: technical,
		OnPage:    onPage,
		Local:     local,
		OffPage:   offPage,
		AEO:       aeo,
	})
	recommend.EnsureCategories(recommendations)

	breakdown := scoring.Build(scoring.Inputs{
		Technical: technical,
		OnPage:    onPage,
		Local:     local,
		OffPage:   offPage,
		AEO:       aeo,
	})

	result := &analyzer.AnalysisResult{
		ID:           uuid.NewString(),
		URL:          normalizedURL,
		BusinessType: req.BusinessType,
		Location:     req.Location,
		Timestamp:    time.Now().UTC(),

		Technical: technical,
		OnPage:    onPage,
		Local:     local,
		OffPage:   offPage,
		AEO:       aeo,

		Scoring:         breakdown,
		Recommendations: recommendations,
		Competitors:     competitors,
	}
	result.Summary = BuildSummary(result)

	// Persist before caching: a result we could not store must not be
	// served from cache either.
	if err := s.store.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("persisting audit %s: %w", result.ID, err)
	}
	s.cache.Set(key, result)

	s.logger.Info("audit completed",
		"url", normalizedURL,
		"id", result.ID,
		"score", breakdown.TotalScore,
		"recommendations", len(recommendations),
		"pagespeed", psReport != nil,
		"duration_ms", time.Since(started).Milliseconds())

	return result, nil
}

// History returns all stored results, newest first.
func (s *Service) History(ctx context.Context) ([]*analyzer.AnalysisResult, error) {
	return s.store.List(ctx)
}

// Get loads one stored result by id.
func (s *Service) Get(ctx context.Context, id string) (*analyzer.AnalysisResult, error) {
	return s.store.Get(ctx, id)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Hostname() != ""
}
