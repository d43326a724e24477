package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/seo-audit/backend/fetcher"
)

// DomainSignals are the boolean infrastructure signals feeding the
// domain-authority estimate.
type DomainSignals struct {
	HasSSL     bool
	HasSitemap bool
	HasRobots  bool
}

// ProbeEndpoints holds the base URLs of the external services the
// off-page probes query. Tests point them at a local server.
type ProbeEndpoints struct {
	Search       string
	PagineGialle string
	Trustpilot   string
	Yelp         string
	Maps         string
}

func defaultProbeEndpoints() ProbeEndpoints {
	return ProbeEndpoints{
		Search:       "https://www.bing.com",
		PagineGialle: "https://www.paginegialle.it",
		Trustpilot:   "https://www.trustpilot.com",
		Yelp:         "https://www.yelp.it",
		Maps:         "https://www.google.com",
	}
}

// OffPageAnalyzer estimates off-site presence. There is no crawler index
// behind this service: the backlink count comes from a best-effort search
// engine probe, the rest from deterministic per-domain estimates. Every
// value is an estimate, not ground truth.
type OffPageAnalyzer struct {
	client       *fetcher.Client
	logger       *slog.Logger
	probeTimeout time.Duration

	// Endpoints may be replaced before the first Analyze call.
	Endpoints ProbeEndpoints
}

func NewOffPageAnalyzer(client *fetcher.Client, logger *slog.Logger) *OffPageAnalyzer {
	return &OffPageAnalyzer{
		client:       client,
		logger:       logger,
		probeTimeout: 6 * time.Second,
		Endpoints:    defaultProbeEndpoints(),
	}
}

var commonTLDs = []string{".com", ".it", ".org", ".net"}

var resultCountRe = regexp.MustCompile(`([\d.,]+)\s+(?:results|risultati)`)

// Analyze estimates the off-page metrics for pageURL. The three external
// probes (backlink search, directory listings, business profile) run
// concurrently; each failure falls back to the seeded estimate for that
// signal without affecting the others.
func (a *OffPageAnalyzer) Analyze(ctx context.Context, pageURL string, signals DomainSignals) OffPageMetrics {
	domain := registrableDomain(pageURL)
	r := seededRandom(domain)

	da := 20.0
	if signals.HasSSL {
		da += 10
	}
	if signals.HasSitemap {
		da += 8
	}
	if signals.HasRobots {
		da += 5
	}
	for _, tld := range commonTLDs {
		if strings.HasSuffix(domain, tld) {
			da += 7
			break
		}
	}
	da += r * 30
	domainAuthority := clampInt(int(math.Round(da)), 15, 100)

	probeCtx, cancel := context.WithTimeout(ctx, a.probeTimeout)
	defer cancel()

	var (
		backlinks   int
		directories int
		hasGBP      bool
		wg          sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		backlinks = a.probeBacklinks(probeCtx, domain, r)
	}()
	go func() {
		defer wg.Done()
		directories = a.probeDirectories(probeCtx, domain, r)
	}()
	go func() {
		defer wg.Done()
		hasGBP = a.probeBusinessProfile(probeCtx, domain, r)
	}()
	wg.Wait()

	return OffPageMetrics{
		EstimatedBacklinks:       backlinks,
		DirectoryListings:        directories,
		DomainAuthorityScore:     domainAuthority,
		HasGoogleBusinessProfile: hasGBP,
	}
}

// probeBacklinks scrapes a search engine indexed-page count as a weak
// backlink proxy. Search engines routinely block this; any failure falls
// back to the seeded estimate.
func (a *OffPageAnalyzer) probeBacklinks(ctx context.Context, domain string, r float64) int {
	fallback := int(math.Round(30 + r*120))

	searchURL := a.Endpoints.Search + "/search?q=" + url.QueryEscape("site:"+domain)
	body, status, err := a.client.FetchSmall(ctx, searchURL)
	if err != nil || status != 200 {
		a.logger.Debug("backlink probe unavailable", "domain", domain, "error", err)
		return fallback
	}

	match := resultCountRe.FindStringSubmatch(body)
	if match == nil {
		return fallback
	}
	raw := strings.NewReplacer(".", "", ",", "").Replace(match[1])
	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		return fallback
	}
	// Indexed pages are a proxy, not a backlink count; keep the estimate
	// inside the same band the fallback uses.
	return clampInt(count, 1, 150)
}

// probeDirectories checks a few known directory profile URLs. Hits scale
// the listing estimate; no hits at all means the probes were blocked and
// the seeded estimate stands in.
func (a *OffPageAnalyzer) probeDirectories(ctx context.Context, domain string, r float64) int {
	slug := strings.TrimSuffix(domain, suffixOf(domain))
	targets := []string{
		a.Endpoints.PagineGialle + "/ricerca/" + url.PathEscape(slug),
		a.Endpoints.Trustpilot + "/review/" + url.PathEscape(domain),
		a.Endpoints.Yelp + "/biz/" + url.PathEscape(slug),
	}

	hits := 0
	for _, target := range targets {
		if a.client.Exists(ctx, target) {
			hits++
		}
	}
	if hits == 0 {
		return int(math.Round(8 + r*27))
	}
	return clampInt(8+hits*9, 8, 35)
}

// probeBusinessProfile checks for a maps presence; when the probe cannot
// complete, the seeded estimate decides.
func (a *OffPageAnalyzer) probeBusinessProfile(ctx context.Context, domain string, r float64) bool {
	target := a.Endpoints.Maps + "/maps/search/" + url.PathEscape(domain)
	_, status, err := a.client.FetchSmall(ctx, target)
	if err != nil || status == 0 {
		return r > 0.30
	}
	return status < 400
}

// seededRandom maps a domain to a stable float in [0,1): the first 8 hex
// digits of its md5, normalized. Repeated calls for the same domain are
// bit-identical, so repeated audits of a domain agree.
func seededRandom(seed string) float64 {
	sum := md5.Sum([]byte(seed))
	hexed := hex.EncodeToString(sum[:])
	n, err := strconv.ParseUint(hexed[:8], 16, 64)
	if err != nil {
		return 0
	}
	return float64(n) / float64(0xffffffff)
}

// registrableDomain reduces a URL to its eTLD+1 so www / host variants
// hash to the same estimates.
func registrableDomain(pageURL string) string {
	u, err := url.Parse(pageURL)
	host := pageURL
	if err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}

func suffixOf(domain string) string {
	if i := strings.LastIndex(domain, "."); i >= 0 {
		return domain[i:]
	}
	return ""
}
