package audit

import (
	"crypto/sha1"
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/seo-audit/backend/analyzer"
	"github.com/seo-audit/backend/config"
)

// AnalyzeCompetitors produces deterministic benchmark estimates for the
// requested competitor URLs. Competitor sites are not crawled; the
// values are hash-seeded, stable per URL across runs.
func AnalyzeCompetitors(urls []string) []analyzer.CompetitorComparison {
	comparisons := []analyzer.CompetitorComparison{}
	for _, raw := range urls {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		comparisons = append(comparisons, analyzer.CompetitorComparison{
			URL:               trimmed,
			DomainAuthority:   int(math.Round(pseudoRandom(trimmed, 20, 75))),
			IndexedPages:      int(math.Round(pseudoRandom(trimmed+"pages", 15, 350))),
			SpeedScore:        int(math.Round(pseudoRandom(trimmed+"speed", 40, 95))),
			ContentQuality:    int(math.Round(pseudoRandom(trimmed+"content", 50, 1600))),
			HasGoogleBusiness: pseudoRandom(trimmed+"gbp", 0, 1) > 0.4,
		})
		if len(comparisons) == config.MaxCompetitors {
			break
		}
	}
	return comparisons
}

// pseudoRandom maps a seed string to a stable value in [min, max): the
// first 8 hex digits of its SHA-1, scaled into the range.
func pseudoRandom(seed string, min, max float64) float64 {
	sum := sha1.Sum([]byte(seed))
	n, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	return min + float64(n)/float64(0xffffffff)*(max-min)
}
