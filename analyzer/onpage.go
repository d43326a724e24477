package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AnalyzeOnPage inspects the sanitized markup for content-level issues:
// missing meta tags, heading distribution, images without alt text,
// placeholder links and canonical problems.
func AnalyzeOnPage(html string) OnPageMetrics {
	doc := parseDocument(html)

	metaTagsMissing := []string{}
	if strings.TrimSpace(doc.Find("title").First().Text()) == "" {
		metaTagsMissing = append(metaTagsMissing, "title")
	}
	if attrEmpty(doc, `meta[name="description"]`, "content") {
		metaTagsMissing = append(metaTagsMissing, "meta-description")
	}
	if attrEmpty(doc, `meta[property="og:title"]`, "content") {
		metaTagsMissing = append(metaTagsMissing, "open-graph")
	}
	if attrEmpty(doc, `meta[name="twitter:card"]`, "content") {
		metaTagsMissing = append(metaTagsMissing, "twitter-card")
	}

	headings := map[string]int{
		"h1": doc.Find("h1").Length(),
		"h2": doc.Find("h2").Length(),
		"h3": doc.Find("h3").Length(),
	}

	imagesWithoutAlt := 0
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, _ := s.Attr("alt"); alt == "" {
			imagesWithoutAlt++
		}
	})

	// "#" anchors are placeholders someone forgot to wire up;
	// javascript: targets are not real destinations either.
	brokenInternal, brokenExternal := 0, 0
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case href == "#":
			brokenInternal++
		case strings.HasPrefix(href, "javascript"):
			brokenExternal++
		}
	})

	canonicalCount := 0
	doc.Find(`link[rel="canonical"]`).Each(func(_ int, s *goquery.Selection) {
		if href, _ := s.Attr("href"); href != "" {
			canonicalCount++
		}
	})
	canonicalIssues := []string{}
	if canonicalCount != 1 {
		canonicalIssues = append(canonicalIssues, "Missing or duplicate canonical")
	}

	markupTypes := schemaTypes(structuredDataBlocks(doc))
	if markupTypes == nil {
		markupTypes = []string{}
	}

	return OnPageMetrics{
		MetaTagsMissing:     metaTagsMissing,
		Headings:            headings,
		ImagesWithoutAlt:    imagesWithoutAlt,
		BrokenInternalLinks: brokenInternal,
		BrokenExternalLinks: brokenExternal,
		CanonicalIssues:     canonicalIssues,
		SchemaMarkupTypes:   markupTypes,
	}
}

func attrEmpty(doc *goquery.Document, selector, attr string) bool {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val) == ""
}
