package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag, leaving plain text. Used for values that
// end up in API responses verbatim (NAP details, evidence strings).
var textPolicy = bluemonday.StrictPolicy()

// Sanitize removes executable and layout-noise elements from raw markup
// before any analyzer sees it: script, style, iframe, object, embed and
// form elements go away, as does any attribute whose name starts with
// "on". Attribute values are left alone: javascript: hrefs must survive
// so the link analyzer can count them as broken. Structured-data blocks
// (script type="application/ld+json") are inert JSON and are kept, since
// the schema analyzers read them.
//
// Sanitization is best-effort: if the markup cannot be parsed at all the
// original string is returned, matching the fail-soft fetch contract.
func Sanitize(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if typ, _ := s.Attr("type"); strings.EqualFold(strings.TrimSpace(typ), "application/ld+json") {
			return
		}
		s.Remove()
	})
	doc.Find("style, iframe, object, embed, form").Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
					continue
				}
				kept = append(kept, attr)
			}
			node.Attr = kept
		}
	})

	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}

// CleanText flattens a markup fragment to plain text and collapses
// whitespace. Safe to echo back to API clients.
func CleanText(fragment string) string {
	return strings.Join(strings.Fields(textPolicy.Sanitize(fragment)), " ")
}
