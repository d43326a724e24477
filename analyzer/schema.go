package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredDataBlocks decodes every JSON-LD block in the document into a
// flat list of objects. Top-level arrays are flattened; malformed JSON is
// skipped silently.
func structuredDataBlocks(doc *goquery.Document) []map[string]any {
	var blocks []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					blocks = append(blocks, m)
				}
			}
		case map[string]any:
			blocks = append(blocks, v)
		}
	})
	return blocks
}

// schemaType returns the @type of a block as a string. Array-valued types
// yield the first string entry.
func schemaType(block map[string]any) string {
	switch t := block["@type"].(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}

// schemaTypes collects the non-empty @type values of all blocks,
// preserving document order, deduplicated case-insensitively.
func schemaTypes(blocks []map[string]any) []string {
	seen := make(map[string]bool)
	var types []string
	for _, block := range blocks {
		t := schemaType(block)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		types = append(types, t)
	}
	return types
}

func anyTypeContains(types []string, fragments ...string) bool {
	for _, t := range types {
		lower := strings.ToLower(t)
		for _, frag := range fragments {
			if strings.Contains(lower, frag) {
				return true
			}
		}
	}
	return false
}

func parseDocument(html string) *goquery.Document {
	if strings.TrimSpace(html) == "" {
		html = "<html></html>"
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	}
	return doc
}
