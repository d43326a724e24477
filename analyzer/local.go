package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var localBusinessTypes = map[string]bool{
	"localbusiness":     true,
	"restaurant":        true,
	"foodestablishment": true,
	"organization":      true,
}

var localSchemaTypes = map[string]bool{
	"localbusiness":     true,
	"restaurant":        true,
	"foodestablishment": true,
	"organization":      true,
	"store":             true,
	"place":             true,
}

// AnalyzeLocal extracts local-presence signals from the sanitized markup.
// NAP values come from three tiers in priority order: microdata
// attributes, structured-data blocks of known local-business types, then
// regex extraction from page text (footer and contact sections first).
// Phone and address values must pass the Italian-format validators;
// values that fail are discarded, not corrected.
func AnalyzeLocal(html, location string) LocalMetrics {
	doc := parseDocument(html)
	pageText := strings.ToLower(doc.Find("body").Text())

	nap := NAPDetails{
		Name:    strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text()),
		Address: strings.TrimSpace(doc.Find(`[itemprop="address"]`).Text()),
		Phone:   strings.TrimSpace(doc.Find(`[itemprop="telephone"]`).First().Text()),
	}

	blocks := structuredDataBlocks(doc)
	for _, block := range blocks {
		if !localBusinessTypes[strings.ToLower(schemaType(block))] {
			continue
		}
		if nap.Name == "" {
			if name, ok := block["name"].(string); ok {
				nap.Name = strings.TrimSpace(name)
			}
		}
		if nap.Address == "" {
			nap.Address = schemaAddress(block["address"])
		}
		if nap.Phone == "" {
			if phone, ok := block["telephone"].(string); ok {
				nap.Phone = strings.TrimSpace(phone)
			}
		}
	}

	// Text extraction prefers footer/contact sections over the body.
	contactText := contactSectionText(doc)
	if nap.Phone == "" {
		nap.Phone = ExtractPhone(pageText, contactText)
	}
	if nap.Address == "" {
		nap.Address = ExtractAddress(pageText, contactText)
	}

	// Validation gates: an invalid value counts as absent.
	if nap.Phone != "" && !ValidItalianPhone(nap.Phone) {
		nap.Phone = ""
	}
	if nap.Address != "" && !ValidItalianAddress(nap.Address) {
		nap.Address = ""
	}

	napConsistency := nap.Name != "" && nap.Address != "" && nap.Phone != ""

	locationLower := strings.ToLower(location)
	locationWords := significantWords(locationLower)
	mentionsLocation := strings.Contains(pageText, locationLower)
	if !mentionsLocation {
		lowerContact := strings.ToLower(contactText)
		for _, word := range locationWords {
			if strings.Contains(lowerContact, word) || strings.Contains(pageText, word) {
				mentionsLocation = true
				break
			}
		}
	}

	hasLocalPages := false
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		text := strings.ToLower(s.Text() + " " + href)
		for _, word := range locationWords {
			if strings.Contains(text, word) {
				hasLocalPages = true
				return false
			}
		}
		return true
	})

	hasLocalSchema := false
	for _, block := range blocks {
		if localSchemaTypes[strings.ToLower(schemaType(block))] {
			hasLocalSchema = true
			break
		}
	}

	return LocalMetrics{
		NAPConsistency:           napConsistency,
		NAPDetails:               nap,
		MentionsLocation:         mentionsLocation,
		HasLocalPages:            hasLocalPages,
		HasLocalSchema:           hasLocalSchema,
		GoogleBusinessProfileURL: googleBusinessURL(doc),
	}
}

// schemaAddress flattens a structured-data address, which may be a plain
// string or a PostalAddress object.
func schemaAddress(raw any) string {
	switch addr := raw.(type) {
	case string:
		return strings.TrimSpace(addr)
	case map[string]any:
		street, _ := addr["streetAddress"].(string)
		if street == "" {
			return ""
		}
		locality, _ := addr["addressLocality"].(string)
		postal, _ := addr["postalCode"].(string)
		return strings.TrimSpace(fmt.Sprintf("%s, %s %s", street, locality, postal))
	}
	return ""
}

// contactSectionText gathers text from footer and contact-like sections,
// where NAP data is usually published.
func contactSectionText(doc *goquery.Document) string {
	var parts []string
	doc.Find("footer, .footer, #footer").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	doc.Find("[class*='contact'], [id*='contact'], [class*='contatti'], [id*='contatti']").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.ToLower(strings.Join(parts, " "))
}

// googleBusinessURL returns the first outbound link pointing at a Google
// Business / Maps profile, if any.
func googleBusinessURL(doc *goquery.Document) string {
	found := ""
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		if strings.Contains(lower, "google.com/maps") ||
			strings.Contains(lower, "maps.app.goo.gl") ||
			strings.Contains(lower, "g.page/") {
			found = href
			return false
		}
		return true
	})
	return found
}

func significantWords(s string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' }) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
