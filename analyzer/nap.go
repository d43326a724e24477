package analyzer

import (
	"regexp"
	"strconv"
	"strings"
)

// NAP extraction targets the Italian market: phone prefixes, street-type
// keywords and postal codes follow the national conventions.

var (
	phoneCleanRe = regexp.MustCompile(`[\s.\-()]`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\+39|0039)?[0-9]{9,11}$`),
		regexp.MustCompile(`^(\+39|0039)?0[1-9]\d{8,9}$`),
		regexp.MustCompile(`^(\+39|0039)?3\d{8,9}$`),
		regexp.MustCompile(`^(\+39|0039)?[1-9]\d{8,9}$`),
	}

	streetTypeRe = regexp.MustCompile(`(?i)(via|viale|corso|piazza|piazzale|strada|lungomare|lungo\s+mare|borgo|contrada|frazione|località)`)
	hasNumberRe  = regexp.MustCompile(`\d+`)
	hasPlaceRe   = regexp.MustCompile(`(?i)[a-zàèéìòù]{3,}`)

	phoneContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\+39|0039)\s?[0-9]{2,3}\s?[0-9]{6,8}`),
		regexp.MustCompile(`(?i)(?:tel|telefono|phone|cell|cellulare)[\s:]*(\+?39\s?)?0?[1-9]\d{1,3}[\s.\-]?\d{6,8}`),
		regexp.MustCompile(`(?i)(?:tel|telefono|phone|cell|cellulare)[\s:]*(\+?39\s?)?3\d{2}[\s.\-]?\d{6,7}`),
		regexp.MustCompile(`(?i)(?:tel|telefono|phone|cell|cellulare|chiama)[\s:]*[\s.\-]?(\+?39\s?)?[0-9]{2,3}[\s.\-]?[0-9]{6,8}`),
	}
	phoneLabelRe = regexp.MustCompile(`(?i)(?:tel|telefono|phone|cell|cellulare|chiama)[\s:]*`)

	addressContextPatterns = []*regexp.Regexp{
		// Via Nome, 123, 20121 Milano
		regexp.MustCompile(`(?i)(via|viale|corso|piazza|piazzale|strada|lungomare|borgo|contrada)\s+[a-zàèéìòù\s]+(?:,\s*)?n\.?\s*\d+(?:,\s*)?\d{5}\s+[a-zàèéìòù]+`),
		// Via Nome, 20121
		regexp.MustCompile(`(?i)(via|viale|corso|piazza|piazzale|strada|lungomare|borgo|contrada)\s+[a-zàèéìòù\s]+(?:,\s*)?\d{5}`),
		// Via Nome, 123
		regexp.MustCompile(`(?i)(via|viale|corso|piazza|piazzale|strada|lungomare|borgo|contrada)\s+[a-zàèéìòù\s]+(?:,\s*)?n\.?\s*\d+`),
	}
)

// ValidItalianPhone reports whether phone matches an Italian fixed or
// mobile number after stripping separators.
func ValidItalianPhone(phone string) bool {
	if len(phone) < 8 {
		return false
	}
	cleaned := phoneCleanRe.ReplaceAllString(phone, "")
	for _, p := range phonePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// ValidItalianAddress requires a street-type keyword plus either a civic
// number or a place name.
func ValidItalianAddress(address string) bool {
	if len(address) < 10 {
		return false
	}
	if !streetTypeRe.MatchString(address) {
		return false
	}
	return hasNumberRe.MatchString(address) || hasPlaceRe.MatchString(address)
}

// ValidItalianCAP reports whether cap is a plausible Italian postal code.
func ValidItalianCAP(cap string) bool {
	cleaned := strings.ReplaceAll(cap, " ", "")
	if len(cleaned) != 5 {
		return false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return false
	}
	return n >= 10 && n <= 98168
}

// ExtractPhone finds the first validated phone number in text. The
// optional context (footer or contact-section text) is searched first.
func ExtractPhone(text, context string) string {
	combined := text
	if context != "" {
		combined = context + " " + text
	}
	for _, pattern := range phoneContextPatterns {
		for _, match := range pattern.FindAllString(combined, -1) {
			phone := strings.TrimSpace(phoneLabelRe.ReplaceAllString(match, ""))
			if ValidItalianPhone(phone) {
				return phone
			}
		}
	}
	return ""
}

// ExtractAddress finds the first validated street address in text,
// trying the most specific pattern first.
func ExtractAddress(text, context string) string {
	combined := text
	if context != "" {
		combined = context + " " + text
	}
	for _, pattern := range addressContextPatterns {
		if match := pattern.FindString(combined); match != "" {
			address := strings.TrimSpace(match)
			if ValidItalianAddress(address) {
				return address
			}
		}
	}
	return ""
}
