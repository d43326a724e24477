package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var (
	qaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:domanda|question|q:|d:|faq)`),
		regexp.MustCompile(`(?i)(?:risposta|answer|a:|r:)`),
		regexp.MustCompile(`(?i)(?:come\s+.*\?|what\s+.*\?|why\s+.*\?|when\s+.*\?|where\s+.*\?)`),
	}
	qaSectionRe = regexp.MustCompile(`(?is)(?:domanda|question|q:|come|what|why|when|where).*?(?:risposta|answer|a:)`)

	statsRe   = regexp.MustCompile(`(?i)\d+[%€$]|\d{1,3}(?:\.\d{3})*(?:,\d+)?|(?:circa|oltre|più di|meno di)\s+\d+`)
	sourcesRe = regexp.MustCompile(`(?i)(?:fonte|source|riferimento|reference|secondo|studio|ricerca)`)

	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	wordRe          = regexp.MustCompile(`\b[a-z]{4,}\b`)
	digitRe         = regexp.MustCompile(`\d`)

	questionWords = []string{"come", "perché", "quando", "dove", "cosa", "chi", "quale", "quali"}

	entityTypeFragments = []string{"person", "organization", "product", "localbusiness", "restaurant"}

	// Words that signal a paragraph carries concrete, citable information
	// rather than filler.
	concreteMarkers = []string{
		"esempio", "example", "significa", "means", "cioè", "ovvero",
		"perché", "because", "quindi", "therefore", "risultato", "result",
	}
)

// AnalyzeAEO measures answer-engine readiness: Q&A structure, structured
// data coverage, citability, semantic depth, readability and authority
// signals, all from the sanitized markup.
func AnalyzeAEO(html, baseURL string) AEOMetrics {
	doc := parseDocument(html)
	body := doc.Find("body")
	bodyText := body.Text()

	hasQA := false
	for _, p := range qaPatterns {
		if p.MatchString(bodyText) {
			hasQA = true
			break
		}
	}
	qaSections := len(qaSectionRe.FindAllString(bodyText, -1))

	blocks := structuredDataBlocks(doc)
	types := schemaTypes(blocks)
	if types == nil {
		types = []string{}
	}

	hasFAQ := anyTypeContains(types, "faq", "question")
	hasHowTo := anyTypeContains(types, "howto", "how-to")
	hasArticle := anyTypeContains(types, "article", "blogposting")
	entityMarkup := anyTypeContains(types, entityTypeFragments...)

	hasOpenGraph := doc.Find(`meta[property^="og:"]`).Length() > 0
	hasTwitterCards := doc.Find(`meta[name^="twitter:"]`).Length() > 0
	richMetadata := hasOpenGraph || hasTwitterCards || len(types) > 0

	// Single matches are too easy to hit by accident; require at least
	// two occurrences before claiming statistics or cited sources.
	hasStatistics := len(statsRe.FindAllString(bodyText, 3)) >= 2
	hasSources := len(sourcesRe.FindAllString(bodyText, 3)) >= 2

	var paragraphTexts []string
	body.Find("p").Each(func(_ int, s *goquery.Selection) {
		paragraphTexts = append(paragraphTexts, strings.TrimSpace(s.Text()))
	})

	snippetReady := 0
	for _, text := range paragraphTexts {
		if isSnippetReady(text) {
			snippetReady++
		}
	}

	hasLists := doc.Find("ul, ol").Length() > 0
	hasTables := doc.Find("table").Length() > 0

	headingCount := doc.Find("h1, h2, h3, h4").Length()
	topicDepth := min(headingCount+len(paragraphTexts), 50)

	unique := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(bodyText), -1) {
		unique[w] = true
	}
	semanticKeywords := int(math.Round(math.Min(float64(len(unique))/10, 20)))

	internalLinks := 0
	body.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "/") || strings.HasPrefix(href, baseURL) || !strings.HasPrefix(href, "http") {
			internalLinks++
		}
	})

	relatedQuestions := 0
	lowerBody := strings.ToLower(bodyText)
	for _, word := range questionWords {
		if containsWord(lowerBody, word) {
			relatedQuestions++
		}
	}

	boldKeywords := doc.Find("strong, b").Length()

	sentences := nonEmptySentences(bodyText, 0)
	totalWords := len(strings.Fields(bodyText))
	avgSentenceLen := 0.0
	if len(sentences) > 0 {
		avgSentenceLen = math.Round(float64(totalWords) / float64(len(sentences)))
	}

	var paragraphSentenceCounts []int
	for _, text := range paragraphTexts {
		if n := len(nonEmptySentences(text, 10)); n > 0 {
			paragraphSentenceCounts = append(paragraphSentenceCounts, n)
		}
	}
	avgParagraphLen := 0.0
	if len(paragraphSentenceCounts) > 0 {
		sum := 0
		for _, n := range paragraphSentenceCounts {
			sum += n
		}
		avgParagraphLen = math.Round(float64(sum) / float64(len(paragraphSentenceCounts)))
	}

	hasBulletLists := doc.Find("ul li").Length() > 0

	h1Count := doc.Find("h1").Length()

	return AEOMetrics{
		HasQAStructure:   hasQA,
		QASections:       qaSections,
		HasFAQSchema:     hasFAQ,
		HasHowToSchema:   hasHowTo,
		HasArticleSchema: hasArticle,

		StructuredDataTypes: types,
		EntityMarkup:        entityMarkup,
		RichMetadata:        richMetadata,

		HasStatistics:       hasStatistics,
		HasSources:          hasSources,
		SnippetReadyContent: snippetReady,
		HasLists:            hasLists,
		HasTables:           hasTables,

		TopicDepth:       topicDepth,
		SemanticKeywords: semanticKeywords,
		InternalLinks:    internalLinks,
		RelatedQuestions: relatedQuestions,

		BoldKeywords:           boldKeywords,
		AverageSentenceLength:  avgSentenceLen,
		AverageParagraphLength: avgParagraphLen,
		HasBulletLists:         hasBulletLists,

		// Estimated; a Last-Modified header check would replace this.
		ContentFreshness: 30,
		ContentLength:    totalWords,
		HeadingStructure: h1Count == 1 && headingCount >= 3,
	}
}

// isSnippetReady requires all four conditions at once: 2-3 sentences,
// 50-300 characters, a concrete-information marker (a digit or a marker
// word) and a capitalized start.
func isSnippetReady(text string) bool {
	if len(text) < 50 || len(text) > 300 {
		return false
	}
	sentences := nonEmptySentences(text, 10)
	if len(sentences) < 2 || len(sentences) > 3 {
		return false
	}
	if !startsCapitalized(text) {
		return false
	}
	if digitRe.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, marker := range concreteMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func nonEmptySentences(text string, minLen int) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > minLen {
			out = append(out, s)
		}
	}
	return out
}

func startsCapitalized(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r)
	}
	return false
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end >= len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
