// Package recommend turns metric records into prioritized, actionable
// recommendations. Each rule is independent and side-effect-free:
// it appends zero or exactly one recommendation, with titles and
// evidence interpolating the measured values.
package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/seo-audit/backend/analyzer"
)

// Thresholds are deliberately generous for a small-business audience:
// a 2.9s load time does not warrant a warning.
const (
	lcpPoorMs        = 4000
	clsPoor          = 0.25
	tbtPoorMs        = 600
	slowLoadMs       = 3000
	lowAuthority     = 30
	minSnippetReady  = 3
	minTopicDepth    = 10
	minInternalLinks = 5
	maxSentenceWords = 20
	maxParaSentences = 4
	minBoldKeywords  = 3
)

// Inputs bundles the metric records the rules read.
type Inputs struct {
	Technical analyzer.TechnicalMetrics
	OnPage    analyzer.OnPageMetrics
	Local     analyzer.LocalMetrics
	OffPage   analyzer.OffPageMetrics
	AEO       analyzer.AEOMetrics
}

func impactFor(priority string) string {
	switch priority {
	case analyzer.PriorityHigh:
		return "high"
	case analyzer.PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Build evaluates every rule against the metrics and returns the
// triggered recommendations in rule order.
func Build(in Inputs) []analyzer.Recommendation {
	rules := []func(Inputs) *analyzer.Recommendation{
		ruleSSL,
		ruleLCP,
		ruleCLS,
		ruleTBT,
		ruleRenderBlocking,
		ruleUnoptimizedImages,
		ruleTextCompression,
		ruleSlowLoad,
		ruleMetaTags,
		ruleImageAlt,
		ruleNAP,
		ruleDomainAuthority,
		ruleLocalPages,
		ruleSitemapRobots,
		ruleLocalSchema,
		ruleQAStructure,
		ruleAEOSchema,
		ruleCitability,
		ruleTopicDepth,
		ruleReadability,
	}

	var recs []analyzer.Recommendation
	for _, rule := range rules {
		if rec := rule(in); rec != nil {
			rec.ID = uuid.NewString()
			rec.Impact = impactFor(rec.Priority)
			recs = append(recs, *rec)
		}
	}
	if recs == nil {
		recs = []analyzer.Recommendation{}
	}
	return recs
}

func ruleSSL(in Inputs) *analyzer.Recommendation {
	if in.Technical.HasSSL {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Enable an SSL certificate (HTTPS)",
		Description: "The site is not served over HTTPS. Search engines penalize HTTP sites and browsers flag them as not secure, hurting both ranking and user trust.",
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Ask your hosting provider about free certificates (Let's Encrypt is free and automated).",
			"Install the certificate from the hosting control panel.",
			"Force a 301 redirect from HTTP to HTTPS for every request.",
			"Update internal links and the sitemap to https:// URLs.",
			"Resubmit the sitemap in Google Search Console and verify with SSL Labs.",
		},
		Evidence: "No SSL certificate detected: the site is served over plain HTTP",
		CodeExamples: []string{
			"# Nginx: redirect HTTP to HTTPS\nserver {\n  listen 80;\n  server_name example.com;\n  return 301 https://$server_name$request_uri;\n}",
			"# Apache .htaccess\nRewriteEngine On\nRewriteCond %{HTTPS} off\nRewriteRule ^(.*)$ https://%{HTTP_HOST}%{REQUEST_URI} [L,R=301]",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Let's Encrypt", URL: "https://letsencrypt.org/", Description: "Free automated SSL certificates"},
			{Title: "SSL Labs Test", URL: "https://www.ssllabs.com/ssltest/", Description: "Validate the SSL configuration"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "HTTP (not secure)",
			Target:      "HTTPS",
			Improvement: "Expected ranking lift: +5-10% (HTTPS is a confirmed ranking signal)",
		},
		Difficulty:    "easy",
		EstimatedTime: "30 minutes - 1 hour",
		Category:      "technical",
	}
}

func ruleLCP(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil {
		return nil
	}
	lcp := in.Technical.PageSpeed.Mobile.CoreWebVitals.LCP
	if lcp <= lcpPoorMs {
		return nil
	}
	improvement := int(math.Round((lcp - 2500) / lcp * 100))
	return &analyzer.Recommendation{
		Title:       "Improve Largest Contentful Paint (LCP)",
		Description: fmt.Sprintf("LCP is %.0fms, well past the 2.5s threshold. A slow LCP hurts ranking and drives up bounce rate.", lcp),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Identify the LCP element (usually the hero image) in Chrome DevTools > Performance.",
			"Compress the LCP image and convert it to WebP or AVIF.",
			"Preload the critical image with <link rel=\"preload\" as=\"image\">.",
			"Cut server response time with a CDN and caching.",
			"Inline critical CSS and defer non-critical scripts.",
		},
		Evidence: fmt.Sprintf("LCP: %.0fms (target: <2500ms) - %.0f%% slower than target", lcp, lcp/2500*100),
		CodeExamples: []string{
			"<link rel=\"preload\" as=\"image\" href=\"/hero.webp\" fetchpriority=\"high\">",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Optimize LCP", URL: "https://web.dev/lcp/", Description: "Official guidance on improving LCP"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%.0fms", lcp),
			Target:      "<2500ms",
			Unit:        "milliseconds",
			Improvement: fmt.Sprintf("Expected reduction: ~%d%% (from %.0fms to <2500ms)", improvement, lcp),
		},
		Difficulty:    "medium",
		EstimatedTime: "2-4 hours",
		Category:      "performance",
	}
}

func ruleCLS(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil {
		return nil
	}
	cls := in.Technical.PageSpeed.Mobile.CoreWebVitals.CLS
	if cls <= clsPoor {
		return nil
	}
	clsStr := fmt.Sprintf("%.3f", cls)
	return &analyzer.Recommendation{
		Title:       "Reduce Cumulative Layout Shift (CLS)",
		Description: fmt.Sprintf("CLS is %s, past the 0.1 threshold. Content jumping around while the page loads is a poor experience and a ranking penalty.", clsStr),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Set explicit width/height on every image and video.",
			"Reserve space for ads, embeds and iframes with CSS aspect-ratio.",
			"Use font-display: swap to avoid late font swaps shifting text.",
			"Never inject banners above existing content without reserved space.",
		},
		Evidence: fmt.Sprintf("CLS: %s (target: <0.1) - %.0f%% over target", clsStr, cls/0.1*100),
		CodeExamples: []string{
			"<img src=\"hero.jpg\" width=\"1200\" height=\"675\" alt=\"...\" loading=\"lazy\">",
			".media { aspect-ratio: 16 / 9; width: 100%; }",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Optimize CLS", URL: "https://web.dev/cls/", Description: "Measuring and fixing layout shift"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     clsStr,
			Target:      "<0.1",
			Unit:        "CLS score",
			Improvement: fmt.Sprintf("Expected reduction: from %s to <0.1", clsStr),
		},
		Difficulty:    "easy",
		EstimatedTime: "1-3 hours",
		Category:      "performance",
	}
}

func ruleTBT(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil {
		return nil
	}
	tbt := in.Technical.PageSpeed.Mobile.CoreWebVitals.TBT
	if tbt <= tbtPoorMs {
		return nil
	}
	improvement := int(math.Round((tbt - 200) / tbt * 100))
	return &analyzer.Recommendation{
		Title:       "Reduce Total Blocking Time (TBT)",
		Description: fmt.Sprintf("TBT is %.0fms, past the 200ms threshold. JavaScript is blocking the main thread long enough to make the page feel unresponsive.", tbt),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Find long tasks in Chrome DevTools > Performance > Main thread.",
			"Split bundles with code splitting and tree-shaking.",
			"Defer or async non-critical scripts (analytics, chat widgets).",
			"Move heavy computation into Web Workers.",
		},
		Evidence: fmt.Sprintf("TBT: %.0fms (target: <200ms) - %.0f%% over target", tbt, tbt/200*100),
		CodeExamples: []string{
			"<script src=\"analytics.js\" defer></script>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Reduce TBT", URL: "https://web.dev/tbt/", Description: "How to cut Total Blocking Time"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%.0fms", tbt),
			Target:      "<200ms",
			Unit:        "milliseconds",
			Improvement: fmt.Sprintf("Expected reduction: ~%d%%", improvement),
		},
		Difficulty:    "advanced",
		EstimatedTime: "4-8 hours",
		Category:      "performance",
	}
}

func ruleRenderBlocking(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil {
		return nil
	}
	n := in.Technical.PageSpeed.Mobile.Optimizations.RenderBlockingResources
	if n == 0 {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Eliminate render-blocking resources",
		Description: fmt.Sprintf("%d CSS/JS resources block page rendering, delaying First Contentful Paint.", n),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Inline critical above-the-fold CSS in the <head>.",
			"Preload non-critical stylesheets and swap them in on load.",
			"Add defer or async to non-critical scripts.",
			"Remove unused CSS with a tool like PurgeCSS.",
		},
		Evidence: fmt.Sprintf("%d render-blocking resources found", n),
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%d resources", n),
			Target:      "0 resources",
			Improvement: fmt.Sprintf("Expected FCP gain: ~%dms", minOf(n*100, 500)),
		},
		Difficulty:        "medium",
		EstimatedTime:     "2-4 hours",
		Category:          "performance",
		AffectedResources: []string{fmt.Sprintf("%d CSS/JS files", n)},
	}
}

func ruleUnoptimizedImages(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil {
		return nil
	}
	n := in.Technical.PageSpeed.Mobile.Optimizations.UnoptimizedImages
	if n == 0 {
		return nil
	}
	savingsKB := n * 200
	return &analyzer.Recommendation{
		Title:       "Optimize images",
		Description: fmt.Sprintf("%d images are not optimized. Uncompressed images can add hundreds of KB to every page load.", n),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Compress images (TinyPNG, Squoosh) - typically 60-80% smaller without visible loss.",
			"Serve WebP or AVIF with a JPG/PNG fallback.",
			"Use srcset so each device downloads an appropriate size.",
			"Add loading=\"lazy\" to below-the-fold images.",
		},
		Evidence: fmt.Sprintf("%d unoptimized images found (estimated savings: ~%dKB)", n, savingsKB),
		CodeExamples: []string{
			"<picture>\n  <source srcset=\"hero.webp\" type=\"image/webp\">\n  <img src=\"hero.jpg\" alt=\"...\" loading=\"lazy\">\n</picture>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Squoosh", URL: "https://squoosh.app/", Description: "Image optimization tool"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%d images", n),
			Target:      "0 unoptimized images",
			Improvement: fmt.Sprintf("Estimated savings: ~%dKB", savingsKB),
		},
		Difficulty:        "easy",
		EstimatedTime:     "2-3 hours",
		Category:          "performance",
		AffectedResources: []string{fmt.Sprintf("%d image files", n)},
	}
}

func ruleTextCompression(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed == nil || in.Technical.PageSpeed.Mobile.Optimizations.TextCompression {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Enable text compression",
		Description: "The server does not compress text resources (HTML, CSS, JS). Compression typically cuts transfer size by 70-90%.",
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Enable gzip or Brotli on the web server or CDN.",
			"Verify the Content-Encoding response header in DevTools > Network.",
		},
		Evidence: "No text compression detected (Content-Encoding header missing)",
		CodeExamples: []string{
			"# Nginx\ngzip on;\ngzip_types text/plain text/css application/json application/javascript;",
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "No compression",
			Target:      "gzip or Brotli enabled",
			Improvement: "Expected size reduction: 70-90%",
		},
		Difficulty:    "easy",
		EstimatedTime: "30 minutes - 1 hour",
		Category:      "performance",
	}
}

// ruleSlowLoad is the generic fallback when no adapter data is available.
func ruleSlowLoad(in Inputs) *analyzer.Recommendation {
	if in.Technical.PageSpeed != nil || in.Technical.AverageLoadTimeMs <= slowLoadMs {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Improve page load speed",
		Description: "Average load time exceeds 3 seconds, the point where bounce rate climbs sharply.",
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Compress images and serve modern formats (WebP).",
			"Enable server-side caching and a CDN.",
			"Remove unused scripts and load CSS asynchronously.",
		},
		Evidence: fmt.Sprintf("Estimated average load time: %dms.", in.Technical.AverageLoadTimeMs),
	}
}

func ruleMetaTags(in Inputs) *analyzer.Recommendation {
	// Twitter Card alone is not worth a warning.
	var missing []string
	for _, tag := range in.OnPage.MetaTagsMissing {
		if tag != "twitter-card" {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	list := strings.Join(missing, ", ")
	return &analyzer.Recommendation{
		Title:       fmt.Sprintf("Add missing meta tags: %s", list),
		Description: fmt.Sprintf("%d essential meta tags are missing: %s. Title and description drive both ranking and click-through rate in search results.", len(missing), list),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Write a unique title per page: max 60 characters, include the main keyword and location.",
			"Write compelling descriptions: 120-155 characters with a call to action.",
			"Ensure no two pages share the same title or description.",
			"Preview the snippets in Google Search Console.",
		},
		Evidence: fmt.Sprintf("Missing meta tags: %s (detected on the homepage scan)", list),
		CodeExamples: []string{
			"<title>Trattoria Milano | Menu and Online Booking</title>",
			"<meta name=\"description\" content=\"Traditional trattoria in Milan. Full menu, online booking, home delivery.\">",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Google: snippets", URL: "https://developers.google.com/search/docs/appearance/snippet", Description: "Best practices for titles and descriptions"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("Missing: %s", list),
			Target:      "All meta tags present",
			Improvement: "Expected CTR lift: +15-30% in search results",
		},
		Difficulty:        "easy",
		EstimatedTime:     "1-2 hours",
		Category:          "seo",
		AffectedResources: []string{fmt.Sprintf("Meta tags: %s", list)},
	}
}

func ruleImageAlt(in Inputs) *analyzer.Recommendation {
	n := in.OnPage.ImagesWithoutAlt
	if n == 0 {
		return nil
	}
	plural := ""
	if n > 1 {
		plural = "s"
	}
	return &analyzer.Recommendation{
		Title:       fmt.Sprintf("Add alt text to %d image%s", n, plural),
		Description: fmt.Sprintf("%d images have no alternative text. Alt text matters for accessibility, for Google Images, and when images fail to load.", n),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"List the images without alt using DevTools or an SEO crawler.",
			"Write descriptive alt text: 5-15 words, naturally including relevant keywords.",
			"Use alt=\"\" for purely decorative images.",
			"Verify with a screen reader.",
		},
		Evidence: fmt.Sprintf("%d images without alt text found during the scan", n),
		CodeExamples: []string{
			"<img src=\"margherita.jpg\" alt=\"Traditional Neapolitan Margherita pizza with fresh basil\">",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Alt text for SEO", URL: "https://moz.com/learn/seo/alt-text", Description: "Writing effective alt text"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%d images without alt", n),
			Target:      "0 images",
			Improvement: "Expected Google Images traffic lift: +20-40%",
		},
		Difficulty:        "easy",
		EstimatedTime:     "1-2 hours",
		Category:          "seo",
		AffectedResources: []string{fmt.Sprintf("%d images", n)},
	}
}

func ruleNAP(in Inputs) *analyzer.Recommendation {
	if in.Local.NAPConsistency {
		return nil
	}
	var missing []string
	if in.Local.NAPDetails.Name == "" {
		missing = append(missing, "name")
	}
	if in.Local.NAPDetails.Address == "" {
		missing = append(missing, "address")
	}
	if in.Local.NAPDetails.Phone == "" {
		missing = append(missing, "phone")
	}
	list := strings.Join(missing, ", ")

	title := fmt.Sprintf("Complete missing NAP data: %s", list)
	if len(missing) == 3 {
		title = "Add complete NAP data (Name, Address, Phone)"
	}
	return &analyzer.Recommendation{
		Title:       title,
		Description: fmt.Sprintf("NAP fields missing from the homepage: %s. NAP consistency is critical for local ranking: search engines cross-check the data against your Business Profile and local directories.", list),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Show the full NAP in the homepage footer: business name, street address with postal code, phone with prefix.",
			"Keep the format byte-identical across the website, Google Business Profile and directories.",
			"Add a schema.org/LocalBusiness JSON-LD block with all three fields.",
			"Repeat the NAP on a dedicated contact page with a map.",
		},
		Evidence: fmt.Sprintf("Missing NAP data: %s (detected on the homepage scan)", list),
		CodeExamples: []string{
			"<footer>\n  <p><strong>Trattoria Milano</strong></p>\n  <p>Via Roma 123, 20121 Milano (MI)</p>\n  <p>Tel: +39 02 1234 5678</p>\n</footer>",
			"<script type=\"application/ld+json\">\n{\n  \"@context\": \"https://schema.org\",\n  \"@type\": \"LocalBusiness\",\n  \"name\": \"Trattoria Milano\",\n  \"address\": {\"@type\": \"PostalAddress\", \"streetAddress\": \"Via Roma 123\", \"addressLocality\": \"Milano\", \"postalCode\": \"20121\"},\n  \"telephone\": \"+390212345678\"\n}\n</script>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "schema.org LocalBusiness", URL: "https://schema.org/LocalBusiness", Description: "LocalBusiness schema reference"},
			{Title: "NAP consistency", URL: "https://moz.com/learn/local/nap-consistency", Description: "Why consistent NAP matters"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("Missing: %s", list),
			Target:      "Name, address and phone present",
			Improvement: "Expected local visibility lift: +25-40%",
		},
		Difficulty:    "easy",
		EstimatedTime: "1-2 hours",
		Category:      "local",
	}
}

func ruleDomainAuthority(in Inputs) *analyzer.Recommendation {
	da := in.OffPage.DomainAuthorityScore
	if da >= lowAuthority {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Strengthen domain authority",
		Description: fmt.Sprintf("Estimated authority is %d/100, below the local competitor average. Authority grows from the quality and quantity of inbound links.", da),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Publish in-depth guides and resources other sites will want to link.",
			"Register in relevant local directories.",
			"Reach out to local blogs and journalists for mentions.",
			"Monitor new links in Google Search Console.",
			"Avoid bought links and low-quality directories.",
		},
		Evidence: fmt.Sprintf("Estimated domain authority: %d/100 (target: >%d)", da, lowAuthority),
		Resources: []analyzer.ResourceLink{
			{Title: "Link building", URL: "https://moz.com/learn/seo/link-building", Description: "Link building fundamentals"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%d/100", da),
			Target:      fmt.Sprintf(">%d/100", lowAuthority),
			Improvement: fmt.Sprintf("Expected gain: +%d authority points over 6-12 months", lowAuthority-da),
		},
		Difficulty:    "advanced",
		EstimatedTime: "Ongoing (long-term strategy)",
		Category:      "offPage",
	}
}

func ruleLocalPages(in Inputs) *analyzer.Recommendation {
	if in.Local.HasLocalPages {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Create pages for the areas you serve",
		Description: "No landing pages optimized for the target locations were found. Local pages lift visibility for geographic searches.",
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Map the 5-10 main towns or districts you serve.",
			"Create one page per location with unique, locally relevant content.",
			"Include location keywords, a local NAP and a map on each page.",
			"Link the pages from the menu or footer.",
		},
		Evidence: "No local pages found during the scan",
		Resources: []analyzer.ResourceLink{
			{Title: "Local landing pages", URL: "https://moz.com/learn/local/local-landing-pages", Description: "Building effective local pages"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "0 local pages",
			Target:      "5-10 local pages",
			Improvement: "Expected local traffic lift: +30-50%",
		},
		Difficulty:    "medium",
		EstimatedTime: "4-8 hours",
		Category:      "local",
	}
}

func ruleSitemapRobots(in Inputs) *analyzer.Recommendation {
	if in.Technical.HasSitemap && in.Technical.HasRobots {
		return nil
	}
	evidence := "Both sitemap.xml and robots.txt missing"
	if in.Technical.HasSitemap {
		evidence = "robots.txt missing"
	} else if in.Technical.HasRobots {
		evidence = "sitemap.xml missing"
	}
	return &analyzer.Recommendation{
		Title:       "Set up sitemap.xml and robots.txt",
		Description: "The crawling assets are not reachable. A sitemap helps search engines discover every page; robots.txt controls crawler access.",
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Generate a sitemap with your CMS plugin or an online generator.",
			"Publish it at /sitemap.xml and reference it from robots.txt.",
			"Submit the sitemap in Google Search Console.",
			"Regenerate the sitemap when pages change.",
		},
		Evidence: evidence,
		CodeExamples: []string{
			"User-agent: *\nAllow: /\nSitemap: https://example.com/sitemap.xml",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Sitemaps overview", URL: "https://developers.google.com/search/docs/crawling-indexing/sitemaps/overview", Description: "Official sitemap documentation"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     evidence,
			Target:      "sitemap.xml and robots.txt present",
			Improvement: "Expected indexing speedup: +15-25%",
		},
		Difficulty:    "easy",
		EstimatedTime: "30 minutes",
		Category:      "technical",
	}
}

func ruleLocalSchema(in Inputs) *analyzer.Recommendation {
	if in.Local.HasLocalSchema {
		return nil
	}
	return &analyzer.Recommendation{
		Title:       "Implement LocalBusiness schema",
		Description: "No structured markup for a local business was found. LocalBusiness schema helps search engines understand the business and can unlock rich results (stars, hours, address).",
		Priority:    analyzer.PriorityLow,
		Steps: []string{
			"Add a JSON-LD block with @type LocalBusiness in the homepage <head>.",
			"Fill name, address with geo coordinates, telephone, url and priceRange.",
			"Add openingHours and sameAs links to social profiles.",
			"Validate with the Google Rich Results Test.",
		},
		Evidence: "No LocalBusiness schema found on the homepage",
		CodeExamples: []string{
			"<script type=\"application/ld+json\">\n{\n  \"@context\": \"https://schema.org\",\n  \"@type\": \"LocalBusiness\",\n  \"name\": \"Trattoria Milano\",\n  \"telephone\": \"+390212345678\",\n  \"address\": {\"@type\": \"PostalAddress\", \"streetAddress\": \"Via Roma 123\", \"addressLocality\": \"Milano\"}\n}\n</script>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Rich Results Test", URL: "https://search.google.com/test/rich-results", Description: "Validate schema markup"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "No schema",
			Target:      "Complete LocalBusiness schema",
			Improvement: "Expected CTR lift: +10-20% via rich results",
		},
		Difficulty:    "easy",
		EstimatedTime: "30 minutes - 1 hour",
		Category:      "local",
	}
}

func ruleQAStructure(in Inputs) *analyzer.Recommendation {
	if in.AEO.HasQAStructure || in.AEO.QASections > 0 {
		return nil
	}
	questions := in.AEO.RelatedQuestions
	title := "Add question-and-answer structure for answer engines"
	evidence := "No Q&A structure detected in the content (0 Q&A sections found)"
	description := "Answer engines favor content structured as questions and answers. Q&A sections raise the chance of being cited by AI assistants and in AI overviews."
	if questions > 0 {
		title = fmt.Sprintf("Structure the %d questions found into Q&A format", questions)
		evidence = fmt.Sprintf("%d questions found but not structured as Q&A", questions)
		description = fmt.Sprintf("The content contains %d questions but they are not organized as Q&A pairs. Structuring them raises the chance of being cited by answer engines.", questions)
	}
	return &analyzer.Recommendation{
		Title:       title,
		Description: description,
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Create a FAQ section answering common questions in your field.",
			"Bold the question, answer it in a short 2-3 sentence paragraph.",
			"Add FAQPage JSON-LD so the pairs are machine-extractable.",
			"Cover how/why/when/where/what phrasings.",
		},
		Evidence: evidence,
		CodeExamples: []string{
			"<script type=\"application/ld+json\">\n{\n  \"@context\": \"https://schema.org\",\n  \"@type\": \"FAQPage\",\n  \"mainEntity\": [{\n    \"@type\": \"Question\",\n    \"name\": \"How does the service work?\",\n    \"acceptedAnswer\": {\"@type\": \"Answer\", \"text\": \"The service works in three steps...\"}\n  }]\n}\n</script>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "schema.org FAQPage", URL: "https://schema.org/FAQPage", Description: "FAQPage schema reference"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "0 Q&A sections",
			Target:      "3+ Q&A sections",
			Improvement: "Expected AI citation lift: +30-50%",
		},
		Difficulty:    "easy",
		EstimatedTime: "2-4 hours",
		Category:      "aeo",
	}
}

func ruleAEOSchema(in Inputs) *analyzer.Recommendation {
	if in.AEO.HasFAQSchema || in.AEO.HasHowToSchema || in.AEO.HasArticleSchema {
		return nil
	}
	existing := "No structured data found"
	if len(in.AEO.StructuredDataTypes) > 0 {
		shown := in.AEO.StructuredDataTypes
		suffix := ""
		if len(shown) > 3 {
			shown = shown[:3]
			suffix = "..."
		}
		existing = fmt.Sprintf("Schemas present: %s%s", strings.Join(shown, ", "), suffix)
	}
	return &analyzer.Recommendation{
		Title:       "Add answer-engine schema markup (FAQ, HowTo, Article)",
		Description: fmt.Sprintf("%s. FAQPage, HowTo and Article schemas are the ones answer engines extract from most reliably.", existing),
		Priority:    analyzer.PriorityHigh,
		Steps: []string{
			"Pick the content that fits: FAQs, step-by-step guides, articles.",
			"Add FAQPage schema for frequent questions.",
			"Use HowTo schema for tutorials and Article for editorial content.",
			"Validate with the Rich Results Test.",
		},
		Evidence: fmt.Sprintf("No FAQ/HowTo/Article schema found. %s", existing),
		CodeExamples: []string{
			"<script type=\"application/ld+json\">\n{\n  \"@context\": \"https://schema.org\",\n  \"@type\": \"HowTo\",\n  \"name\": \"How to improve local visibility\",\n  \"step\": [{\"@type\": \"HowToStep\", \"text\": \"Step 1: audit your keywords\"}]\n}\n</script>",
		},
		Resources: []analyzer.ResourceLink{
			{Title: "Structured data", URL: "https://developers.google.com/search/docs/appearance/structured-data", Description: "Official structured data guide"},
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     "0 FAQ/HowTo/Article schemas",
			Target:      "1+ schema",
			Improvement: "Expected AI extraction lift: +40-60%",
		},
		Difficulty:    "medium",
		EstimatedTime: "3-5 hours",
		Category:      "aeo",
	}
}

func ruleCitability(in Inputs) *analyzer.Recommendation {
	if in.AEO.HasStatistics || in.AEO.HasSources || in.AEO.SnippetReadyContent >= minSnippetReady {
		return nil
	}
	missing := []string{"statistics", "cited sources",
		fmt.Sprintf("snippet-ready paragraphs (%d/%d)", in.AEO.SnippetReadyContent, minSnippetReady)}
	list := strings.Join(missing, ", ")
	return &analyzer.Recommendation{
		Title:       fmt.Sprintf("Improve content citability: add %s", list),
		Description: fmt.Sprintf("The content lacks %s. Answer engines prefer content with verifiable numbers, named sources and short informative paragraphs.", list),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Add concrete numbers: percentages, figures, dates.",
			"Name sources: \"According to a study by...\".",
			"Rewrite long paragraphs into 2-3 sentence ones under 300 characters.",
			"Use bullet lists and tables for extractable facts.",
		},
		Evidence: fmt.Sprintf("Missing: %s. Snippet-ready paragraphs: %d/%d", list, in.AEO.SnippetReadyContent, minSnippetReady),
		CodeExamples: []string{
			"<p>According to a 2024 survey, 73% of users search for local information on mobile. That makes local optimization essential for small businesses.</p>",
		},
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("%d snippet-ready paragraphs", in.AEO.SnippetReadyContent),
			Target:      fmt.Sprintf("%d+ paragraphs", minSnippetReady),
			Improvement: "Expected citation lift: +25-40%",
		},
		Difficulty:    "easy",
		EstimatedTime: "2-3 hours",
		Category:      "aeo",
	}
}

func ruleTopicDepth(in Inputs) *analyzer.Recommendation {
	if in.AEO.TopicDepth >= minTopicDepth && in.AEO.InternalLinks >= minInternalLinks {
		return nil
	}
	var issues []string
	if in.AEO.TopicDepth < minTopicDepth {
		issues = append(issues, fmt.Sprintf("shallow topic depth (%d/%d)", in.AEO.TopicDepth, minTopicDepth))
	}
	if in.AEO.InternalLinks < minInternalLinks {
		issues = append(issues, fmt.Sprintf("too few internal links (%d/%d)", in.AEO.InternalLinks, minInternalLinks))
	}
	list := strings.Join(issues, ", ")
	return &analyzer.Recommendation{
		Title:       fmt.Sprintf("Deepen the content: %s", list),
		Description: fmt.Sprintf("The content shows %s. Answer engines reward pages that cover a topic thoroughly and link related concepts together.", strings.Join(issues, " and ")),
		Priority:    analyzer.PriorityMedium,
		Steps: []string{
			"Expand the main topic with dedicated sections.",
			"Add 5-10 internal links to related pages.",
			"Use natural keyword variations and synonyms.",
			"Answer related questions the way People Also Ask does.",
		},
		Evidence: fmt.Sprintf("Topic depth: %d/%d, internal links: %d/%d", in.AEO.TopicDepth, minTopicDepth, in.AEO.InternalLinks, minInternalLinks),
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("Topic depth: %d, internal links: %d", in.AEO.TopicDepth, in.AEO.InternalLinks),
			Target:      "Topic depth: 15+, internal links: 10+",
			Improvement: "Expected semantic ranking lift: +20-30%",
		},
		Difficulty:    "medium",
		EstimatedTime: "4-8 hours",
		Category:      "aeo",
	}
}

func ruleReadability(in Inputs) *analyzer.Recommendation {
	longSentences := in.AEO.AverageSentenceLength > maxSentenceWords
	longParagraphs := in.AEO.AverageParagraphLength > maxParaSentences
	fewBold := in.AEO.BoldKeywords < minBoldKeywords
	if !longSentences && !longParagraphs && !fewBold {
		return nil
	}
	var issues []string
	if longSentences {
		issues = append(issues, fmt.Sprintf("sentences too long (%.0f words, target: <%d)", in.AEO.AverageSentenceLength, maxSentenceWords))
	}
	if longParagraphs {
		issues = append(issues, fmt.Sprintf("paragraphs too long (%.0f sentences, target: 2-3)", in.AEO.AverageParagraphLength))
	}
	if fewBold {
		issues = append(issues, fmt.Sprintf("few highlighted keywords (%d/%d)", in.AEO.BoldKeywords, minBoldKeywords))
	}
	list := strings.Join(issues, ", ")
	return &analyzer.Recommendation{
		Title:       fmt.Sprintf("Improve readability: %s", list),
		Description: fmt.Sprintf("Readability issues found: %s. Short sentences, short paragraphs and bolded key concepts make content easier for answer engines to extract and summarize.", strings.Join(issues, "; ")),
		Priority:    analyzer.PriorityLow,
		Steps: []string{
			"Keep average sentence length under 20 words.",
			"Cap paragraphs at 2-3 sentences.",
			"Bold 3-5 key concepts per page.",
			"Use bullet lists for enumerations.",
		},
		Evidence: fmt.Sprintf("Average sentence length: %.0f words (target: <%d), paragraphs: %.0f sentences (target: 2-3), bold keywords: %d",
			in.AEO.AverageSentenceLength, maxSentenceWords, in.AEO.AverageParagraphLength, in.AEO.BoldKeywords),
		Metrics: &analyzer.RecommendationMetrics{
			Current:     fmt.Sprintf("Sentences: %.0f words, paragraphs: %.0f sentences", in.AEO.AverageSentenceLength, in.AEO.AverageParagraphLength),
			Target:      "Sentences: <20 words, paragraphs: 2-3 sentences",
			Improvement: "Expected extraction quality lift: +15-25%",
		},
		Difficulty:    "easy",
		EstimatedTime: "1-2 hours",
		Category:      "aeo",
	}
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
