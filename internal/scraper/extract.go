package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	postBodySelector     = `[data-layout-label="Post Body"]`
	contentBlockSelector = ".sqs-block.html-block .sqs-block-content"
	buttonLinkSelector   = ".sqs-block-button a"
	bannerImageSelector  = ".banner-thumbnail-wrapper img"

	// DefaultLinkLabel is used when a button link has no visible text.
	DefaultLinkLabel = "Official Link"
)

// ExtractDetails parses a detail-page document and extracts the description,
// external button link, and poster image. It never fails: pages missing the
// expected markers produce empty fields.
func ExtractDetails(htmlText, baseURL string) EventDetails {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return EventDetails{}
	}

	postBody := doc.Find(postBodySelector).First()

	description := ""
	if postBody.Length() > 0 {
		fragments := make([]string, 0)
		postBody.Find(contentBlockSelector).Each(func(i int, block *goquery.Selection) {
			if rendered := blockText(block); rendered != "" {
				fragments = append(fragments, rendered)
			}
		})
		if len(fragments) > 0 {
			description = CleanText(strings.Join(fragments, "\n\n"))
		}
	}

	if description == "" {
		description = metaDescription(doc)
	}

	// Link extraction stays scoped to the post body when one exists, so that
	// footer and navigation buttons are not mistaken for the official link.
	linkScope := postBody
	if linkScope.Length() == 0 {
		linkScope = doc.Selection
	}
	externalURL, externalLabel := extractExternalLink(linkScope, baseURL)

	return EventDetails{
		Description:    description,
		ExternalURL:    externalURL,
		ExternalLabel:  externalLabel,
		PosterImageURL: extractPosterImage(doc, baseURL),
	}
}

// metaDescription falls back to page-level descriptive meta tags.
func metaDescription(doc *goquery.Document) string {
	for _, selector := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// extractExternalLink looks for a button-styled external link (official site or
// RSVP). Only links inside Squarespace button blocks qualify; inline links in
// body text are ignored. Mail/tel schemes and links back to the source site
// itself are rejected. The first qualifying link wins.
func extractExternalLink(scope *goquery.Selection, baseURL string) (string, string) {
	externalURL, externalLabel := "", ""
	scope.Find(buttonLinkSelector).EachWithBreak(func(i int, anchor *goquery.Selection) bool {
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		if href == "" {
			return true
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return true
		}
		resolved := ResolveURL(href, baseURL)
		if strings.HasPrefix(resolved, strings.TrimSuffix(baseURL, "/")) {
			return true
		}
		label := strings.TrimSpace(anchor.Text())
		if label == "" {
			label = DefaultLinkLabel
		}
		externalURL, externalLabel = resolved, label
		return false
	})
	return externalURL, externalLabel
}

// extractPosterImage prefers the og:image meta content, falling back to the
// banner thumbnail image. Lazy-load sources win over the plain src attribute.
func extractPosterImage(doc *goquery.Document, baseURL string) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			return ResolveURL(trimmed, baseURL)
		}
	}

	banner := doc.Find(bannerImageSelector).First()
	if banner.Length() == 0 {
		return ""
	}
	src := banner.AttrOr("data-src", "")
	if src == "" {
		src = banner.AttrOr("src", "")
	}
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	return ResolveURL(src, baseURL)
}

var spaceRuns = regexp.MustCompile(`[ \t\r\n]+`)

// blockText renders a content block's text, preserving line breaks at block
// boundaries (paragraphs, headings, list items) without duplicating them.
// List items are prefixed with a dash.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(n, &b)
	}
	return CleanText(trimLines(b.String()))
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		// HTML collapses whitespace runs; source indentation is not content.
		b.WriteString(spaceRuns.ReplaceAllString(n.Data, " "))
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteString("\n")
			return
		case "script", "style":
			return
		case "li":
			b.WriteString("- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(c, b)
	}

	if n.Type == html.ElementNode && isBlockTag(n.Data) {
		b.WriteString("\n")
	}
}

func isBlockTag(tag string) bool {
	switch tag {
	case "p", "div", "li", "ul", "ol", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func trimLines(value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
