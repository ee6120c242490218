// Package goquery provides a last-resort Extractor built on goquery. It
// strips boilerplate elements and reads the text of the most specific
// content container it can find.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/skim"
)

// Ensure Extractor implements skim.Extractor at compile time.
var _ skim.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first with text wins.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	"#content",
	".content",
	"body",
}

// boilerplateSelector matches elements that never hold article text.
const boilerplateSelector = "script, style, noscript, template, iframe, svg, form, nav, header, footer, aside"

// blockSelector matches elements whose text forms a paragraph of its own.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// Extractor reads article text with CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*skim.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, skim.Errorf(skim.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &skim.ExtractResult{Title: Title(doc)}

	doc.Find(boilerplateSelector).Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := blockText(sel)
		if text == "" {
			continue
		}
		result.Text = text
		result.ContentHTML, _ = goquery.OuterHtml(sel)
		break
	}

	return result, nil
}

// Title returns the page title, preferring Open Graph metadata over the
// title element and the first heading.
func Title(doc *goquery.Document) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// blockText joins the text of block elements with blank lines. Blocks nested
// in other blocks are skipped so their text is not repeated.
func blockText(sel *goquery.Selection) string {
	var parts []string
	sel.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		if block.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		if text := collapse(block.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return collapse(sel.Text())
	}
	return strings.Join(parts, "\n\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
