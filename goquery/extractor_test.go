package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/skim/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers article over body", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Post</title></head><body>
<div>Cookie banner text</div>
<article><p>First paragraph.</p><p>Second   paragraph
spans lines.</p></article>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph spans lines.", result.Text)
		assert.Equal(t, "Post", result.Title)
		assert.Contains(t, result.ContentHTML, "<article>")
	})

	t.Run("strips scripts styles and navigation", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav>Menu Link</nav>
<script>var tracking = true;</script>
<style>body { color: red; }</style>
<div>Plain body text without any paragraph elements.</div>
<footer>Footer copyright</footer>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Plain body text without any paragraph elements.", result.Text)
	})

	t.Run("skips nested blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><ul><li><p>Nested item</p></li></ul></main></body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Nested item", result.Text)
	})

	t.Run("returns empty text for pages without content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Empty</title><script>app()</script></head><body><script>render()</script></body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, result.Text)
		assert.Equal(t, "Empty", result.Title)
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	parse := func(html string) *gq.Document {
		doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		return doc
	}

	assert.Equal(t, "OG Title", goquery.Title(parse(`<html><head><meta property="og:title" content="OG Title"><title>Plain</title></head></html>`)))
	assert.Equal(t, "Plain", goquery.Title(parse(`<html><head><title> Plain </title></head></html>`)))
	assert.Equal(t, "Heading", goquery.Title(parse(`<html><body><h1>Heading</h1></body></html>`)))
}
