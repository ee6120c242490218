package htmltomarkdown_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/skim"
	"github.com/fwojciec/skim/htmltomarkdown"
	"github.com/fwojciec/skim/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements skim.Converter at compile time.
var _ skim.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs and emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Prices rose <strong>sharply</strong> this week.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Prices rose **sharply** this week.", md)
	})

	t.Run("converts headings and lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h2>Findings</h2><ul><li>First</li><li>Second</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Findings")
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Read the <a href="https://example.com/report">full report</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[full report](https://example.com/report)")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, skim.EINVALID, skim.ErrorCode(err))
	})
}

func TestDocument(t *testing.T) {
	t.Parallel()

	t.Run("heads converted body with title", func(t *testing.T) {
		t.Parallel()

		article := &skim.Article{Title: "Report", Text: "plain", ContentHTML: "<p>Body</p>"}

		md, err := htmltomarkdown.Document(htmltomarkdown.NewConverter(), article)

		require.NoError(t, err)
		assert.Equal(t, "# Report\n\nBody", md)
	})

	t.Run("falls back to plain text", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				t.Fatal("unexpected conversion")
				return "", nil
			},
		}

		md, err := htmltomarkdown.Document(conv, &skim.Article{Text: "plain text"})

		require.NoError(t, err)
		assert.Equal(t, "plain text", md)
	})

	t.Run("propagates conversion errors", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("bad html")
			},
		}

		_, err := htmltomarkdown.Document(conv, &skim.Article{Text: "x", ContentHTML: "<p>x</p>"})

		require.Error(t, err)
	})
}
