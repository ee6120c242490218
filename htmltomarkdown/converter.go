// Package htmltomarkdown renders extracted article HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/skim"
)

// Ensure Converter implements skim.Converter at compile time.
var _ skim.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown with surrounding blank
// lines removed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", skim.Errorf(skim.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// Document renders an article as a Markdown document headed by its title.
// Falls back to the plain text when the article has no HTML body.
func Document(conv skim.Converter, article *skim.Article) (string, error) {
	body := article.Text
	if strings.TrimSpace(article.ContentHTML) != "" {
		md, err := conv.Convert(article.ContentHTML)
		if err != nil {
			return "", err
		}
		body = md
	}

	if article.Title == "" {
		return body, nil
	}
	return "# " + article.Title + "\n\n" + body, nil
}
