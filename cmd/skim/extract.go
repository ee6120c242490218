package main

import (
	"fmt"

	"github.com/fwojciec/skim"
	"github.com/fwojciec/skim/htmltomarkdown"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	article, err := deps.Extractor.ExtractArticle(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skim.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		doc, err := htmltomarkdown.Document(deps.Converter, article)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", skim.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, doc)
		return nil
	}

	if article.Title != "" {
		fmt.Fprintf(deps.Stdout, "%s\n\n", article.Title)
	}
	fmt.Fprintln(deps.Stdout, article.Text)
	return nil
}
