package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/skim"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of running the pipeline on one URL. The summary
// fields are inlined when present.
type Report struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	*skim.Summary
	Error *ReportError `json:"error,omitempty"`
}

// ReportError describes why a URL produced no summary.
type ReportError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Run executes the run command. Every URL is processed even if others fail;
// reports are printed in argument order.
func (c *RunCmd) Run(deps *Dependencies) error {
	reports := make([]Report, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, u := range c.URLs {
		g.Go(func() error {
			reports[i] = process(deps.Ctx, deps, u)
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for i := range reports {
		r := &reports[i]
		if r.Error != nil {
			failed++
		}
		if c.JSON {
			if err := enc.Encode(r); err != nil {
				return err
			}
			continue
		}
		writeReport(deps.Stdout, r)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(reports))
	}
	return nil
}

// process extracts and summarizes one URL.
func process(ctx context.Context, deps *Dependencies, url string) Report {
	r := Report{URL: url}

	article, err := deps.Extractor.ExtractArticle(ctx, url)
	if err != nil {
		r.Error = reportError(err)
		return r
	}
	r.Title = article.Title

	summary, err := deps.Summarizer.Summarize(ctx, article.Text)
	if err != nil {
		r.Error = reportError(err)
		return r
	}
	r.Summary = summary
	return r
}

func reportError(err error) *ReportError {
	return &ReportError{Code: skim.ErrorCode(err), Message: skim.ErrorMessage(err)}
}

func writeReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "== %s\n", r.URL)
	if r.Title != "" {
		fmt.Fprintf(w, "%s\n", r.Title)
	}
	if r.Error != nil {
		fmt.Fprintf(w, "error: %s\n\n", r.Error.Message)
		return
	}
	fmt.Fprintln(w)
	writeSummary(w, r.Summary)
	fmt.Fprintln(w)
}
