package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/skim"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	text, err := c.read(deps.Stdin)
	if err != nil {
		return err
	}

	summary, err := deps.Summarizer.Summarize(deps.Ctx, text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skim.ErrorMessage(err))
		return err
	}

	writeSummary(deps.Stdout, summary)
	return nil
}

func (c *SummarizeCmd) read(stdin io.Reader) (string, error) {
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", c.File, err)
		}
		return string(b), nil
	}
	if stdin == nil {
		return "", errors.New("no input: pass --file or pipe text to stdin")
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

// writeSummary prints a summary in its human-readable form.
func writeSummary(w io.Writer, s *skim.Summary) {
	fmt.Fprintf(w, "Summary:\n%s\n", s.Summary)
	if len(s.KeyPoints) > 0 {
		fmt.Fprintln(w, "\nKey points:")
		for _, p := range s.KeyPoints {
			fmt.Fprintf(w, "- %s\n", p)
		}
	}
	fmt.Fprintf(w, "\nWords: %d | original %d chars | processed %d chars\n",
		s.Stats.WordCount, s.Stats.OriginalLength, s.Stats.ProcessedLength)
}
