package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skim"
)

var _ skim.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   skim.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next skim.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize logs the text statistics and outcome.
func (s *LoggingSummarizer) Summarize(ctx context.Context, text string) (summary *skim.Summary, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("summarize",
				"chars", len([]rune(text)),
				"code", skim.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("summarize",
			"words", summary.Stats.WordCount,
			"original", summary.Stats.OriginalLength,
			"processed", summary.Stats.ProcessedLength,
			"keypoints", len(summary.KeyPoints),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Summarize(ctx, text)
}
