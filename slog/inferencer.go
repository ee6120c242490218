package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skim"
)

var _ skim.Inferencer = (*LoggingInferencer)(nil)

// LoggingInferencer wraps an Inferencer with logging of every model call.
type LoggingInferencer struct {
	next   skim.Inferencer
	logger *slog.Logger
}

// NewLoggingInferencer creates a new LoggingInferencer.
func NewLoggingInferencer(next skim.Inferencer, logger *slog.Logger) *LoggingInferencer {
	return &LoggingInferencer{next: next, logger: logger}
}

// Infer logs the request size, result count and outcome.
func (i *LoggingInferencer) Infer(ctx context.Context, text string) (results []skim.Inference, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"chars", len([]rune(text)),
			"results", len(results),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", skim.ErrorCode(err), "status", skim.ErrorStatus(err), "err", err)
		}
		i.logger.Info("infer", attrs...)
	}(time.Now())
	return i.next.Infer(ctx, text)
}
