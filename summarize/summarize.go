// Package summarize implements the summarization stage: it normalizes text,
// asks a remote model for an abstractive summary with bounded retries and
// adds locally scored key points.
package summarize

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/skim"
)

// DefaultNotConfiguredMessage is reported when no Inferencer is set.
const DefaultNotConfiguredMessage = "Summarization service not configured. Please set HF_API_KEY in your .env.local file."

// DefaultAttemptTimeout bounds a single inference attempt.
const DefaultAttemptTimeout = 30 * time.Second

// DefaultRetryDelays returns the waits between inference attempts: 2s, 2s.
// Three attempts in total.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 2 * time.Second}
}

// Ensure Service implements skim.Summarizer at compile time.
var _ skim.Summarizer = (*Service)(nil)

// Service summarizes text. Service is safe for concurrent use.
type Service struct {
	// Inferencer is the remote summarization model.
	// A nil Inferencer means no credential was configured.
	Inferencer skim.Inferencer

	// NotConfiguredMessage tells the user which credential is missing when
	// Inferencer is nil.
	NotConfiguredMessage string

	// Scoring selects key points.
	Scoring skim.ScoringTable

	// RetryDelays are the waits before each retry of a transport failure.
	// The number of attempts is len(RetryDelays)+1.
	RetryDelays []time.Duration

	// AttemptTimeout bounds each inference attempt.
	AttemptTimeout time.Duration

	// Sleep waits between attempts. Replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *slog.Logger
}

// NewService creates a new Service with default retry policy and scoring.
func NewService(inferencer skim.Inferencer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		Inferencer:           inferencer,
		NotConfiguredMessage: DefaultNotConfiguredMessage,
		Scoring:              skim.DefaultScoringTable(),
		RetryDelays:          DefaultRetryDelays(),
		AttemptTimeout:       DefaultAttemptTimeout,
		Sleep:                sleep,
		Logger:               logger,
	}
}

// Summarize returns the summary, key points and stats for text.
func (s *Service) Summarize(ctx context.Context, text string) (*skim.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, skim.Errorf(skim.EEMPTYINPUT, "No text provided for summarization.")
	}

	if s.Inferencer == nil {
		msg := s.NotConfiguredMessage
		if msg == "" {
			msg = DefaultNotConfiguredMessage
		}
		return nil, skim.Errorf(skim.ENOTCONFIGURED, "%s", msg)
	}

	processed := skim.ProcessText(text)
	if processed.Len() < skim.MinTextLength {
		return nil, skim.Errorf(skim.ETOOSHORT, "Text is too short for meaningful summarization. Please try a longer article.")
	}

	results, err := s.infer(ctx, processed.Normalized)
	if err != nil {
		return nil, err
	}

	summary := skim.NoSummary
	if len(results) > 0 && strings.TrimSpace(results[0].SummaryText) != "" {
		summary = strings.TrimSpace(results[0].SummaryText)
	} else {
		s.logger().Warn("inference returned no summary", "results", len(results))
	}

	return &skim.Summary{
		Summary:   summary,
		KeyPoints: s.Scoring.KeyPoints(processed.Normalized),
		Stats: skim.Stats{
			WordCount:       processed.WordCount(),
			OriginalLength:  utf8.RuneCountInString(text),
			ProcessedLength: processed.Len(),
		},
	}, nil
}

// infer calls the model, retrying transport failures after each of the
// configured delays. Application errors are returned as is.
func (s *Service) infer(ctx context.Context, text string) ([]skim.Inference, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		results, err := s.attempt(ctx, text)
		if err == nil {
			return results, nil
		}
		if !isTransportError(err) {
			return nil, err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		s.logger().Warn("inference attempt failed",
			"attempt", attempt+1,
			"retry_in", delays[attempt],
			"err", err,
		)

		if err := s.wait(ctx, delays[attempt]); err != nil {
			lastErr = err
			break
		}
	}

	return nil, &skim.Error{
		Code:    skim.EINFERENCEUNREACHABLE,
		Message: "Could not reach the summarization service. Please try again later.",
		Err:     lastErr,
	}
}

func (s *Service) attempt(ctx context.Context, text string) ([]skim.Inference, error) {
	timeout := s.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.Inferencer.Infer(ctx, text)
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	return sleep(ctx, d)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// isTransportError reports whether err failed the exchange itself rather
// than carrying a classified answer from the service.
func isTransportError(err error) bool {
	var e *skim.Error
	return !errors.As(err, &e)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
