package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/skim"
	"github.com/fwojciec/skim/mock"
	skimslog "github.com/fwojciec/skim/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingInferencer_Infer(t *testing.T) {
	t.Parallel()

	t.Run("logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Inferencer{
			InferFn: func(ctx context.Context, text string) ([]skim.Inference, error) {
				return []skim.Inference{{SummaryText: "short"}}, nil
			},
		}

		results, err := skimslog.NewLoggingInferencer(inner, logger).Infer(context.Background(), "héllo")

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "msg=infer")
		assert.Contains(t, output, "chars=5")
		assert.Contains(t, output, "results=1")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs classified failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Inferencer{
			InferFn: func(ctx context.Context, text string) ([]skim.Inference, error) {
				return nil, &skim.Error{Code: skim.EINFERENCEFAILED, Message: "failed", Status: 503}
			},
		}

		_, err := skimslog.NewLoggingInferencer(inner, logger).Infer(context.Background(), "text")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=inference_failed")
		assert.Contains(t, output, "status=503")
	})
}

func TestLoggingArticleExtractor_ExtractArticle(t *testing.T) {
	t.Parallel()

	t.Run("logs title and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractArticleFn: func(ctx context.Context, url string) (*skim.Article, error) {
				return &skim.Article{Title: "Hello", Text: "Body text."}, nil
			},
		}

		article, err := skimslog.NewLoggingArticleExtractor(inner, logger).ExtractArticle(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Hello", article.Title)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "title=Hello")
		assert.Contains(t, output, "chars=10")
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArticleExtractor{
			ExtractArticleFn: func(ctx context.Context, url string) (*skim.Article, error) {
				return nil, skim.Errorf(skim.EEMPTY, "No content found at the provided URL.")
			},
		}

		_, err := skimslog.NewLoggingArticleExtractor(inner, logger).ExtractArticle(context.Background(), "https://example.com/a")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=empty_content")
	})
}

func TestLoggingSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("logs stats", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, text string) (*skim.Summary, error) {
				return &skim.Summary{
					Summary:   "s",
					KeyPoints: []string{"a", "b"},
					Stats:     skim.Stats{WordCount: 120, OriginalLength: 900, ProcessedLength: 780},
				}, nil
			},
		}

		_, err := skimslog.NewLoggingSummarizer(inner, logger).Summarize(context.Background(), "text")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "words=120")
		assert.Contains(t, output, "original=900")
		assert.Contains(t, output, "processed=780")
		assert.Contains(t, output, "keypoints=2")
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, text string) (*skim.Summary, error) {
				return nil, skim.Errorf(skim.ETOOSHORT, "Text is too short to summarize (minimum 100 characters).")
			},
		}

		_, err := skimslog.NewLoggingSummarizer(inner, logger).Summarize(context.Background(), "text")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=too_short")
	})
}
