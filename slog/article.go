package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skim"
)

var _ skim.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   skim.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next skim.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticle logs the URL, outcome and extracted size.
func (e *LoggingArticleExtractor) ExtractArticle(ctx context.Context, url string) (article *skim.Article, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Warn("extract",
				"url", url,
				"code", skim.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Info("extract",
			"url", url,
			"title", article.Title,
			"chars", len([]rune(article.Text)),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractArticle(ctx, url)
}
