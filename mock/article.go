package mock

import (
	"context"

	"github.com/fwojciec/skim"
)

var _ skim.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of skim.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(ctx context.Context, url string) (*skim.Article, error)
}

func (a *ArticleExtractor) ExtractArticle(ctx context.Context, url string) (*skim.Article, error) {
	return a.ExtractArticleFn(ctx, url)
}
