package mock

import (
	"context"

	"github.com/fwojciec/skim"
)

var _ skim.Inferencer = (*Inferencer)(nil)

// Inferencer is a mock implementation of skim.Inferencer.
type Inferencer struct {
	InferFn func(ctx context.Context, text string) ([]skim.Inference, error)
}

func (i *Inferencer) Infer(ctx context.Context, text string) ([]skim.Inference, error) {
	return i.InferFn(ctx, text)
}
