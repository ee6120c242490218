// Package gemini implements skim.Inferencer using Google Gemini as an
// alternative summarization backend.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/skim"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for summaries.
const DefaultModel = "gemini-2.5-flash"

// Ensure Inferencer implements skim.Inferencer at compile time.
var _ skim.Inferencer = (*Inferencer)(nil)

// Inferencer implements skim.Inferencer using Google Gemini.
type Inferencer struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// Option configures an Inferencer.
type Option func(*Inferencer)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(i *Inferencer) {
		i.model = model
	}
}

// WithLimiter throttles outbound requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(i *Inferencer) {
		i.limiter = l
	}
}

// NewInferencer creates a new Inferencer.
func NewInferencer(client *genai.Client, opts ...Option) *Inferencer {
	i := &Inferencer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, skim.Errorf(skim.ENOTCONFIGURED, "Gemini API key not configured. Please add GEMINI_API_KEY to your .env.local file.")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Infer asks the model for a summary of text.
//
// Errors reported by the API are classified. Anything else is returned as is
// so the caller can retry it.
func (i *Inferencer) Infer(ctx context.Context, text string) ([]skim.Inference, error) {
	if i.client == nil {
		return nil, skim.Errorf(skim.ENOTCONFIGURED, "Gemini API key not configured. Please add GEMINI_API_KEY to your .env.local file.")
	}

	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	result, err := i.client.Models.GenerateContent(ctx, i.model,
		[]*genai.Content{genai.NewContentFromText(BuildUserPrompt(text), genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return nil, classifyError(err)
	}
	if result == nil {
		return nil, skim.Errorf(skim.EINFERENCEREJECTED, "Summarization service error: empty response")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return nil, nil
	}
	return []skim.Inference{{SummaryText: summary}}, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize news and blog articles. Reply with a neutral two to three sentence summary in plain prose. Do not add headings, lists, or commentary.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt wraps the article text for the model.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	sb.WriteString(text)
	sb.WriteString("\n</article>\n\n")
	sb.WriteString("Summarize the article.")
	return sb.String()
}

func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiError(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiError(*apiErrPtr, err)
	}
	return err
}

func apiError(apiErr genai.APIError, err error) error {
	return &skim.Error{
		Code:    skim.EINFERENCEFAILED,
		Message: "Failed to get response from summarization service.",
		Status:  apiErr.Code,
		Err:     fmt.Errorf("gemini: %w", err),
	}
}
