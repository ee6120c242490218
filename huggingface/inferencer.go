// Package huggingface implements skim.Inferencer against the Hugging Face
// hosted inference API.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/skim"
	"golang.org/x/time/rate"
)

// DefaultModelURL is the summarization model endpoint.
const DefaultModelURL = "https://router.huggingface.co/hf-inference/models/sshleifer/distilbart-cnn-12-6"

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 4 << 10

// Ensure Inferencer implements skim.Inferencer at compile time.
var _ skim.Inferencer = (*Inferencer)(nil)

// Inferencer calls a Hugging Face summarization model.
// Inferencer is safe for concurrent use.
type Inferencer struct {
	client   *http.Client
	apiKey   string
	modelURL string
	limiter  *rate.Limiter
}

// Option configures an Inferencer.
type Option func(*Inferencer)

// WithModelURL overrides the model endpoint.
func WithModelURL(u string) Option {
	return func(i *Inferencer) {
		i.modelURL = u
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Inferencer) {
		i.client = c
	}
}

// WithLimiter throttles outbound requests to stay within the API quota.
func WithLimiter(l *rate.Limiter) Option {
	return func(i *Inferencer) {
		i.limiter = l
	}
}

// NewInferencer creates a new Inferencer authenticated with apiKey.
// Per-request timeouts are left to the caller's context.
func NewInferencer(apiKey string, opts ...Option) *Inferencer {
	i := &Inferencer{
		client:   &http.Client{},
		apiKey:   apiKey,
		modelURL: DefaultModelURL,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type request struct {
	Inputs string `json:"inputs"`
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// Infer sends text to the model and returns its results.
//
// Failures to complete the exchange are returned unclassified so that the
// caller can retry them. Answers from the service are classified.
func (i *Inferencer) Infer(ctx context.Context, text string) ([]skim.Inference, error) {
	if i.apiKey == "" {
		return nil, skim.Errorf(skim.ENOTCONFIGURED, "Hugging Face API key not configured. Please add HF_API_KEY to your .env.local file.")
	}

	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(request{Inputs: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.modelURL, bytes.NewReader(body))
	if err != nil {
		return nil, skim.Errorf(skim.EINTERNAL, "invalid model URL: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+i.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &skim.Error{
			Code:    skim.EINFERENCEFAILED,
			Message: "Failed to get response from summarization service.",
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return decode(raw)
}

// decode parses either a list of results or a structured error payload.
func decode(raw []byte) ([]skim.Inference, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '{' {
		var e errorResponse
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, skim.Errorf(skim.EINFERENCEREJECTED, "Summarization service error: malformed response")
		}
		if len(e.Error) > 0 && string(e.Error) != "null" {
			return nil, skim.Errorf(skim.EINFERENCEREJECTED, "Summarization service error: %s", errorText(e.Error))
		}
		return nil, nil
	}

	var results []skim.Inference
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, skim.Errorf(skim.EINFERENCEREJECTED, "Summarization service error: malformed response")
	}
	return results, nil
}

// errorText renders an error field that may be a string or any JSON value.
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
