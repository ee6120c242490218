package skim

import "context"

// NoSummary is reported when the inference service answers without a summary.
const NoSummary = "No summary available"

// Summary is the final output of the summarization stage.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Stats     Stats    `json:"stats"`
}

// Stats describes the text that was summarized.
type Stats struct {
	// WordCount is the number of space-separated tokens in the processed text.
	WordCount int `json:"wordCount"`

	// OriginalLength is the input length in characters before processing.
	OriginalLength int `json:"originalLength"`

	// ProcessedLength is the length in characters after normalization and truncation.
	ProcessedLength int `json:"processedLength"`
}

// Summarizer produces a summary and key points for a piece of text.
type Summarizer interface {
	// Summarize returns the summary of text.
	// Returns EEMPTYINPUT, ENOTCONFIGURED, ETOOSHORT, EINFERENCEUNREACHABLE,
	// EINFERENCEFAILED or EINFERENCEREJECTED.
	Summarize(ctx context.Context, text string) (*Summary, error)
}

// Inference is a single result returned by a summarization model.
type Inference struct {
	SummaryText string `json:"summary_text"`
}

// Inferencer sends text to a hosted summarization model.
type Inferencer interface {
	// Infer returns the model results for text.
	//
	// Application-level failures are classified: EINFERENCEFAILED with Status
	// for non-success responses and EINFERENCEREJECTED for structured error
	// payloads. Any other error is a transport failure and may be retried.
	Infer(ctx context.Context, text string) ([]Inference, error)
}
