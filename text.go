package skim

import (
	"strings"
	"unicode"
)

// Text processing limits.
const (
	// MaxTextLength is the maximum number of characters sent for inference.
	MaxTextLength = 800

	// MinTextLength is the minimum number of characters worth summarizing.
	MinTextLength = 100

	// SentenceCutRatio is how far into the limit a sentence boundary must be
	// for the text to be cut there instead of at the hard limit.
	SentenceCutRatio = 0.7
)

// ProcessedText pairs an input with its normalized, length-bounded form.
type ProcessedText struct {
	Original   string
	Normalized string
}

// ProcessText normalizes text and bounds it to MaxTextLength characters.
func ProcessText(text string) ProcessedText {
	return ProcessedText{
		Original:   text,
		Normalized: Truncate(Normalize(text), MaxTextLength),
	}
}

// Len returns the length of the normalized text in characters.
func (p ProcessedText) Len() int {
	return len([]rune(p.Normalized))
}

// WordCount returns the number of space-separated tokens in the normalized text.
func (p ProcessedText) WordCount() int {
	return len(strings.Fields(p.Normalized))
}

// Normalize collapses every run of whitespace, newlines included, into a
// single space and trims both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate bounds text to limit characters. When the hard cut falls inside a
// sentence and the last sentence end (., ! or ?) lies at or past
// SentenceCutRatio of the limit, the text is cut right after that character.
// A hard cut drops trailing whitespace so the result is already normalized.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	runes = runes[:limit]

	last := -1
	for i := len(runes) - 1; i >= 0; i-- {
		if isSentenceEnd(runes[i]) {
			last = i
			break
		}
	}
	if last >= 0 && float64(last) >= float64(limit)*SentenceCutRatio {
		return string(runes[:last+1])
	}
	return strings.TrimRightFunc(string(runes), unicode.IsSpace)
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
