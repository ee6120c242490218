package skim

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ScoredSentence is a candidate key point with its heuristic score.
type ScoredSentence struct {
	Text  string
	Score int
	Index int
}

// ScoringTable holds the vocabulary, weights and thresholds used to pick
// key points. The zero value selects nothing; start from DefaultScoringTable.
type ScoringTable struct {
	// Keywords mark important sentences. Matched case-insensitively as substrings.
	Keywords []string

	// Statistic matches numbers, percentages, amounts and scale words.
	Statistic *regexp.Regexp

	KeywordWeight   int // per keyword found
	StatisticWeight int // once if Statistic matches
	LeadWeight      int // sentence is in the leading LeadRatio of the text
	LengthWeight    int // sentence is longer than LongSentence

	// LeadRatio is the fraction of sentences counted as the lead.
	LeadRatio float64

	// MinSentence is the length a fragment must exceed to count as a sentence.
	MinSentence int

	// MinKeyPoint is the length a sentence must exceed to be selected.
	MinKeyPoint int

	// LongSentence is the length above which LengthWeight applies.
	LongSentence int

	// MaxKeyPoints caps the number of selected sentences.
	MaxKeyPoints int
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	statisticRe     = regexp.MustCompile(`\d+%|\d+\.\d+|\$\d+|million|billion|thousand`)
)

// DefaultKeywords is the default importance vocabulary.
var DefaultKeywords = []string{
	"important", "significant", "key", "main", "primary", "essential", "crucial",
	"major", "critical", "fundamental", "notable", "remarkable", "substantial",
	"according to", "research shows", "study found", "experts say", "data shows",
	"results indicate", "findings suggest", "analysis reveals", "report states",
}

// DefaultScoringTable returns the default key point scoring table.
func DefaultScoringTable() ScoringTable {
	keywords := make([]string, len(DefaultKeywords))
	copy(keywords, DefaultKeywords)
	return ScoringTable{
		Keywords:        keywords,
		Statistic:       statisticRe,
		KeywordWeight:   2,
		StatisticWeight: 3,
		LeadWeight:      1,
		LengthWeight:    1,
		LeadRatio:       0.3,
		MinSentence:     20,
		MinKeyPoint:     30,
		LongSentence:    80,
		MaxKeyPoints:    5,
	}
}

// KeyPoints selects key points from text using the default scoring table.
func KeyPoints(text string) []string {
	return DefaultScoringTable().KeyPoints(text)
}

// KeyPoints returns the highest scoring sentences of text in their original
// order. The result is empty, not nil, when no sentence qualifies.
func (t ScoringTable) KeyPoints(text string) []string {
	scored := t.Score(text)

	candidates := make([]ScoredSentence, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 && utf8.RuneCountInString(s.Text) > t.MinKeyPoint {
			candidates = append(candidates, s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > t.MaxKeyPoints {
		candidates = candidates[:t.MaxKeyPoints]
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Index < candidates[j].Index
	})

	points := make([]string, 0, len(candidates))
	for _, c := range candidates {
		points = append(points, c.Text)
	}
	return points
}

// Score splits text into sentences and scores each one.
// Fragments too short to be a sentence are dropped before indexing.
func (t ScoringTable) Score(text string) []ScoredSentence {
	var sentences []string
	for _, fragment := range sentenceSplitRe.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) > t.MinSentence {
			sentences = append(sentences, fragment)
		}
	}

	lead := float64(len(sentences)) * t.LeadRatio
	scored := make([]ScoredSentence, 0, len(sentences))
	for i, sentence := range sentences {
		scored = append(scored, ScoredSentence{
			Text:  sentence,
			Score: t.score(sentence, float64(i) < lead),
			Index: i,
		})
	}
	return scored
}

func (t ScoringTable) score(sentence string, inLead bool) int {
	var score int

	lower := strings.ToLower(sentence)
	for _, keyword := range t.Keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			score += t.KeywordWeight
		}
	}

	if t.Statistic != nil && t.Statistic.MatchString(sentence) {
		score += t.StatisticWeight
	}

	if inLead {
		score += t.LeadWeight
	}

	if utf8.RuneCountInString(sentence) > t.LongSentence {
		score += t.LengthWeight
	}

	return score
}
