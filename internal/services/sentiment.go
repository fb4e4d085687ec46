package services

import "strings"

// Affect lexicons for the heuristic sentiment score. Entries may be
// multi-word phrases; matching is case-insensitive substring membership.
var negativeTerms = []string{
	"overwhelmed", "burned", "burnt", "burnout", "exhausted", "tired", "fatigued", "stressed", "anxious",
	"pressure", "toxic", "unfair", "ignored", "micromanaged", "late", "overwork", "overworked", "cry", "breakdown",
	"panic", "panic attack", "dread", "hopeless", "helpless", "no growth", "no future", "quit", "quitting", "resign",
}

var positiveTerms = []string{
	"supported", "recognized", "appreciated", "balanced", "encouraged", "fair", "growth", "autonomy", "trust",
}

// SentimentScore returns a heuristic affect score in [-1, 1] based on
// which lexicon terms are present in the text. Each distinct term counts
// once regardless of how often it occurs. Empty text scores exactly 0.
func SentimentScore(text string) float64 {
	if text == "" {
		return 0.0
	}
	t := strings.ToLower(text)
	neg := countTermsPresent(t, negativeTerms)
	pos := countTermsPresent(t, positiveTerms)
	denom := pos + neg
	if denom < 1 {
		denom = 1
	}
	score := float64(pos-neg) / float64(denom)
	if score > 1 {
		score = 1.0
	}
	if score < -1 {
		score = -1.0
	}
	return score
}

func countTermsPresent(lowered string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			n++
		}
	}
	return n
}
