// Package sentiment implements the lightweight rule-based classifier used for
// crisis detection and mood tracking. It is deliberately simple: lower-cased
// substring containment against fixed keyword sets, no tokenization, no model.
// The permissive substring matching (e.g. "sadness" counts as "sad") is part
// of the contract and must be preserved.
//
// Classify is pure and deterministic, safe for unlimited parallel use.
package sentiment

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/dilazaad/go-support-backend/internal/domain"
)

// Result is the outcome of classifying one message.
type Result struct {
	// Sentiment is one of the domain.Sentiment* labels.
	Sentiment string `json:"sentiment"`
	// CrisisDetected is true when any crisis phrase is contained in the text.
	CrisisDetected bool `json:"crisis_detected"`
	// Confidence is 0.8 for crisis outcomes and 0.6 otherwise.
	Confidence float64 `json:"confidence"`
}

// crisisPhrases are matched as substrings, case-insensitively, anywhere in
// the text. The last entry is Urdu/Persian for "suicide"; the classifier must
// keep working for non-Latin scripts.
var crisisPhrases = []string{
	"suicide",
	"kill myself",
	"end it all",
	"want to die",
	"harm myself",
	"better off dead",
	"no point living",
	"خودکشی",
}

var negativeWords = []string{"sad", "depressed", "hopeless", "anxious", "worried", "stressed"}

var positiveWords = []string{"happy", "good", "better", "grateful", "thankful"}

// foldCaser performs Unicode-aware case folding so matching stays
// case-insensitive beyond ASCII.
var foldCaser = cases.Fold()

const (
	crisisConfidence  = 0.8
	defaultConfidence = 0.6
)

// Classify analyzes free-form user text and returns its sentiment label,
// crisis flag, and confidence.
//
// Rules, in order:
//  1. Any crisis phrase contained → severe_negative, crisis, confidence 0.8.
//  2. More negative than positive keyword hits → negative.
//  3. More positive than negative keyword hits → positive.
//  4. Equal counts (including zero/zero) → neutral.
//
// Non-crisis outcomes always carry confidence 0.6.
func Classify(text string) Result {
	lower := foldCaser.String(text)

	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return Result{
				Sentiment:      domain.SentimentSevereNegative,
				CrisisDetected: true,
				Confidence:     crisisConfidence,
			}
		}
	}

	negatives := countContained(lower, negativeWords)
	positives := countContained(lower, positiveWords)

	label := domain.SentimentNeutral
	switch {
	case negatives > positives:
		label = domain.SentimentNegative
	case positives > negatives:
		label = domain.SentimentPositive
	}

	return Result{Sentiment: label, Confidence: defaultConfidence}
}

// countContained counts how many of the given words occur as substrings.
// Each word contributes at most 1 regardless of how often it repeats.
func countContained(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
