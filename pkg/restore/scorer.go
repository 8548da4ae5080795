package restore

import (
	"math"
	"unicode/utf8"
)

// wordProb scores a single word in isolation.
//
// Seen words get their empirical probability. Unseen words get
// lambda / (N * 10^len), with len in runes: the 1/N factor keeps smoothed
// mass comparable across corpora of different sizes, and the base-10 decay
// in length penalizes long unknown spans super-linearly. Long unseen
// "words" are usually spurious merges, so the search is deliberately
// biased toward shorter candidates for unknown text.
func (r *Restorer) wordProb(word string, lambda float64) float64 {
	if p, ok := r.model.UnigramProb(word); ok {
		return p
	}
	n := float64(r.model.TotalUnigrams())
	return lambda / (n * math.Pow(10, float64(utf8.RuneCountInString(word))))
}

// condProb scores a word given its predecessor.
//
// An observed bigram yields the proper conditional probability
// count(prev, word) / count(prev). Anything unseen falls back to the
// context-free word score; there is no deeper backoff. The division is
// safe: a positive bigram count implies prev itself was seen in training,
// and the start sentinel never appears on the left of a trained bigram.
func (r *Restorer) condProb(word, prev string, lambda float64) float64 {
	if c := r.model.BigramCount(prev, word); c > 0 {
		return float64(c) / float64(r.model.UnigramCount(prev))
	}
	return r.wordProb(word, lambda)
}
