package restore

import (
	"math"
	"strconv"
	"strings"
)

// chunkResult is the best split found for one (suffix, predecessor)
// sub-problem: the summed log10 probability and the word sequence.
// Instances stored in the memo are shared and must not be mutated.
type chunkResult struct {
	score float64
	words []string
}

// Segment finds the word split of text maximizing total log10
// probability, starting from the sequence sentinel. text must stay within
// the chunk window scale (around a hundred runes); Restore handles the
// windowing for longer inputs.
//
// The returned slice is the caller's to keep.
func (r *Restorer) Segment(text string, p Params) (float64, []string, error) {
	if err := p.validate(); err != nil {
		return 0, nil, err
	}
	res := r.segmentChunk(text, StartToken, p)
	words := make([]string, len(res.words))
	copy(words, res.words)
	return res.score, words, nil
}

// segmentChunk is the memoized recursive search over candidate splits.
//
// Every prefix of text up to MaxWordLen runes is tried as the first word,
// the remainder is segmented recursively with that word as predecessor,
// and the best total wins. Scoring stays in log space throughout, so
// chains of small probabilities sum instead of underflowing. Probabilities
// are strictly positive by construction (smoothing covers unseen words),
// so log10 never sees zero and a split always exists.
//
// Ties on exact score keep the first candidate generated, i.e. the
// shortest prefix: the comparison below is strictly greater-than.
//
// Recursion depth is bounded by the rune length of text, which the
// windowing in Restore keeps small. Without the memo the fan-out would be
// exponential; with it each (suffix, predecessor) pair is solved once
// while it stays resident.
func (r *Restorer) segmentChunk(text, prev string, p Params) chunkResult {
	if text == "" {
		return chunkResult{}
	}
	key := memoKey(text, prev, p)
	if res, ok := r.memo.Get(key); ok {
		return res
	}

	runes := []rune(text)
	limit := p.MaxWordLen
	if len(runes) < limit {
		limit = len(runes)
	}
	best := chunkResult{score: math.Inf(-1)}
	for i := 1; i <= limit; i++ {
		word := string(runes[:i])
		rem := r.segmentChunk(string(runes[i:]), word, p)
		score := math.Log10(r.condProb(word, prev, p.Lambda)) + rem.score
		if score > best.score {
			words := make([]string, 1, len(rem.words)+1)
			words[0] = word
			best = chunkResult{score: score, words: append(words, rem.words...)}
		}
	}

	r.memo.Add(key, best)
	return best
}

// memoKey builds the cache key for one sub-problem. The hyperparameters
// are part of the key: cached scores depend on them, and keying them in
// keeps results correct no matter how params vary between calls.
//
// The string fields are length-prefixed, so no input byte can shift the
// field boundaries and alias another sub-problem's key.
func memoKey(text, prev string, p Params) string {
	var b strings.Builder
	b.Grow(len(text) + len(prev) + 32)
	b.WriteString(strconv.Itoa(len(text)))
	b.WriteByte(':')
	b.WriteString(text)
	b.WriteString(strconv.Itoa(len(prev)))
	b.WriteByte(':')
	b.WriteString(prev)
	b.WriteString(strconv.Itoa(p.MaxWordLen))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(p.Lambda, 'g', -1, 64))
	return b.String()
}
