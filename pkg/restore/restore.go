/*
Package restore implements space restoration over a trained ngram model.

Given a run of characters with no word boundaries ("thisisasentence"), a
Restorer finds the word split with the highest Naive Bayes probability and
returns the text with single spaces between the recovered words
("this is a sentence").

Long documents are processed in fixed windows of runes with a short word
carry between windows, so the memoized search only ever sees bounded
inputs. Splits near a window seam are therefore made with partial right
context; that trade is deliberate and keeps inference linear in document
length.

The Restorer is synchronous and single-threaded: the memo cache it owns is
not safe for concurrent use. Parallel workers need one Restorer each.
*/
package restore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/spaceserve/pkg/ngram"
)

const (
	// StartToken marks the start of a sequence as the predecessor of the
	// first word. It carries a reserved pseudo-count of one, though the
	// conditional scorer never actually divides by it: no trained bigram
	// has the sentinel on its left side.
	StartToken = "<S>"

	// DefaultWindow is the chunk size in runes. Low enough that the
	// search depth stays around a hundred frames even after the carried
	// prefix is prepended.
	DefaultWindow = 80

	// DefaultCacheSize bounds the memo cache entry count.
	DefaultCacheSize = 1_000_000

	// carryWords is how many trailing words of a chunk result are pushed
	// into the next window. Words cut off at a seam get re-segmented with
	// their missing right half present.
	carryWords = 5
)

var (
	// ErrInvalidParams is returned when a hyperparameter is not positive.
	ErrInvalidParams = errors.New("hyperparameters must be positive")
	// ErrEmptyModel is returned when the model holds no trained words.
	ErrEmptyModel = errors.New("model has no trained words")
)

// Params are the per-call inference hyperparameters.
type Params struct {
	// MaxWordLen is the longest candidate word, in runes, considered at
	// each split point. Inference cost grows with it.
	MaxWordLen int
	// Lambda is the smoothing weight: higher values assign more
	// probability mass to words never seen in training.
	Lambda float64
}

func (p Params) validate() error {
	if p.MaxWordLen <= 0 {
		return fmt.Errorf("%w: max word length %d", ErrInvalidParams, p.MaxWordLen)
	}
	if p.Lambda <= 0 {
		return fmt.Errorf("%w: lambda %g", ErrInvalidParams, p.Lambda)
	}
	return nil
}

// Restorer restores spaces using a read-only frequency model and a
// bounded per-instance memo cache.
type Restorer struct {
	model  *ngram.Model
	memo   *lru.Cache[string, chunkResult]
	window int
}

// New creates a Restorer over a trained model. cacheSize bounds the memo
// entry count and window sets the chunk length in runes; non-positive
// values fall back to the package defaults.
func New(model *ngram.Model, cacheSize, window int) (*Restorer, error) {
	if model == nil || model.TotalUnigrams() == 0 {
		return nil, ErrEmptyModel
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if window <= 0 {
		window = DefaultWindow
	}
	memo, err := lru.New[string, chunkResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create memo cache: %w", err)
	}
	return &Restorer{
		model:  model,
		memo:   memo,
		window: window,
	}, nil
}

// Restore restores spaces to a document of arbitrary length.
//
// The document is consumed in windows of runes. Each window is segmented
// together with the unsegmented tail (the last few words) of the previous
// result, which gives the next window left context and lets words that
// straddled the seam be re-split. The trailing words of the final window
// get one last pass of their own.
func (r *Restorer) Restore(text string, p Params) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	runes := []rune(text)
	var words []string
	prefix := ""
	chunk := 0
	for offset := 0; offset < len(runes); offset += r.window {
		end := offset + r.window
		if end > len(runes) {
			end = len(runes)
		}
		res := r.segmentChunk(prefix+string(runes[offset:end]), StartToken, p)

		keep := len(res.words) - carryWords
		if keep < 0 {
			keep = 0
		}
		words = append(words, res.words[:keep]...)
		prefix = strings.Join(res.words[keep:], "")
		chunk++
		log.Debugf("Chunk %d: kept %d words, carrying %q", chunk, keep, prefix)
	}
	// Whatever is still carried never got a final say; segment it alone.
	res := r.segmentChunk(prefix, StartToken, p)
	words = append(words, res.words...)

	return strings.Join(words, " "), nil
}

// RestoreAll restores spaces to each document in order. The memo cache is
// shared across documents; it is keyed by content and hyperparameters, so
// reuse is safe and only improves throughput.
func (r *Restorer) RestoreAll(texts []string, p Params) ([]string, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	restored := make([]string, 0, len(texts))
	for i, text := range texts {
		out, err := r.Restore(text, p)
		if err != nil {
			return nil, err
		}
		restored = append(restored, out)
		log.Debugf("Restored document %d/%d, cache holds %d entries", i+1, len(texts), r.memo.Len())
	}
	return restored, nil
}

// Stats reports model and cache counters for diagnostics.
func (r *Restorer) Stats() map[string]int {
	return map[string]int{
		"vocabWords":    r.model.VocabSize(),
		"trainedTokens": r.model.TotalUnigrams(),
		"cachedChunks":  r.memo.Len(),
	}
}

// PurgeCache drops every memoized chunk result.
func (r *Restorer) PurgeCache() {
	r.memo.Purge()
}
