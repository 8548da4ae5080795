/*
Package ngram holds the unigram and bigram frequency model behind the
space restorer.

A Model is built once from whitespace-delimited gold text and is read-only
afterwards. Probability distributions are derived from the raw counts on
every Train or Load; they are never persisted on their own.
*/
package ngram

import (
	"strings"

	"github.com/charmbracelet/log"
)

// bigramSep joins an ordered word pair into a single map key. NUL cannot
// appear inside a whitespace-split word, so the key is unambiguous even
// for words containing underscores or other joiners.
const bigramSep = "\x00"

// Model holds occurrence counts learned from training text plus the
// derived unigram distribution.
type Model struct {
	unigrams map[string]int
	bigrams  map[string]int
	n        int // total unigram tokens
	n2       int // total bigram tokens
	uniProb  map[string]float64
}

// Train builds a Model from gold documents (running text with correct
// spacing). With ignoreCase set, documents are lowercased first so that
// case variants count as one word.
//
// When saveDir is non-empty the trained counts are persisted there. A dir
// that already holds a saved model is rejected with ErrModelExists before
// any counting happens, so an existing model is never silently replaced.
func Train(docs []string, ignoreCase bool, saveDir string) (*Model, error) {
	if saveDir != "" {
		if err := checkSaveDir(saveDir); err != nil {
			return nil, err
		}
	}

	m := &Model{
		unigrams: make(map[string]int),
		bigrams:  make(map[string]int),
	}
	for _, doc := range docs {
		if ignoreCase {
			doc = strings.ToLower(doc)
		}
		words := strings.Fields(doc)
		for i, w := range words {
			m.unigrams[w]++
			m.n++
			if i > 0 {
				m.bigrams[words[i-1]+bigramSep+w]++
				m.n2++
			}
		}
	}
	m.derive()
	log.Debugf("Trained model: %d unigrams (%d tokens), %d bigrams", len(m.unigrams), m.n, len(m.bigrams))

	if saveDir != "" {
		if err := m.save(saveDir); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// derive recomputes the unigram probability distribution from the raw
// counts. O(distinct unigrams); bigram conditionals are computed on demand
// from the counts instead.
func (m *Model) derive() {
	m.uniProb = make(map[string]float64, len(m.unigrams))
	for w, c := range m.unigrams {
		m.uniProb[w] = float64(c) / float64(m.n)
	}
}

// UnigramProb returns the empirical probability of word and whether the
// word was seen in training.
func (m *Model) UnigramProb(word string) (float64, bool) {
	p, ok := m.uniProb[word]
	return p, ok
}

// UnigramCount returns the occurrence count for word, zero if unseen.
func (m *Model) UnigramCount(word string) int {
	return m.unigrams[word]
}

// BigramCount returns the occurrence count of the ordered pair
// (prev, word), zero if the pair was never observed.
func (m *Model) BigramCount(prev, word string) int {
	return m.bigrams[prev+bigramSep+word]
}

// TotalUnigrams returns N, the total number of word tokens seen.
func (m *Model) TotalUnigrams() int { return m.n }

// TotalBigrams returns N2, the total number of adjacent pairs seen.
func (m *Model) TotalBigrams() int { return m.n2 }

// VocabSize returns the number of distinct words seen in training.
func (m *Model) VocabSize() int { return len(m.unigrams) }
