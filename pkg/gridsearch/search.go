/*
Package gridsearch sweeps restoration hyperparameters.

A Search runs every (max word length, lambda) combination over an input
corpus through Restorer.Restore, scores each output against a correctly
spaced reference corpus, and records the results. The restorer's Restore
operation is the only coupling to the segmentation core.
*/
package gridsearch

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bastiangx/spaceserve/internal/utils"
	"github.com/bastiangx/spaceserve/pkg/restore"
)

// searchDirName is the subdirectory of a model dir holding saved sweeps.
const searchDirName = "grid_searches"

var (
	// ErrSearchExists signals that a sweep with this name is already saved.
	ErrSearchExists = errors.New("a grid search with this name already exists")
	// ErrSearchNotFound signals that no saved sweep has this name.
	ErrSearchNotFound = errors.New("no saved grid search with this name")
	// ErrBadGrid signals empty hyperparameter grids or mismatched corpora.
	ErrBadGrid = errors.New("grid search needs non-empty grids and equal-length corpora")
)

// Result is one scored hyperparameter combination.
type Result struct {
	MaxWordLen int     `toml:"max_word_len"`
	Lambda     float64 `toml:"lambda"`
	Score      float64 `toml:"score"`
}

// Search holds a sweep definition and, after Run, its scored results.
type Search struct {
	Name        string    `toml:"name"`
	MaxWordLens []int     `toml:"max_word_lens"`
	Lambdas     []float64 `toml:"lambdas"`
	Ref         []string  `toml:"ref"`
	Input       []string  `toml:"input"`
	Results     []Result  `toml:"results,omitempty"`
}

// New defines a sweep. Ref holds the correctly spaced documents and Input
// the same documents with spaces stripped, index for index.
func New(name string, maxWordLens []int, lambdas []float64, ref, input []string) (*Search, error) {
	if name == "" || len(maxWordLens) == 0 || len(lambdas) == 0 {
		return nil, ErrBadGrid
	}
	if len(ref) == 0 || len(ref) != len(input) {
		return nil, fmt.Errorf("%w: %d reference vs %d input documents", ErrBadGrid, len(ref), len(input))
	}
	return &Search{
		Name:        name,
		MaxWordLens: maxWordLens,
		Lambdas:     lambdas,
		Ref:         ref,
		Input:       input,
	}, nil
}

// Run restores the input corpus under every combination and scores each
// against the reference. Previous results are discarded.
func (s *Search) Run(r *restore.Restorer) error {
	s.Results = s.Results[:0]
	for _, l := range s.MaxWordLens {
		for _, lambda := range s.Lambdas {
			out, err := r.RestoreAll(s.Input, restore.Params{MaxWordLen: l, Lambda: lambda})
			if err != nil {
				return fmt.Errorf("grid search %s failed at L=%d lambda=%g: %w", s.Name, l, lambda, err)
			}
			var total float64
			for i := range out {
				total += Similarity(out[i], s.Ref[i])
			}
			score := total / float64(len(out))
			s.Results = append(s.Results, Result{MaxWordLen: l, Lambda: lambda, Score: score})
			log.Debugf("Grid search %s: L=%d lambda=%g score=%.4f", s.Name, l, lambda, score)
		}
	}
	return nil
}

// Best returns the highest-scoring combination. Ties keep the first run,
// i.e. the earliest grid position. ok is false before Run.
func (s *Search) Best() (Result, bool) {
	if len(s.Results) == 0 {
		return Result{}, false
	}
	best := s.Results[0]
	for _, res := range s.Results[1:] {
		if res.Score > best.Score {
			best = res
		}
	}
	return best, true
}

// Similarity scores a restored document against its reference as
// 1 - levenshtein/maxLen over runes, so 1.0 means an exact match.
func Similarity(got, want string) float64 {
	if got == want {
		return 1.0
	}
	longest := utf8.RuneCountInString(got)
	if n := utf8.RuneCountInString(want); n > longest {
		longest = n
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(got, want, false)
	lev := dmp.DiffLevenshtein(diffs)
	return 1.0 - float64(lev)/float64(longest)
}

func searchPath(modelDir, name string) string {
	return filepath.Join(modelDir, searchDirName, name+".toml")
}

// Save persists the sweep as TOML under the model dir. A saved sweep is
// never silently replaced.
func (s *Search) Save(modelDir string) error {
	path := searchPath(modelDir, s.Name)
	if utils.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrSearchExists, path)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create grid search dir: %w", err)
	}
	return utils.SaveTOMLFile(s, path)
}

// Load reads a previously saved sweep by name.
func Load(modelDir, name string) (*Search, error) {
	path := searchPath(modelDir, name)
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrSearchNotFound, path)
	}
	var s Search
	if err := utils.LoadTOMLFile(path, &s); err != nil {
		return nil, fmt.Errorf("failed to load grid search %s: %w", path, err)
	}
	return &s, nil
}
