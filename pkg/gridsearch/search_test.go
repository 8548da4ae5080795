package gridsearch

import (
	"errors"
	"math"
	"testing"

	"github.com/bastiangx/spaceserve/pkg/ngram"
	"github.com/bastiangx/spaceserve/pkg/restore"
)

func TestSimilarity(t *testing.T) {
	testCases := []struct {
		name string
		got  string
		want string
		sim  float64
	}{
		{"identical", "the cat sat", "the cat sat", 1.0},
		{"both empty", "", "", 1.0},
		{"one edit in three", "abc", "abd", 1.0 - 1.0/3.0},
		{"completely different", "aaa", "bbb", 0.0},
		{"missing space", "thecat", "the cat", 1.0 - 1.0/7.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Similarity(tc.got, tc.want); math.Abs(got-tc.sim) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %g, expected %g", tc.got, tc.want, got, tc.sim)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		name    string
		sname   string
		lens    []int
		lambdas []float64
		ref     []string
		input   []string
	}{
		{"empty name", "", []int{10}, []float64{10}, []string{"a b"}, []string{"ab"}},
		{"empty length grid", "s", nil, []float64{10}, []string{"a b"}, []string{"ab"}},
		{"empty lambda grid", "s", []int{10}, nil, []string{"a b"}, []string{"ab"}},
		{"no documents", "s", []int{10}, []float64{10}, nil, nil},
		{"mismatched corpora", "s", []int{10}, []float64{10}, []string{"a b", "c d"}, []string{"ab"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.sname, tc.lens, tc.lambdas, tc.ref, tc.input); !errors.Is(err, ErrBadGrid) {
				t.Errorf("Expected ErrBadGrid, got %v", err)
			}
		})
	}
}

func newTestRestorer(t *testing.T) *restore.Restorer {
	t.Helper()
	model, err := ngram.Train([]string{"the cat sat on the mat"}, true, "")
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	r, err := restore.New(model, 0, 0)
	if err != nil {
		t.Fatalf("New restorer failed: %v", err)
	}
	return r
}

func TestRunAndBest(t *testing.T) {
	s, err := New("smoke",
		[]int{1, 10},
		[]float64{10.0},
		[]string{"the cat sat on the mat"},
		[]string{"thecatsatonthemat"},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := s.Best(); ok {
		t.Error("Best must report no result before Run")
	}

	if err := s.Run(newTestRestorer(t)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(s.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(s.Results))
	}

	best, ok := s.Best()
	if !ok {
		t.Fatal("Expected a best result after Run")
	}
	// L=1 can only produce single-rune words; L=10 recovers training exactly
	if best.MaxWordLen != 10 {
		t.Errorf("Expected L=10 to win, got L=%d", best.MaxWordLen)
	}
	if best.Score != 1.0 {
		t.Errorf("Expected perfect score for the trained sentence, got %g", best.Score)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := New("tuning",
		[]int{10},
		[]float64{10.0},
		[]string{"the cat sat on the mat"},
		[]string{"thecatsatonthemat"},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Run(newTestRestorer(t)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if err := s.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// a saved sweep is never silently replaced
	if err := s.Save(dir); !errors.Is(err, ErrSearchExists) {
		t.Errorf("Expected ErrSearchExists, got %v", err)
	}

	loaded, err := Load(dir, "tuning")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != s.Name || len(loaded.Results) != len(s.Results) {
		t.Errorf("Loaded sweep differs: %+v vs %+v", loaded, s)
	}
	if loaded.Results[0] != s.Results[0] {
		t.Errorf("Loaded result differs: %+v vs %+v", loaded.Results[0], s.Results[0])
	}

	if _, err := Load(dir, "missing"); !errors.Is(err, ErrSearchNotFound) {
		t.Errorf("Expected ErrSearchNotFound, got %v", err)
	}
}
