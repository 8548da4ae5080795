package restore

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/spaceserve/pkg/ngram"
)

func TestRestoreEndToEnd(t *testing.T) {
	r := newTestRestorer(t, []string{"the cat sat on the mat"}, 0)

	got, err := r.Restore("thecatsatonthemat", Params{MaxWordLen: 10, Lambda: 10.0})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got != "the cat sat on the mat" {
		t.Errorf("Expected 'the cat sat on the mat', got %q", got)
	}
}

func TestRestoreEmpty(t *testing.T) {
	r := newTestRestorer(t, []string{"hello world"}, 0)
	got, err := r.Restore("", Params{MaxWordLen: 5, Lambda: 1.0})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty output for empty input, got %q", got)
	}
}

// a document equal to a single trained word comes back unchanged
func TestRestoreSingleWord(t *testing.T) {
	r := newTestRestorer(t, []string{"hello world"}, 0)
	got, err := r.Restore("hello", Params{MaxWordLen: 10, Lambda: 10.0})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}
}

func TestRestoreDeterminism(t *testing.T) {
	docs := []string{"the cat sat on the mat", "the dog ran in the park"}
	p := Params{MaxWordLen: 10, Lambda: 10.0}
	input := "thedogranintheparkthecatsatonthemat"

	r := newTestRestorer(t, docs, 0)
	first, err := r.Restore(input, p)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	// same instance, warm cache
	second, err := r.Restore(input, p)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if first != second {
		t.Errorf("Warm-cache output differs: %q vs %q", first, second)
	}
	// fresh instance, cold cache
	third, err := newTestRestorer(t, docs, 0).Restore(input, p)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if first != third {
		t.Errorf("Fresh-instance output differs: %q vs %q", first, third)
	}
}

func TestRestoreInvalidParams(t *testing.T) {
	r := newTestRestorer(t, []string{"hello world"}, 0)
	if _, err := r.Restore("helloworld", Params{MaxWordLen: 0, Lambda: 10.0}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams, got %v", err)
	}
	if _, err := r.RestoreAll([]string{"helloworld"}, Params{MaxWordLen: 10, Lambda: 0}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams, got %v", err)
	}
}

// documents longer than the window are split into chunks; boundaries may
// shift at seams but no characters are lost and the word count stays close
func TestRestoreLongDocument(t *testing.T) {
	r := newTestRestorer(t, []string{"the cat sat on the mat"}, 0)
	p := Params{MaxWordLen: 10, Lambda: 10.0}

	const repeats = 12 // 17 runes each, well past the 80-rune window
	input := strings.Repeat("thecatsatonthemat", repeats)

	got, err := r.Restore(input, p)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// restoration only inserts spaces, never alters characters
	if joined := strings.ReplaceAll(got, " ", ""); joined != input {
		t.Errorf("Output characters differ from input:\n got %q\nwant %q", joined, input)
	}

	wantWords := 6 * repeats
	gotWords := len(strings.Fields(got))
	if gotWords < wantWords-2 || gotWords > wantWords+2 {
		t.Errorf("Expected about %d words (seam tolerance 2), got %d", wantWords, gotWords)
	}
}

func TestRestoreAll(t *testing.T) {
	r := newTestRestorer(t, []string{"the cat sat on the mat"}, 0)
	p := Params{MaxWordLen: 10, Lambda: 10.0}

	inputs := []string{"thecat", "satonthemat", ""}
	got, err := r.RestoreAll(inputs, p)
	if err != nil {
		t.Fatalf("RestoreAll failed: %v", err)
	}

	want := make([]string, len(inputs))
	for i, in := range inputs {
		out, err := r.Restore(in, p)
		if err != nil {
			t.Fatalf("Restore failed: %v", err)
		}
		want[i] = out
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Batch and individual results differ: %v vs %v", got, want)
	}
}

func TestNewRejectsEmptyModel(t *testing.T) {
	model, err := ngram.Train(nil, true, "")
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if _, err := New(model, 0, 0); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Expected ErrEmptyModel, got %v", err)
	}
	if _, err := New(nil, 0, 0); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Expected ErrEmptyModel for nil model, got %v", err)
	}
}

func TestStats(t *testing.T) {
	r := newTestRestorer(t, []string{"the cat sat on the mat"}, 0)
	if _, _, err := r.Segment("thecat", Params{MaxWordLen: 10, Lambda: 10.0}); err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	stats := r.Stats()
	if stats["vocabWords"] != 5 {
		t.Errorf("Expected 5 vocab words, got %d", stats["vocabWords"])
	}
	if stats["trainedTokens"] != 6 {
		t.Errorf("Expected 6 trained tokens, got %d", stats["trainedTokens"])
	}
	if stats["cachedChunks"] == 0 {
		t.Error("Expected cached chunk results after a segment call")
	}
}
