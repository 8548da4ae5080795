package ngram

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spaceserve/internal/utils"
)

// FreqsFilename is the single artifact a saved model consists of: both
// count tables msgpack-encoded together.
const FreqsFilename = "freqs.bin"

var (
	// ErrModelExists signals that the save dir already holds a model.
	ErrModelExists = errors.New("a saved model already exists at this path")
	// ErrModelNotFound signals that the load dir holds no saved model.
	ErrModelNotFound = errors.New("no saved model found at this path")
	// ErrCorruptModel signals that the saved tables could not be decoded.
	ErrCorruptModel = errors.New("saved model data is corrupt")
)

// freqsSnapshot is the on-disk shape of a model. Only raw counts are
// stored; distributions are rederived on load.
type freqsSnapshot struct {
	Unigrams map[string]int `msgpack:"u"`
	Bigrams  map[string]int `msgpack:"b"`
}

func freqsPath(dir string) string {
	return filepath.Join(dir, FreqsFilename)
}

// checkSaveDir rejects a dir that already contains a saved model.
func checkSaveDir(dir string) error {
	if utils.FileExists(freqsPath(dir)) {
		return fmt.Errorf("%w: %s", ErrModelExists, dir)
	}
	return nil
}

// save writes the count tables to dir as a single msgpack blob.
func (m *Model) save(dir string) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create model dir %s: %w", dir, err)
	}
	data, err := msgpack.Marshal(freqsSnapshot{
		Unigrams: m.unigrams,
		Bigrams:  m.bigrams,
	})
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := os.WriteFile(freqsPath(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", freqsPath(dir), err)
	}
	log.Debugf("Saved model to %s (%d bytes)", freqsPath(dir), len(data))
	return nil
}

// Load reads a previously saved model from dir and rederives the
// probability distributions. No partial model is ever returned: a missing
// artifact is ErrModelNotFound and an undecodable one is ErrCorruptModel.
func Load(dir string) (*Model, error) {
	path := freqsPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var snap freqsSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptModel, path, err)
	}
	if snap.Unigrams == nil {
		return nil, fmt.Errorf("%w: %s: missing unigram table", ErrCorruptModel, path)
	}
	if snap.Bigrams == nil {
		snap.Bigrams = make(map[string]int)
	}

	m := &Model{
		unigrams: snap.Unigrams,
		bigrams:  snap.Bigrams,
	}
	for _, c := range m.unigrams {
		m.n += c
	}
	for _, c := range m.bigrams {
		m.n2 += c
	}
	m.derive()
	log.Debugf("Loaded model from %s: %d unigrams, %d bigrams", dir, len(m.unigrams), len(m.bigrams))
	return m, nil
}
