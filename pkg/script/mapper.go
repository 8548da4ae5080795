/*
Package script normalizes scripts whose user-perceived characters span
multiple codepoints.

The segmentation search penalizes unseen words by codepoint length, so it
must see exactly one unit per perceived character. A Mapper rewrites each
perceived character to a single reserved codepoint before training or
restoration and reverses the rewrite afterwards; the two directions are
exact inverses for any input text.
*/
package script

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// MapOffset is the first codepoint of the reserved mapping range. Far
// above any Indic block, so mapped text can never collide with unmapped
// source characters.
const MapOffset = 40000

var (
	// ErrBadInventory is returned for an empty or duplicated inventory.
	ErrBadInventory = errors.New("script inventory must be non-empty and unique")
	// ErrUnknownChar is returned by the character-list operations for an
	// element outside the mapping.
	ErrUnknownChar = errors.New("character is not part of the script mapping")
)

// Mapper is a bijective mapping between perceived characters and single
// reserved codepoints. Read-only after construction.
type Mapper struct {
	trie      *patricia.Trie // perceived char bytes -> mapped rune
	inverse   map[rune]string
	canonical [][2]string
}

// NewMapper builds a Mapper for the given perceived-character inventory.
// Each inventory entry gets the codepoint MapOffset plus its index, so
// the assignment is deterministic for a fixed inventory order.
//
// canonical lists rewrite pairs applied before mapping to unify alternate
// codepoint sequences for the same perceived character; it may be nil.
func NewMapper(inventory []string, canonical [][2]string) (*Mapper, error) {
	if len(inventory) == 0 {
		return nil, ErrBadInventory
	}
	m := &Mapper{
		trie:      patricia.NewTrie(),
		inverse:   make(map[rune]string, len(inventory)),
		canonical: canonical,
	}
	for i, ch := range inventory {
		if ch == "" {
			return nil, fmt.Errorf("%w: empty entry at index %d", ErrBadInventory, i)
		}
		mapped := rune(MapOffset + i)
		if !m.trie.Insert(patricia.Prefix(ch), mapped) {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrBadInventory, ch)
		}
		m.inverse[mapped] = ch
	}
	return m, nil
}

// MapText rewrites every perceived character in text to its reserved
// codepoint. The scan is longest-match: at each position the longest
// inventory entry wins, so overlapping multi-codepoint sequences resolve
// the same way a reader perceives them. Characters outside the inventory
// pass through unchanged.
func (m *Mapper) MapText(text string) string {
	for _, c := range m.canonical {
		text = strings.ReplaceAll(text, c[0], c[1])
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		rest := text[i:]
		matched := 0
		var mapped rune
		m.trie.VisitPrefixes(patricia.Prefix(rest), func(p patricia.Prefix, item patricia.Item) error {
			if len(p) > matched {
				matched = len(p)
				mapped = item.(rune)
			}
			return nil
		})
		if matched > 0 {
			b.WriteRune(mapped)
			i += matched
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		b.WriteString(rest[:size])
		i += size
	}
	return b.String()
}

// UnmapText is the exact inverse of MapText: every reserved codepoint is
// rewritten back to its perceived character; anything else passes through.
func (m *Mapper) UnmapText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if orig, ok := m.inverse[r]; ok {
			b.WriteString(orig)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MapChars maps a list of perceived characters one element at a time.
// Unlike MapText, every element must be exactly one inventory entry.
func (m *Mapper) MapChars(chars []string) ([]string, error) {
	mapped := make([]string, len(chars))
	for i, ch := range chars {
		item := m.trie.Get(patricia.Prefix(ch))
		if item == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownChar, ch)
		}
		mapped[i] = string(item.(rune))
	}
	return mapped, nil
}

// UnmapChars maps a list of reserved codepoints back to perceived
// characters. Every element must be a single mapped codepoint.
func (m *Mapper) UnmapChars(chars []string) ([]string, error) {
	unmapped := make([]string, len(chars))
	for i, ch := range chars {
		r, size := utf8.DecodeRuneInString(ch)
		orig, ok := m.inverse[r]
		if !ok || size != len(ch) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownChar, ch)
		}
		unmapped[i] = orig
	}
	return unmapped, nil
}

// Size returns the number of perceived characters in the mapping.
func (m *Mapper) Size() int {
	return len(m.inverse)
}
