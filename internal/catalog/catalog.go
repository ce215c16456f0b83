// internal/catalog/catalog.go
//
// Word-list catalog for level generation.
// Defines:
//   - Lang: supported catalog languages and their per-language defaults.
//   - Entry: one (theme, words) record.
//   - Source: anything that can resolve a level index to an Entry.
//
// Notes:
//   - Catalogs are finite but levels are not, so sources wrap the index.
//   - Fallback lists are guaranteed to fit an 8x8 board.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLang is returned for a language with no catalog.
	ErrUnknownLang = errors.New("unknown language")
	// ErrEmptyCatalog is returned when a catalog holds no usable entries.
	ErrEmptyCatalog = errors.New("empty catalog")
)

// Lang is a catalog language code.
type Lang string

const (
	English    Lang = "en"
	Portuguese Lang = "pt"
)

// Langs lists every supported language in a stable order.
func Langs() []Lang { return []Lang{English, Portuguese} }

// ParseLang accepts "en"/"pt" in any case. Empty input means English.
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case "", English:
		return English, nil
	case Portuguese:
		return Portuguese, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
}

// CountryTag is the flag attached to leaderboard submissions.
func (l Lang) CountryTag() string {
	if l == Portuguese {
		return "🇧🇷"
	}
	return "🌍"
}

// FallbackEntry is the board used when the catalog cannot supply one.
func (l Lang) FallbackEntry() Entry {
	if l == Portuguese {
		return Entry{Theme: "Erro no Sistema", Words: []string{"ERRO", "JOGO", "REINICIE"}}
	}
	return Entry{Theme: "System Error", Words: []string{"ERROR", "GAME", "RESTART"}}
}

// Entry is a themed word list.
type Entry struct {
	Theme string   `yaml:"theme" json:"theme"`
	Words []string `yaml:"words" json:"words"`
}

// Source resolves a zero-based catalog index to an entry.
type Source interface {
	Entry(ctx context.Context, lang Lang, index int) (Entry, error)
}

// wrap maps any index, negative included, into [0, n).
func wrap(index, n int) int {
	return ((index % n) + n) % n
}
