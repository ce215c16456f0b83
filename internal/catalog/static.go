package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordsearch/assets"
)

// file is the on-disk YAML shape of one language catalog.
type file struct {
	Lang   Lang    `yaml:"lang"`
	Levels []Entry `yaml:"levels"`
}

// Static is an immutable in-memory catalog. Safe for concurrent use.
type Static struct {
	levels map[Lang][]Entry
}

// NewStatic builds a catalog from already-parsed entries.
func NewStatic(levels map[Lang][]Entry) *Static {
	s := &Static{levels: make(map[Lang][]Entry, len(levels))}
	for lang, entries := range levels {
		s.levels[lang] = clean(entries)
	}
	return s
}

// Load reads every supported language.
// Search order per language: dir/levels_<lang>.yaml -> embedded default.
// An override file that exists but does not parse is an error.
func Load(dir string) (*Static, error) {
	levels := make(map[Lang][]Entry, len(Langs()))
	for _, lang := range Langs() {
		data, origin, err := read(dir, lang)
		if err != nil {
			return nil, err
		}
		entries, err := Parse(data, lang)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", origin, err)
		}
		levels[lang] = entries
	}
	return NewStatic(levels), nil
}

func read(dir string, lang Lang) ([]byte, string, error) {
	name := FileName(lang)
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}
	data, err := assets.Catalog(string(lang))
	if err != nil {
		return nil, "embedded " + name, fmt.Errorf("read embedded catalog %s: %w", name, err)
	}
	return data, "embedded " + name, nil
}

// FileName is the catalog file name for lang.
func FileName(lang Lang) string { return "levels_" + string(lang) + ".yaml" }

// Parse decodes a catalog file. A lang field that disagrees with want is rejected.
func Parse(data []byte, want Lang) ([]Entry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if f.Lang != "" && f.Lang != want {
		return nil, fmt.Errorf("%w: file declares %q, expected %q", ErrUnknownLang, f.Lang, want)
	}
	entries := clean(f.Levels)
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return entries, nil
}

// clean drops entries without words and trims themes.
func clean(in []Entry) []Entry {
	out := make([]Entry, 0, len(in))
	for _, e := range in {
		words := make([]string, 0, len(e.Words))
		for _, w := range e.Words {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			continue
		}
		out = append(out, Entry{Theme: strings.TrimSpace(e.Theme), Words: words})
	}
	return out
}

// Entry returns the entry at index, wrapping around the catalog length.
func (s *Static) Entry(ctx context.Context, lang Lang, index int) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	entries, ok := s.levels[lang]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownLang, lang)
	}
	if len(entries) == 0 {
		return Entry{}, ErrEmptyCatalog
	}
	e := entries[wrap(index, len(entries))]
	return Entry{Theme: e.Theme, Words: append([]string(nil), e.Words...)}, nil
}

// Entries returns a copy of every entry for lang.
func (s *Static) Entries(lang Lang) []Entry {
	return append([]Entry(nil), s.levels[lang]...)
}

// Len is the number of entries for lang.
func (s *Static) Len(lang Lang) int { return len(s.levels[lang]) }
