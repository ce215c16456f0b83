package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
	"github.com/rs/zerolog/log"
)

// Pull downloads a catalog pack from src (any go-getter URL: local path,
// http, git::, s3::, archives) and installs every valid levels_<lang>.yaml
// it contains into dir. Nothing is installed unless every file parses.
// It returns the installed paths.
func Pull(ctx context.Context, src, dir string) ([]string, error) {
	staging, err := os.MkdirTemp("", "wordsearch-catalog-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	pack := filepath.Join(staging, "pack")
	log.Info().Str("src", src).Msg("downloading catalog pack")
	if err := getter.GetAny(pack, src, getter.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	found := make(map[string][]byte)
	for _, lang := range Langs() {
		name := FileName(lang)
		data, err := os.ReadFile(filepath.Join(pack, name))
		if err != nil {
			continue
		}
		if _, err := Parse(data, lang); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
		found[name] = data
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no levels_<lang>.yaml in %s", ErrEmptyCatalog, src)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	installed := make([]string, 0, len(found))
	for _, lang := range Langs() {
		data, ok := found[FileName(lang)]
		if !ok {
			continue
		}
		dst := filepath.Join(dir, FileName(lang))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return installed, fmt.Errorf("write %s: %w", dst, err)
		}
		log.Info().Str("file", dst).Msg("catalog installed")
		installed = append(installed, dst)
	}
	return installed, nil
}
