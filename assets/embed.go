// assets/embed.go
//
// Files compiled into the binary.
//   - catalog/levels_<lang>.yaml: default word-search catalogs.
//   - sql/*.sql: SQLite migrations, applied in lexical order.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.yaml sql/*.sql
var FS embed.FS

// Catalog returns the raw embedded catalog for lang ("en", "pt").
func Catalog(lang string) ([]byte, error) {
	return FS.ReadFile("catalog/levels_" + lang + ".yaml")
}

// Migrations exposes the sql directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
