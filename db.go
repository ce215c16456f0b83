// db.go
//
// Database bootstrap shared by the serve and scores commands.
// Opens the SQLite file named by --db and applies the embedded migrations
// so every command sees the current schema.

package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/sqlitedb"
)

// openDatabase opens path and migrates it. The caller closes the handle.
func openDatabase(path string) (*sql.DB, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := sqlitedb.Migrate(db, assets.Migrations()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("database ready")
	return db, nil
}
