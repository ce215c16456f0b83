package sqlitedb

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robalobadob/wordsearch/assets"
)

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestMigrateEmbeddedIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(db, assets.Migrations()); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"leaderboard", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var applied int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
}

func TestMigrateOrderAndSelfManaged(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"002_insert.sql": {Data: []byte(`INSERT INTO things(v) VALUES ('second');`)},
		"001_create.sql": {Data: []byte(`CREATE TABLE things (v TEXT);`)},
		"003_tx.sql": {Data: []byte(`BEGIN TRANSACTION;
INSERT INTO things(v) VALUES ('third');
COMMIT;`)},
		"README.md": {Data: []byte("not a migration")},
	}
	if err := Migrate(db, fsys); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM things`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}
}

func TestMigrateFailureRollsBack(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{"001_bad.sql": {Data: []byte(`CREATE TABLE ok (v TEXT); NOT SQL AT ALL;`)}}
	if err := Migrate(db, fsys); err == nil {
		t.Fatal("expected error")
	}

	var n int
	_ = db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n)
	if n != 0 {
		t.Errorf("failed migration recorded")
	}
}
