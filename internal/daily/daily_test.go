package daily

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/sqlitedb"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	late := time.Date(2026, 3, 9, 22, 30, 0, 0, loc)
	if got := DateKey(late); got != "2026-03-10" {
		t.Fatalf("DateKey = %s", got)
	}
	if _, err := ParseDateKey("2026-13-01"); err == nil {
		t.Error("invalid date accepted")
	}
}

func TestIndexAndSeedAreStable(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	sameDay := day.Add(10 * time.Hour)

	if Index(day, "salt", 18) != Index(sameDay, "salt", 18) {
		t.Error("index changed within a day")
	}
	if Seed(day, "salt", "en") != Seed(sameDay, "salt", "en") {
		t.Error("seed changed within a day")
	}
	if Seed(day, "salt", "en") == Seed(day, "salt", "pt") {
		t.Error("languages share a seed")
	}
	if Seed(day, "salt", "en") <= 0 {
		t.Error("seed must be positive")
	}
	if Index(day, "salt", 0) != 0 {
		t.Error("empty catalog should map to 0")
	}

	seen := map[int]bool{}
	for d := 0; d < 60; d++ {
		i := Index(day.AddDate(0, 0, d), "salt", 18)
		if i < 0 || i >= 18 {
			t.Fatalf("index %d out of range", i)
		}
		seen[i] = true
	}
	if len(seen) < 5 {
		t.Errorf("index poorly distributed: %d distinct values in 60 days", len(seen))
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlitedb.Migrate(db, assets.Migrations()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewStore(db)
}

func TestInsertOncePerDay(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	r := Result{Nickname: "ana", Date: "2026-10-15", Lang: "en", Found: 5, Total: 6, ElapsedMs: 90000}
	ok, err := s.InsertResult(ctx, r)
	if err != nil || !ok {
		t.Fatalf("first insert = %v, %v", ok, err)
	}

	r.Found = 6
	r.Nickname = "ANA"
	ok, err = s.InsertResult(ctx, r)
	if err != nil || ok {
		t.Fatalf("second insert = %v, %v; want ignored", ok, err)
	}

	played, err := s.AlreadyPlayed(ctx, "ana", "2026-10-15", "en")
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed = %v, %v", played, err)
	}
	played, _ = s.AlreadyPlayed(ctx, "ana", "2026-10-15", "pt")
	if played {
		t.Error("pt should be separate")
	}

	rows, _ := s.Leaderboard(ctx, "2026-10-15", "en", 0)
	if len(rows) != 1 || rows[0].Found != 5 {
		t.Errorf("first result should be kept: %+v", rows)
	}
}

func TestInsertValidates(t *testing.T) {
	s := openStore(t)
	bad := []Result{
		{Nickname: " ", Date: "2026-10-15", Lang: "en", Found: 1, Total: 2},
		{Nickname: "a", Date: "2026-10-15", Lang: "en", Found: 3, Total: 2},
		{Nickname: "a", Date: "2026-10-15", Lang: "en", Found: -1, Total: 2},
		{Nickname: "a", Date: "2026-10-15", Lang: "en", Found: 1, Total: 2, ElapsedMs: -1},
	}
	for _, r := range bad {
		if _, err := s.InsertResult(context.Background(), r); !errors.Is(err, ErrInvalidResult) {
			t.Errorf("InsertResult(%+v) err = %v", r, err)
		}
	}
}

func TestLeaderboardOrder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	results := []Result{
		{Nickname: "slow", Found: 6, Total: 6, ElapsedMs: 200000},
		{Nickname: "fast", Found: 6, Total: 6, ElapsedMs: 60000},
		{Nickname: "partial", Found: 4, Total: 6, ElapsedMs: 1000},
		{Nickname: "otherlang", Found: 6, Total: 6, ElapsedMs: 1, Lang: "pt"},
		{Nickname: "otherday", Found: 6, Total: 6, ElapsedMs: 1, Date: "2026-10-14"},
	}
	for _, r := range results {
		if r.Lang == "" {
			r.Lang = "en"
		}
		if r.Date == "" {
			r.Date = "2026-10-15"
		}
		if _, err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult: %v", err)
		}
	}

	rows, err := s.Leaderboard(ctx, "2026-10-15", "en", 20)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	want := []string{"fast", "slow", "partial"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v", rows)
	}
	for i, r := range rows {
		if r.Nickname != want[i] || r.Rank != i+1 {
			t.Errorf("row %d = %s/%d, want %s/%d", i, r.Nickname, r.Rank, want[i], i+1)
		}
	}
}
