package leaderboard

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/sqlitedb"
)

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

func TestNormalize(t *testing.T) {
	long := strings.Repeat("é", 60)
	got, err := Normalize(Submission{Nickname: "  " + long + " ", Score: 5, Level: 0})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.Nickname != strings.Repeat("é", MaxNickname) {
		t.Errorf("nickname not rune-truncated: %d runes", len([]rune(got.Nickname)))
	}
	if got.Level != 1 || got.Country != WorldTag {
		t.Errorf("defaults not applied: %+v", got)
	}

	got, _ = Normalize(Submission{Nickname: "x", Country: "🇧🇷"})
	if got.Country != "🇧🇷" {
		t.Errorf("country = %q", got.Country)
	}

	if _, err := Normalize(Submission{Nickname: "   ", Score: 1}); !errors.Is(err, ErrNicknameRequired) {
		t.Errorf("blank nickname err = %v", err)
	}
	if _, err := Normalize(Submission{Nickname: "a", Score: -1}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative score err = %v", err)
	}
}

func TestSubmitAndTop(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	subs := []Submission{
		{Nickname: "ana", Score: 120, Level: 3, Country: "🇧🇷"},
		{Nickname: "bob", Score: 300, Level: 6},
		{Nickname: "cid", Score: 120, Level: 2},
		{Nickname: "dee", Score: 0, Level: 1},
	}
	for _, sub := range subs {
		if _, err := s.Submit(ctx, sub); err != nil {
			t.Fatalf("Submit(%+v): %v", sub, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	want := []string{"bob", "ana", "cid"}
	for i, e := range top {
		if e.Nickname != want[i] || e.Rank != i+1 {
			t.Errorf("row %d = %s rank %d, want %s rank %d", i, e.Nickname, e.Rank, want[i], i+1)
		}
	}
	if top[0].Country != WorldTag || top[1].Country != "🇧🇷" {
		t.Errorf("countries = %q %q", top[0].Country, top[1].Country)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestSubmitRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	if _, err := s.Submit(ctx, Submission{Score: 10}); !errors.Is(err, ErrNicknameRequired) {
		t.Errorf("err = %v", err)
	}
	if _, err := s.Submit(ctx, Submission{Nickname: "a", Score: -5}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("err = %v", err)
	}
	top, _ := s.Top(ctx, 0)
	if len(top) != 0 {
		t.Errorf("invalid rows stored: %v", top)
	}
}

func TestClampLimit(t *testing.T) {
	cases := map[int]int{-1: DefaultLimit, 0: DefaultLimit, 10: 10, 100: 100, 500: MaxLimit}
	for in, want := range cases {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestMarkPlayer(t *testing.T) {
	rows := []Entry{{Nickname: "Ana"}, {Nickname: "bob"}, {Nickname: "Ana"}, {Nickname: "ana"}}
	MarkPlayer(rows, " Ana ")
	if !rows[0].IsPlayer || rows[1].IsPlayer || !rows[2].IsPlayer || rows[3].IsPlayer {
		t.Fatalf("marks = %+v", rows)
	}
	MarkPlayer(rows, "")
	if !rows[0].IsPlayer {
		t.Error("empty name should leave marks untouched")
	}
}
