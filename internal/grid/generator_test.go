package grid

import (
	"reflect"
	"slices"
	"strings"
	"testing"
)

// scripted replays fixed choices, cycling when a script runs out.
type scripted struct {
	dirs   []Direction
	cells  []Cell
	letter rune

	dirCalls  int
	cellCalls int
}

func (s *scripted) Direction(_ []Direction) Direction {
	d := s.dirs[s.dirCalls%len(s.dirs)]
	s.dirCalls++
	return d
}

func (s *scripted) Cell(_ int) Cell {
	c := s.cells[s.cellCalls%len(s.cells)]
	s.cellCalls++
	return c
}

func (s *scripted) Letter(_ []rune) rune { return s.letter }

func TestGenerateHandComputedGrid(t *testing.T) {
	src := &scripted{
		dirs:   []Direction{Horizontal, Vertical},
		cells:  []Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}},
		letter: 'X',
	}

	res := Generate([]string{"CAT", "DOG"}, 4, src)

	want := []string{
		"CATX",
		"DXXX",
		"OXXX",
		"GXXX",
	}
	if got := res.Rows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(res.Words, []string{"CAT", "DOG"}) {
		t.Errorf("words = %v", res.Words)
	}
	wantPl := []Placement{
		{Word: "CAT", Row: 0, Col: 0, Direction: Horizontal},
		{Word: "DOG", Row: 1, Col: 0, Direction: Vertical},
	}
	if !reflect.DeepEqual(res.Placements, wantPl) {
		t.Errorf("placements = %+v, want %+v", res.Placements, wantPl)
	}
}

func TestGenerateOverlapOnMatchingLetter(t *testing.T) {
	src := &scripted{
		dirs:   []Direction{Horizontal, Vertical},
		cells:  []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 2}},
		letter: 'X',
	}

	res := Generate([]string{"cat", "top"}, 3, src)

	want := []string{"CAT", "XXO", "XXP"}
	if got := res.Rows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %q, want %q", got, want)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(res.Placements))
	}
}

func TestGenerateRetriesAfterCollisionAndBounds(t *testing.T) {
	src := &scripted{
		dirs: []Direction{Horizontal},
		cells: []Cell{
			{Row: 0, Col: 0}, // CAT
			{Row: 0, Col: 0}, // DOG collides with CAT
			{Row: 1, Col: 1}, // DOG runs off the right edge
			{Row: 1, Col: 0}, // DOG fits
		},
		letter: 'Z',
	}

	res := Generate([]string{"CAT", "DOG"}, 3, src)

	want := []string{"CAT", "DOG", "ZZZ"}
	if got := res.Rows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %q, want %q", got, want)
	}
	if src.dirCalls != 4 {
		t.Errorf("expected 4 attempts, got %d", src.dirCalls)
	}
}

func TestGenerateSkipsWordAfterBudget(t *testing.T) {
	src := &scripted{
		dirs:   []Direction{Horizontal},
		cells:  []Cell{{Row: 0, Col: 0}},
		letter: 'Q',
	}
	gen := New(Options{Attempts: 5})

	res := gen.Generate([]string{"AB", "CD"}, 2, src)

	if !reflect.DeepEqual(res.Words, []string{"AB"}) {
		t.Fatalf("words = %v, want [AB]", res.Words)
	}
	if len(res.Placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(res.Placements))
	}
	// One attempt for AB, then the full budget for CD.
	if src.dirCalls != 6 {
		t.Errorf("expected 6 direction draws, got %d", src.dirCalls)
	}
	if got := res.Rows(); !reflect.DeepEqual(got, []string{"AB", "QQ"}) {
		t.Errorf("rows = %q", got)
	}
}

func TestGenerateOversizeWord(t *testing.T) {
	src := &scripted{dirs: []Direction{Horizontal}, cells: []Cell{{}}, letter: 'K'}

	res := Generate([]string{"SUPERCALIFRAGILISTIC"}, 5, src)

	if len(res.Words) != 0 || len(res.Placements) != 0 {
		t.Fatalf("expected nothing placed, got %v / %v", res.Words, res.Placements)
	}
	if src.dirCalls != 0 {
		t.Errorf("oversize word consumed %d attempts", src.dirCalls)
	}
	for _, row := range res.Rows() {
		if row != "KKKKK" {
			t.Fatalf("expected pure filler, got %q", row)
		}
	}
}

func TestGenerateEmptyWordList(t *testing.T) {
	res := Generate(nil, 6, NewSeededSource(7))

	if len(res.Words) != 0 || len(res.Placements) != 0 {
		t.Fatalf("expected empty result, got %v", res.Words)
	}
	checkInvariants(t, res, nil)
}

func TestGenerateNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		res := Generate([]string{"A"}, size, NewSeededSource(1))
		if len(res.Grid) != 0 || len(res.Words) != 0 {
			t.Errorf("size %d: expected empty result, got %+v", size, res)
		}
	}
}

func TestGenerateWordEqualToSize(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		res := Generate([]string{"ABCDE"}, 5, NewSeededSource(seed))
		checkInvariants(t, res, []string{"ABCDE"})
		if len(res.Placements) == 1 {
			p := res.Placements[0]
			if !p.Start().In(5) || !p.End().In(5) {
				t.Fatalf("seed %d: placement out of bounds: %+v", seed, p)
			}
		}
	}
}

func TestGenerateNormalizesAndDeduplicates(t *testing.T) {
	res := Generate([]string{"ca-t", "Cat!", "  maçã ", "123"}, 8, NewSeededSource(3))

	for _, w := range res.Words {
		if w != "CAT" && w != "MAÇÃ" {
			t.Errorf("unexpected word %q", w)
		}
	}
	count := 0
	for _, p := range res.Placements {
		if p.Word == "CAT" {
			count++
		}
	}
	if count > 1 {
		t.Errorf("CAT placed %d times", count)
	}
	checkInvariants(t, res, []string{"CAT", "MAÇÃ"})
}

func TestGenerateLongestFirst(t *testing.T) {
	res := Generate([]string{"AB", "ABCDEF", "ABCD"}, 12, NewSeededSource(11))

	for i := 1; i < len(res.Placements); i++ {
		if res.Placements[i-1].Len() < res.Placements[i].Len() {
			t.Fatalf("placements not longest-first: %+v", res.Placements)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	words := []string{"ELEPHANT", "GIRAFFE", "ZEBRA", "LION", "TIGER", "HIPPO", "RHINO"}

	a := Generate(words, 10, NewSeededSource(42))
	b := Generate(words, 10, NewSeededSource(42))

	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different results")
	}
}

func TestGenerateInvariantsAcrossSeeds(t *testing.T) {
	words := []string{
		"ASTRONAUT", "ROCKET", "PLANET", "COMET", "GALAXY", "ORBIT",
		"NEBULA", "STAR", "MOON", "SUN", "METEOR", "SATURN", "VENUS",
	}
	gen := New(DefaultOptions())
	for seed := int64(1); seed <= 200; seed++ {
		for _, size := range []int{1, 3, 8, 12} {
			res := gen.Generate(words, size, NewSeededSource(seed))
			checkInvariants(t, res, words)
		}
	}
}

func TestMatchPath(t *testing.T) {
	src := &scripted{
		dirs:   []Direction{DiagonalUp},
		cells:  []Cell{{Row: 2, Col: 0}},
		letter: 'X',
	}
	res := Generate([]string{"SKY"}, 3, src)

	path := []Cell{{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}}
	p, ok := res.MatchPath(path)
	if !ok || p.Word != "SKY" {
		t.Fatalf("MatchPath = %+v, %v", p, ok)
	}
	if got := res.Read(path); got != "SKY" {
		t.Errorf("Read = %q", got)
	}
	if _, ok := res.MatchPath(path[:2]); ok {
		t.Error("partial path should not match")
	}
	if _, ok := res.MatchPath(nil); ok {
		t.Error("empty path should not match")
	}
}

// checkInvariants verifies the structural guarantees of a Result.
func checkInvariants(t *testing.T, res Result, requested []string) {
	t.Helper()

	if len(res.Grid) != res.Size {
		t.Fatalf("grid has %d rows, want %d", len(res.Grid), res.Size)
	}
	for _, row := range res.Grid {
		if len(row) != res.Size {
			t.Fatalf("row has %d cells, want %d", len(row), res.Size)
		}
		for _, r := range row {
			if r == 0 || !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("cell holds %q", r)
			}
		}
	}

	allowed := map[string]bool{}
	for _, w := range requested {
		if n := Normalize(w); len([]rune(n)) <= res.Size {
			allowed[n] = true
		}
	}

	fromPlacements := make([]string, 0, len(res.Placements))
	for _, p := range res.Placements {
		for _, c := range p.Cells() {
			if !c.In(res.Size) {
				t.Fatalf("%s leaves the grid at %+v", p.Word, c)
			}
		}
		if got := res.Read(p.Cells()); got != p.Word {
			t.Fatalf("grid reads %q along %s, want %q", got, p.Direction, p.Word)
		}
		if !allowed[p.Word] {
			t.Fatalf("placed word %q was not requested or is too long", p.Word)
		}
		fromPlacements = append(fromPlacements, p.Word)
	}

	slices.Sort(fromPlacements)
	if !slices.Equal(fromPlacements, res.Words) {
		t.Fatalf("words %v do not match placements %v", res.Words, fromPlacements)
	}
	if len(slices.Compact(slices.Clone(fromPlacements))) != len(fromPlacements) {
		t.Fatalf("duplicate placements: %v", fromPlacements)
	}
}
