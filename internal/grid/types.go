// internal/grid/types.go
//
// Geometry types for the word-search grid.
// Defines:
//   - Direction: one of four forward-reading unit steps.
//   - Cell: a (row, col) coordinate inside a square grid.
//   - Placement: start cell + direction of one placed word.
//   - Result: frozen output of a generation run.

package grid

import "unicode/utf8"

// Direction is a unit step. DX moves along a row (columns), DY moves along a column (rows).
type Direction struct {
	DX int `json:"x"`
	DY int `json:"y"`
}

var (
	Horizontal   = Direction{DX: 1, DY: 0}
	Vertical     = Direction{DX: 0, DY: 1}
	DiagonalDown = Direction{DX: 1, DY: 1}
	DiagonalUp   = Direction{DX: 1, DY: -1}
)

// Directions lists the canonical placement directions. Leftward and upward
// reading lines are never used.
var Directions = [4]Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}

// String returns a short human-readable name.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalDown:
		return "diagonal-down"
	case DiagonalUp:
		return "diagonal-up"
	default:
		return "unknown"
	}
}

// Cell is a grid coordinate. Row 0 is the top row.
type Cell struct {
	Row int `json:"y"`
	Col int `json:"x"`
}

// Step returns the cell n steps away from c along d.
func (c Cell) Step(d Direction, n int) Cell {
	return Cell{Row: c.Row + n*d.DY, Col: c.Col + n*d.DX}
}

// In reports whether c lies inside a size×size grid.
func (c Cell) In(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Placement records where a word was written.
type Placement struct {
	Word      string    `json:"word"`
	Row       int       `json:"startY"`
	Col       int       `json:"startX"`
	Direction Direction `json:"direction"`
}

// Start returns the first cell of the placement.
func (p Placement) Start() Cell { return Cell{Row: p.Row, Col: p.Col} }

// Len is the word length in letters (not bytes).
func (p Placement) Len() int { return utf8.RuneCountInString(p.Word) }

// End returns the cell holding the last letter.
func (p Placement) End() Cell { return p.Start().Step(p.Direction, p.Len()-1) }

// Cells returns every cell covered by the word, first letter first.
func (p Placement) Cells() []Cell {
	n := p.Len()
	out := make([]Cell, n)
	for i := range n {
		out[i] = p.Start().Step(p.Direction, i)
	}
	return out
}

// Contains reports whether the placement covers c.
func (p Placement) Contains(c Cell) bool {
	for _, pc := range p.Cells() {
		if pc == c {
			return true
		}
	}
	return false
}

// Result is the immutable output of Generate.
type Result struct {
	Size       int
	Grid       [][]rune
	Words      []string    // placed words, sorted
	Placements []Placement // in placement order
}

// Rows renders the grid as one string per row.
func (r Result) Rows() []string {
	out := make([]string, len(r.Grid))
	for i, row := range r.Grid {
		out[i] = string(row)
	}
	return out
}

// At returns the letter at c, or 0 when c is outside the grid.
func (r Result) At(c Cell) rune {
	if !c.In(r.Size) {
		return 0
	}
	return r.Grid[c.Row][c.Col]
}

// Read returns the letters along cells.
func (r Result) Read(cells []Cell) string {
	buf := make([]rune, 0, len(cells))
	for _, c := range cells {
		buf = append(buf, r.At(c))
	}
	return string(buf)
}

// Placement returns the recorded geometry for word.
func (r Result) Placement(word string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Word == word {
			return p, true
		}
	}
	return Placement{}, false
}

// MatchPath returns the placement whose geometry is exactly path.
func (r Result) MatchPath(path []Cell) (Placement, bool) {
	if len(path) == 0 {
		return Placement{}, false
	}
	for _, p := range r.Placements {
		if p.Len() != len(path) || p.Start() != path[0] {
			continue
		}
		cells := p.Cells()
		ok := true
		for i := range cells {
			if cells[i] != path[i] {
				ok = false
				break
			}
		}
		if ok {
			return p, true
		}
	}
	return Placement{}, false
}
