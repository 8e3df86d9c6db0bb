package layout

import (
	"fmt"
	"sort"
)

// Position is a grid cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Grid is a sparse mapping between cells and node IDs. A cell holds at most
// one node and a node occupies at most one cell.
type Grid struct {
	cells map[Position]string
	pos   map[string]Position
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{
		cells: make(map[Position]string),
		pos:   make(map[string]Position),
	}
}

// Len returns the number of placed nodes.
func (g *Grid) Len() int { return len(g.pos) }

// Rows returns one more than the highest occupied row.
func (g *Grid) Rows() int {
	n := 0
	for p := range g.cells {
		n = max(n, p.Row+1)
	}
	return n
}

// Cols returns one more than the highest occupied column.
func (g *Grid) Cols() int {
	n := 0
	for p := range g.cells {
		n = max(n, p.Col+1)
	}
	return n
}

// Position returns the cell of id.
func (g *Grid) Position(id string) (Position, bool) {
	p, ok := g.pos[id]
	return p, ok
}

// At returns the node in a cell.
func (g *Grid) At(row, col int) (string, bool) {
	id, ok := g.cells[Position{row, col}]
	return id, ok
}

// Add places id at column 0 of a new row below all occupied rows.
func (g *Grid) Add(id string) Position {
	p := Position{Row: g.Rows()}
	g.set(id, p)
	return p
}

// AddAfter places id right of anchor in the same row. Occupied cells from
// that column on shift one column right. An unplaced anchor behaves like Add.
func (g *Grid) AddAfter(anchor, id string) Position {
	a, ok := g.pos[anchor]
	if !ok {
		return g.Add(id)
	}
	p := Position{Row: a.Row, Col: a.Col + 1}
	if _, taken := g.cells[p]; taken {
		g.shift(func(c Position) bool { return c.Row == p.Row && c.Col >= p.Col }, Position{Col: 1})
	}
	g.set(id, p)
	return p
}

// AddBelow places id one row under anchor in the same column. When that
// cell is taken a new row is inserted, moving every lower row down by one.
// An unplaced anchor behaves like Add.
func (g *Grid) AddBelow(anchor, id string) Position {
	a, ok := g.pos[anchor]
	if !ok {
		return g.Add(id)
	}
	p := Position{Row: a.Row + 1, Col: a.Col}
	if _, taken := g.cells[p]; taken {
		g.shift(func(c Position) bool { return c.Row >= p.Row }, Position{Row: 1})
	}
	g.set(id, p)
	return p
}

// GridCell is one occupied cell.
type GridCell struct {
	ID       string
	Position Position
}

// Cells returns the occupied cells ordered by row, then column.
func (g *Grid) Cells() []GridCell {
	out := make([]GridCell, 0, len(g.pos))
	for id, p := range g.pos {
		out = append(out, GridCell{ID: id, Position: p})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return out
}

func (g *Grid) set(id string, p Position) {
	if old, ok := g.pos[id]; ok {
		delete(g.cells, old)
	}
	g.cells[p] = id
	g.pos[id] = p
}

func (g *Grid) shift(match func(Position) bool, by Position) {
	moved := make(map[Position]string)
	for p, id := range g.cells {
		if match(p) {
			moved[Position{Row: p.Row + by.Row, Col: p.Col + by.Col}] = id
			delete(g.cells, p)
		}
	}
	for p, id := range moved {
		g.cells[p] = id
		g.pos[id] = p
	}
}
