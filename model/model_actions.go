package model

import (
	"math"
	"strings"
)

const DefaultCellSize = 64

// NewGrid creates a rows x cols grid with every cell active and empty.
func NewGrid(rows, cols int, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	matrix := make([][]*Cell, 0, rows)
	for r := 0; r < rows; r++ {
		row := make([]*Cell, 0, cols)
		for c := 0; c < cols; c++ {
			row = append(row, &Cell{Row: r, Col: c, Active: true})
		}
		matrix = append(matrix, row)
	}
	return &Grid{Matrix: matrix, cellSize: cellSize}
}

func (g *Grid) Rows() int {
	return len(g.Matrix)
}

func (g *Grid) Cols() int {
	if len(g.Matrix) == 0 {
		return 0
	}
	return len(g.Matrix[0])
}

func (g *Grid) CellSize() float64 {
	return g.cellSize
}

func (g *Grid) cell(row, col int) *Cell {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return nil
	}
	c := g.Matrix[row][col]
	if !c.Active {
		return nil
	}
	return c
}

// CellAt returns the occupant at row, col. The occupant is nil unless the
// lookup is OCCUPIED.
func (g *Grid) CellAt(row, col int) (*Occupant, Lookup) {
	c := g.cell(row, col)
	if c == nil {
		return nil, OUT_OF_BOUNDS
	}
	if c.Occupant == nil {
		return nil, EMPTY
	}
	return c.Occupant, OCCUPIED
}

func (g *Grid) At(p Pos) (*Occupant, Lookup) {
	return g.CellAt(p.Row, p.Col)
}

func (g *Grid) IsEmpty(row, col int) bool {
	_, l := g.CellAt(row, col)
	return l == EMPTY
}

// SetOccupant places o at row, col, vacating its previous cell. It refuses
// (returns false) when the target is out of bounds or holds another occupant.
func (g *Grid) SetOccupant(row, col int, o *Occupant) bool {
	target := g.cell(row, col)
	if target == nil || o == nil {
		return false
	}
	if target.Occupant != nil && target.Occupant != o {
		return false
	}
	if prev := g.cell(o.Row, o.Col); prev != nil && prev.Occupant == o {
		prev.Occupant = nil
	}
	target.Occupant = o
	o.Row, o.Col = row, col
	return true
}

func (g *Grid) ClearCell(row, col int) {
	if c := g.cell(row, col); c != nil {
		c.Occupant = nil
	}
}

// Remove clears the cell o is registered in, if it is still there.
func (g *Grid) Remove(o *Occupant) {
	if c := g.cell(o.Row, o.Col); c != nil && c.Occupant == o {
		c.Occupant = nil
	}
}

func (g *Grid) PositionFromPixel(x, y float64) Pos {
	return Pos{
		Row: int(math.Floor(y / g.cellSize)),
		Col: int(math.Floor(x / g.cellSize)),
	}
}

// PixelFromPosition returns the centre of the cell.
func (g *Grid) PixelFromPosition(row, col int) (float64, float64) {
	return (float64(col) + .5) * g.cellSize, (float64(row) + .5) * g.cellSize
}

// Agents returns every agent-like occupant in row-major order.
func (g *Grid) Agents() []*Occupant {
	agents := make([]*Occupant, 0)
	for _, row := range g.Matrix {
		for _, c := range row {
			if c.Active && c.Occupant != nil && c.Occupant.IsAgent() {
				agents = append(agents, c.Occupant)
			}
		}
	}
	return agents
}

// Occupants returns every occupant in row-major order.
func (g *Grid) Occupants() []*Occupant {
	all := make([]*Occupant, 0)
	for _, row := range g.Matrix {
		for _, c := range row {
			if c.Active && c.Occupant != nil {
				all = append(all, c.Occupant)
			}
		}
	}
	return all
}

var glyphs = [kindCount]byte{
	GOTCHI:    'g',
	ROFL:      'r',
	BLOCK:     '#',
	PORTAL:    'O',
	GRENADE:   '*',
	MILKSHAKE: 'm',
	CACTUS:    '+',
}

var arrows = [4]byte{DOWN: 'v', LEFT: '<', UP: '^', RIGHT: '>'}

// String dumps the grid one row per line. Agents are drawn as their facing
// arrow, burnt agents as 'x', inactive cells as a space.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.Matrix {
		for _, c := range row {
			switch {
			case !c.Active:
				b.WriteByte(' ')
			case c.Occupant == nil:
				b.WriteByte('.')
			case c.Occupant.IsAgent() && c.Occupant.Agent.Status == BURNT:
				b.WriteByte('x')
			case c.Occupant.IsAgent():
				b.WriteByte(arrows[c.Occupant.Agent.Facing])
			default:
				b.WriteByte(glyphs[c.Occupant.Kind])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
