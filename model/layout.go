package model

import (
	"errors"
	"fmt"
)

// Layout cell codes.
const (
	CODE_NONE        = 0
	CODE_EMPTY       = 1
	CODE_GOTCHI_DOWN = 2 // 2..5 gotchi facing DOWN, LEFT, UP, RIGHT
	CODE_PORTAL      = 6
	CODE_BLOCK       = 7
	CODE_GRENADE     = 8
	CODE_MILKSHAKE   = 9
	CODE_CACTUS      = 10
	CODE_ROFL_DOWN   = 11 // 11..14 rofl facing DOWN, LEFT, UP, RIGHT
	CODE_MAX         = 14
)

const (
	GotchiMultiplier = 1
	RoflMultiplier   = 2
)

var (
	ErrEmptyLayout  = errors.New("layout has no cells")
	ErrRaggedLayout = errors.New("layout rows differ in length")
	ErrUnknownCode  = errors.New("unknown layout code")
)

// DecodeLayout validates matrix and builds a populated grid. Nothing is
// returned unless the whole layout is valid.
func DecodeLayout(matrix [][]int, cellSize float64) (*Grid, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmptyLayout
	}
	cols := len(matrix[0])
	for r, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), cols, ErrRaggedLayout)
		}
		for c, code := range row {
			if code < CODE_NONE || code > CODE_MAX {
				return nil, fmt.Errorf("cell %d,%d code %d: %w", r, c, code, ErrUnknownCode)
			}
		}
	}

	g := NewGrid(len(matrix), cols, cellSize)
	var id int32
	for r, row := range matrix {
		for c, code := range row {
			cell := g.Matrix[r][c]
			if code == CODE_NONE {
				cell.Active = false
				continue
			}
			if code == CODE_EMPTY {
				continue
			}
			id++
			o := newOccupant(id, code)
			o.Row, o.Col = r, c
			cell.Occupant = o
		}
	}
	return g, nil
}

func newOccupant(id int32, code int) *Occupant {
	switch {
	case code >= CODE_GOTCHI_DOWN && code < CODE_GOTCHI_DOWN+4:
		return NewAgent(id, GOTCHI, Direction(code-CODE_GOTCHI_DOWN))
	case code >= CODE_ROFL_DOWN && code < CODE_ROFL_DOWN+4:
		return NewAgent(id, ROFL, Direction(code-CODE_ROFL_DOWN))
	case code == CODE_GRENADE:
		return &Occupant{Id: id, Kind: GRENADE, Grenade: &Grenade{Fuse: LIVE}}
	case code == CODE_PORTAL:
		return &Occupant{Id: id, Kind: PORTAL}
	case code == CODE_MILKSHAKE:
		return &Occupant{Id: id, Kind: MILKSHAKE}
	case code == CODE_CACTUS:
		return &Occupant{Id: id, Kind: CACTUS}
	default:
		return &Occupant{Id: id, Kind: BLOCK}
	}
}

func NewAgent(id int32, kind Kind, facing Direction) *Occupant {
	multiplier := GotchiMultiplier
	if kind == ROFL {
		multiplier = RoflMultiplier
	}
	return &Occupant{
		Id:   id,
		Kind: kind,
		Agent: &Agent{
			Facing:     facing,
			Status:     WAITING,
			Multiplier: multiplier,
			Side:       LEFT,
		},
	}
}

// Layout encodes the grid back into layout codes. Burnt agents keep the code
// of their facing.
func (g *Grid) Layout() [][]int {
	out := make([][]int, 0, g.Rows())
	for _, row := range g.Matrix {
		line := make([]int, 0, len(row))
		for _, c := range row {
			line = append(line, code(c))
		}
		out = append(out, line)
	}
	return out
}

func code(c *Cell) int {
	if !c.Active {
		return CODE_NONE
	}
	o := c.Occupant
	if o == nil {
		return CODE_EMPTY
	}
	switch o.Kind {
	case GOTCHI:
		return CODE_GOTCHI_DOWN + int(o.Agent.Facing)
	case ROFL:
		return CODE_ROFL_DOWN + int(o.Agent.Facing)
	case PORTAL:
		return CODE_PORTAL
	case GRENADE:
		return CODE_GRENADE
	case MILKSHAKE:
		return CODE_MILKSHAKE
	case CACTUS:
		return CODE_CACTUS
	default:
		return CODE_BLOCK
	}
}
