package model

import "fmt"

// Direction is an agent facing. The numeric order is also the follower slot
// order: a follower approaching from below sits in slot DOWN.
type Direction int

const (
	DOWN Direction = iota
	LEFT
	UP
	RIGHT
)

var directions = [4]Direction{DOWN, LEFT, UP, RIGHT}

// Delta returns the row and column offset of one step in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case DOWN:
		return 1, 0
	case LEFT:
		return 0, -1
	case UP:
		return -1, 0
	case RIGHT:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Name() string {
	switch d {
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	case UP:
		return "UP"
	case RIGHT:
		return "RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

type Status int

const (
	WAITING Status = iota
	READY_TO_CONGA
	CONGOTCHING
	READY_TO_JUMP
	JUMPING
	TELEPORTING
	FINISHED_CONGA
	BURNT
)

func (s Status) Name() string {
	switch s {
	case WAITING:
		return "WAITING"
	case READY_TO_CONGA:
		return "READY_TO_CONGA"
	case CONGOTCHING:
		return "CONGOTCHING"
	case READY_TO_JUMP:
		return "READY_TO_JUMP"
	case JUMPING:
		return "JUMPING"
	case TELEPORTING:
		return "TELEPORTING"
	case FINISHED_CONGA:
		return "FINISHED_CONGA"
	case BURNT:
		return "BURNT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Kind tags an occupant variant. Interaction rules are looked up by Kind.
type Kind int

const (
	GOTCHI Kind = iota
	ROFL
	BLOCK
	PORTAL
	GRENADE
	MILKSHAKE
	CACTUS
	kindCount
)

func (k Kind) Name() string {
	switch k {
	case GOTCHI:
		return "GOTCHI"
	case ROFL:
		return "ROFL"
	case BLOCK:
		return "BLOCK"
	case PORTAL:
		return "PORTAL"
	case GRENADE:
		return "GRENADE"
	case MILKSHAKE:
		return "MILKSHAKE"
	case CACTUS:
		return "CACTUS"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Lookup is the result class of a cell query. OUT_OF_BOUNDS covers both cells
// outside the matrix and inactive ("no cell") positions of the layout.
type Lookup int

const (
	OUT_OF_BOUNDS Lookup = iota
	EMPTY
	OCCUPIED
)

type FuseState int

const (
	LIVE FuseState = iota
	EXPLODED
)

type Pos struct {
	Row, Col int
}

func (p Pos) Step(d Direction) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// DirectionTo returns the direction from p to an orthogonal neighbour q.
func (p Pos) DirectionTo(q Pos) (Direction, bool) {
	for _, d := range directions {
		if p.Step(d) == q {
			return d, true
		}
	}
	return 0, false
}

// Agent is the state carried by GOTCHI and ROFL occupants. Leader and
// followers are coordinates resolved through the grid. Discovery recomputes
// them every turn and a chain that moves re-keys them to the new cells.
type Agent struct {
	Facing     Direction
	Status     Status
	Multiplier int
	Spiked     bool
	// Side alternates LEFT/RIGHT every conga step, for the presentation layer.
	Side Direction

	leader    *Pos
	followers [4]*Pos
}

type Grenade struct {
	Fuse FuseState
}

type Occupant struct {
	Id       int32
	Kind     Kind
	Row, Col int
	Agent    *Agent
	Grenade  *Grenade
}

type Cell struct {
	Row, Col int
	Active   bool
	Occupant *Occupant
}

// Grid is the single owner of cell occupancy. Matrix is indexed [row][col].
type Grid struct {
	Matrix   [][]*Cell
	cellSize float64
}
