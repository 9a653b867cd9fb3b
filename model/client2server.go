package model

import "fmt"

type ActionKind int

const (
	ACT_CONGA ActionKind = iota + 1
	ACT_ROTATE
	ACT_DRAG
	ACT_DETONATE
	ACT_RESET
	ACT_SHOW
	ACT_TEXT
)

func (a ActionKind) Name() string {
	switch a {
	case ACT_CONGA:
		return "CONGA"
	case ACT_ROTATE:
		return "ROTATE"
	case ACT_DRAG:
		return "DRAG"
	case ACT_DETONATE:
		return "DETONATE"
	case ACT_RESET:
		return "RESET"
	case ACT_SHOW:
		return "SHOW"
	case ACT_TEXT:
		return "TEXT"
	default:
		return fmt.Sprintf("N/A(%d)", a)
	}
}

// ClientMessage is one player input. Text carries a typed command for
// ACT_TEXT and is ignored otherwise.
type ClientMessage struct {
	Action    ActionKind
	Row, Col  int
	Direction Direction
	Text      string
}

// Apply performs one player input against the controller.
func (tc *TurnController) Apply(m ClientMessage) error {
	switch m.Action {
	case ACT_CONGA:
		_, err := tc.ResolveTurn()
		return err
	case ACT_ROTATE:
		return tc.Rotate(m.Row, m.Col, m.Direction)
	case ACT_DRAG:
		return tc.Drag(m.Row, m.Col, m.Direction)
	case ACT_DETONATE:
		return tc.Detonate(m.Row, m.Col)
	case ACT_RESET:
		return tc.SoftReset()
	case ACT_SHOW:
		return nil
	default:
		return fmt.Errorf("action %s: %w", m.Action.Name(), ErrUnknownAction)
	}
}
