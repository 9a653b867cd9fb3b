package model

import (
	"errors"
	"fmt"
	"reflect"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoLevel       = errors.New("no level data")
	ErrNoPlayer      = errors.New("no player event sink")
	ErrNoActions     = errors.New("no actions remaining")
	ErrNotSettled    = errors.New("turn not settled")
	ErrNotAgent      = errors.New("cell holds no agent")
	ErrNotGrenade    = errors.New("cell holds no live grenade")
	ErrCellOccupied  = errors.New("target cell is not empty")
	ErrLevelEnded    = errors.New("level ended")
	ErrUnknownAction = errors.New("unknown action")
)

const DefaultActions = 5

type LevelConfig struct {
	Number  int
	Actions int
	Layout  [][]int
}

// TurnController owns the action budget and gates conga turns: a turn may
// start only when the board is settled, and observers hear about a turn only
// after it has settled.
type TurnController struct {
	Config  LevelConfig
	Level   *Level
	Turns   int
	actions int

	resolver  *Resolver
	resolving bool
	ended     bool

	// OnSettled is called once per resolved turn, after settlement.
	OnSettled func(turn int)
}

// Start validates the level and builds a fresh controller. No partial state
// is returned on error.
func Start(cfg LevelConfig, sink EventSink, stats Stats) (*TurnController, error) {
	if cfg.Layout == nil {
		return nil, ErrNoLevel
	}
	if nilSink(sink) {
		return nil, ErrNoPlayer
	}
	grid, err := DecodeLayout(cfg.Layout, DefaultCellSize)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", cfg.Number, err)
	}
	if cfg.Actions <= 0 {
		cfg.Actions = DefaultActions
	}
	level := &Level{
		Grid:      grid,
		Sink:      sink,
		Stats:     stats,
		Scheduler: NewScheduler(),
	}
	return &TurnController{
		Config:   cfg,
		Level:    level,
		actions:  cfg.Actions,
		resolver: &Resolver{Level: level},
	}, nil
}

// nilSink also catches a typed nil pointer wrapped in the interface.
func nilSink(sink EventSink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (tc *TurnController) ActionsRemaining() int {
	return tc.actions
}

func (tc *TurnController) AdjustActions(delta int) {
	tc.actions += delta
	if tc.actions < 0 {
		tc.actions = 0
	}
}

// Settled reports whether no chain is mid-conga and no deferred effect is
// pending.
func (tc *TurnController) Settled() bool {
	if tc.Level.Scheduler.Pending() > 0 {
		return false
	}
	for _, a := range tc.Level.Grid.Agents() {
		switch a.Agent.Status {
		case READY_TO_CONGA, CONGOTCHING, READY_TO_JUMP, JUMPING:
			return false
		}
	}
	return true
}

// ResolveTurn runs one conga turn. It is refused while a previous turn or a
// deferred effect is still playing out.
func (tc *TurnController) ResolveTurn() (Report, error) {
	if tc.ended {
		return Report{}, ErrLevelEnded
	}
	if tc.resolving || !tc.Settled() {
		return Report{}, ErrNotSettled
	}
	tc.Turns++
	tc.resolving = true
	report := tc.resolver.Resolve()
	log.WithFields(log.Fields{
		"level":      tc.Config.Number,
		"turn":       tc.Turns,
		"chains":     len(report.Outcomes),
		"moved":      report.Moved(),
		"stalled":    report.Stalled(),
		"teleported": report.Teleported(),
	}).Debug("conga turn resolved")
	tc.checkSettled()
	return report, nil
}

// Update advances deferred effects by dt seconds.
func (tc *TurnController) Update(dt float32) {
	if tc.ended {
		return
	}
	tc.Level.Scheduler.Update(dt)
	tc.checkSettled()
}

// Settle ticks until the board is settled or maxTicks have run.
func (tc *TurnController) Settle(maxTicks int) bool {
	for i := 0; i < maxTicks && !tc.Settled(); i++ {
		tc.Update(TickDuration)
	}
	return tc.Settled()
}

func (tc *TurnController) checkSettled() {
	if !tc.resolving || !tc.Settled() {
		return
	}
	tc.resolving = false
	tc.Level.Sink.Emit(Event{Type: EV_SETTLED, Row: -1, Col: -1, Delta: tc.Turns})
	if tc.OnSettled != nil {
		tc.OnSettled(tc.Turns)
	}
}

func (tc *TurnController) spend() error {
	if tc.ended {
		return ErrLevelEnded
	}
	if tc.actions <= 0 {
		return ErrNoActions
	}
	if !tc.Settled() {
		return ErrNotSettled
	}
	return nil
}

func (tc *TurnController) agentAt(row, col int) (*Occupant, error) {
	o, l := tc.Level.Grid.CellAt(row, col)
	if l != OCCUPIED || !o.IsAgent() {
		return nil, ErrNotAgent
	}
	return o, nil
}

// Rotate re-aims an agent. Facing the same way costs nothing; any real change
// costs one action and brings a burnt agent back into play.
func (tc *TurnController) Rotate(row, col int, d Direction) error {
	if err := tc.spend(); err != nil {
		return err
	}
	o, err := tc.agentAt(row, col)
	if err != nil {
		return err
	}
	if o.Agent.Facing == d {
		return nil
	}
	o.SetDirection(d)
	o.Reset()
	tc.AdjustActions(-1)
	return nil
}

// Drag moves an agent or a grenade one cell into an empty neighbour.
func (tc *TurnController) Drag(row, col int, d Direction) error {
	if err := tc.spend(); err != nil {
		return err
	}
	g := tc.Level.Grid
	o, l := g.CellAt(row, col)
	if l != OCCUPIED || !(o.IsAgent() || o.Kind == GRENADE) {
		return ErrNotAgent
	}
	to := o.Pos().Step(d)
	if !g.IsEmpty(to.Row, to.Col) {
		return ErrCellOccupied
	}
	g.SetOccupant(to.Row, to.Col, o)
	if o.IsAgent() {
		o.Reset()
	}
	tc.AdjustActions(-1)
	return nil
}

// Detonate sets off a live grenade by hand.
func (tc *TurnController) Detonate(row, col int) error {
	if err := tc.spend(); err != nil {
		return err
	}
	o, l := tc.Level.Grid.CellAt(row, col)
	if l != OCCUPIED || o.Kind != GRENADE || o.Grenade.Fuse != LIVE {
		return ErrNotGrenade
	}
	tc.AdjustActions(-1)
	tc.Level.Explode(o)
	return nil
}

// Over reports whether the level can no longer progress: no agents remain,
// or every remaining agent is burnt and no action is left to revive one.
func (tc *TurnController) Over() bool {
	agents := tc.Level.Grid.Agents()
	if len(agents) == 0 {
		return true
	}
	if tc.actions > 0 {
		return false
	}
	for _, a := range agents {
		if a.Agent.Status != BURNT {
			return false
		}
	}
	return true
}

// SoftReset rebuilds the level from its layout with a fresh action budget.
// Pending effects are dropped.
func (tc *TurnController) SoftReset() error {
	grid, err := DecodeLayout(tc.Config.Layout, tc.Level.Grid.CellSize())
	if err != nil {
		return err
	}
	tc.Level.Scheduler.Clear()
	tc.Level.Grid = grid
	tc.actions = tc.Config.Actions
	tc.Turns = 0
	tc.resolving = false
	tc.ended = false
	return nil
}

// End discards in-flight turn state. The controller refuses further input.
func (tc *TurnController) End() {
	tc.Level.Scheduler.Clear()
	tc.resolving = false
	tc.ended = true
}

func (tc *TurnController) Ended() bool {
	return tc.ended
}
