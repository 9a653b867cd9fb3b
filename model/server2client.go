package model

type ServerMessage struct {
	Setup     []Setup
	Snapshots []Snapshot
	Events    []Event
	Errors    []string
}

type Setup struct {
	Level      int
	Rows, Cols int
	CellSize   float64
	Actions    int
	PlayerKey  int32
}

type AgentState struct {
	Id       int32
	Row, Col int
	Kind     Kind
	Facing   Direction
	Status   Status
	Spiked   bool
	Side     Direction
}

// ItemState is a non-agent occupant: block, portal, grenade, milkshake or
// cactus.
type ItemState struct {
	Id       int32
	Row, Col int
	Kind     Kind
	Fuse     FuseState
}

type Snapshot struct {
	Turn    int
	Layout  [][]int
	Agents  []AgentState
	Items   []ItemState
	Actions int
	Score   int
	Settled bool
	Over    bool
}

// MakeSnapshot captures the board as the client needs to draw it.
func (tc *TurnController) MakeSnapshot(score int) Snapshot {
	agents := make([]AgentState, 0)
	items := make([]ItemState, 0)
	for _, o := range tc.Level.Grid.Occupants() {
		if !o.IsAgent() {
			item := ItemState{Id: o.Id, Row: o.Row, Col: o.Col, Kind: o.Kind}
			if o.Grenade != nil {
				item.Fuse = o.Grenade.Fuse
			}
			items = append(items, item)
			continue
		}
		agents = append(agents, AgentState{
			Id:     o.Id,
			Row:    o.Row,
			Col:    o.Col,
			Kind:   o.Kind,
			Facing: o.Agent.Facing,
			Status: o.Agent.Status,
			Spiked: o.Agent.Spiked,
			Side:   o.Agent.Side,
		})
	}
	return Snapshot{
		Turn:    tc.Turns,
		Layout:  tc.Level.Grid.Layout(),
		Agents:  agents,
		Items:   items,
		Actions: tc.actions,
		Score:   score,
		Settled: tc.Settled(),
		Over:    tc.Over(),
	}
}
