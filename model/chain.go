package model

// Chain is one connected conga line in resolution order. Members[0] is the
// root; every other member appears after its leader.
type Chain struct {
	Members []*Occupant
	// leaders[i] is the index of Members[i]'s leader, -1 for the root
	leaders []int
	// Cycle marks a chain with no free root: every member faces the next one
	// around a loop. Cycles never move.
	Cycle bool
}

func (c *Chain) Root() *Occupant {
	return c.Members[0]
}

func (c *Chain) Len() int {
	return len(c.Members)
}

// LeaderIndex returns the index of member i's leader, -1 for the root.
func (c *Chain) LeaderIndex(i int) int {
	return c.leaders[i]
}

// Outcome summarises what one chain did during a turn.
type Outcome struct {
	Chain      *Chain
	Moved      int
	Stalled    bool
	Teleported bool
	Triggered  bool
	Jumper     *Occupant
}

type Report struct {
	Outcomes []Outcome
}

func (r Report) Moved() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Moved
	}
	return n
}

func (r Report) Stalled() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Stalled {
			n++
		}
	}
	return n
}

func (r Report) Teleported() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Teleported {
			n++
		}
	}
	return n
}

// Resolver discovers and drives conga chains over a level.
type Resolver struct {
	Level *Level
}

// Discover recomputes leader and follower links for every live agent from the
// current grid snapshot. Nothing moves during discovery.
func (rs *Resolver) Discover() []*Occupant {
	g := rs.Level.Grid
	live := make([]*Occupant, 0)
	for _, a := range g.Agents() {
		if a.burnt() {
			a.clearLinks()
			continue
		}
		live = append(live, a)
	}
	for _, a := range live {
		a.FindLeader(g)
		a.FindFollowers(g)
	}
	return live
}

// Assemble builds chains from discovered links: first one chain per root in
// row-major order, then one per leftover loop.
func (rs *Resolver) Assemble(live []*Occupant) []*Chain {
	g := rs.Level.Grid
	visited := make(map[*Occupant]bool, len(live))
	chains := make([]*Chain, 0)

	for _, a := range live {
		if a.HasLeader() {
			continue
		}
		chains = append(chains, rs.collect(a, visited))
	}

	for _, a := range live {
		if visited[a] {
			continue
		}
		// walk up to a member of the loop so the whole component hangs off it
		seen := map[*Occupant]bool{}
		start := a
		for !seen[start] {
			seen[start] = true
			next := start.Leader(g)
			if next == nil || visited[next] {
				break
			}
			start = next
		}
		c := rs.collect(start, visited)
		c.Cycle = true
		chains = append(chains, c)
	}
	return chains
}

// collect walks followers depth first in slot order DOWN, LEFT, UP, RIGHT.
func (rs *Resolver) collect(root *Occupant, visited map[*Occupant]bool) *Chain {
	g := rs.Level.Grid
	c := &Chain{}
	var walk func(o *Occupant, leader int)
	walk = func(o *Occupant, leader int) {
		visited[o] = true
		idx := len(c.Members)
		c.Members = append(c.Members, o)
		c.leaders = append(c.leaders, leader)
		for _, f := range o.Followers(g) {
			if f == nil || visited[f] || f.burnt() {
				continue
			}
			walk(f, idx)
		}
	}
	walk(root, -1)
	return c
}

// Resolve runs one conga turn: discovery, assembly, then each chain in order.
func (rs *Resolver) Resolve() Report {
	chains := rs.Assemble(rs.Discover())
	report := Report{Outcomes: make([]Outcome, 0, len(chains))}
	for _, c := range chains {
		for _, m := range c.Members {
			m.Agent.Status = READY_TO_CONGA
		}
	}
	for _, c := range chains {
		report.Outcomes = append(report.Outcomes, rs.step(c))
	}
	return report
}

// step moves one chain. The root tries its facing cell; on success each
// member takes the cell its leader vacated, one follower per leader. When the
// root cannot move nobody moves.
func (rs *Resolver) step(c *Chain) Outcome {
	l := rs.Level
	g := l.Grid
	out := Outcome{Chain: c}

	n := c.Len()
	moved := make([]bool, n)
	claimed := make([]bool, n)
	vacated := make([]Pos, n)
	facing := make([]Direction, n)

	root := c.Root()
	from := root.Pos()
	contact := CONTACT_BLOCKED
	if !c.Cycle && !root.burnt() {
		target := from.Step(root.Agent.Facing)
		occ, lookup := g.At(target)
		switch lookup {
		case EMPTY:
			contact = CONTACT_ENTER
		case OCCUPIED:
			contact = l.Contact(root, occ)
		}
		switch contact {
		case CONTACT_ENTER:
			vacated[0] = from
			facing[0] = root.Agent.Facing
			if g.SetOccupant(target.Row, target.Col, root) {
				moved[0] = true
				root.Agent.Status = CONGOTCHING
			}
		case CONTACT_TELEPORT:
			// portalArrival already took the root off the grid
			vacated[0] = from
			facing[0] = root.Agent.Facing
			moved[0] = true
			out.Teleported = true
		case CONTACT_TRIGGERED:
			out.Triggered = true
		}
	}

	if !moved[0] {
		out.Stalled = true
		l.emit(EV_STALLED, root)
	}

	tail := -1
	for i := 1; i < n && moved[0]; i++ {
		m := c.Members[i]
		p := c.leaders[i]
		if !moved[p] || claimed[p] || m.burnt() {
			continue
		}
		if !g.IsEmpty(vacated[p].Row, vacated[p].Col) {
			continue
		}
		claimed[p] = true
		vacated[i] = m.Pos()
		facing[i] = m.Agent.Facing
		if !g.SetOccupant(vacated[p].Row, vacated[p].Col, m) {
			continue
		}
		m.SetDirection(facing[p])
		m.Agent.Status = CONGOTCHING
		moved[i] = true
		tail = i
	}

	for i, m := range c.Members {
		if moved[i] {
			out.Moved++
		}
		m.Agent.Side = flipSide(m.Agent.Side)
	}
	if moved[0] {
		rs.relink(c, moved)
		l.emit(EV_CONGA, root)
	}

	if tail > 0 {
		out.Jumper = c.Members[tail]
		rs.jump(out.Jumper)
	}

	for i, m := range c.Members {
		if m.Agent.Status == TELEPORTING || m.burnt() {
			continue
		}
		l.HazardCheck(m)
		if i == tail {
			continue
		}
		rs.settle(m)
	}
	return out
}

// relink points the links of a chain that moved at the members' new cells. A
// member whose leader moved without it, or left the grid, loses that link.
func (rs *Resolver) relink(c *Chain, moved []bool) {
	for _, m := range c.Members {
		m.Agent.followers = [4]*Pos{}
	}
	for i := 1; i < c.Len(); i++ {
		m, p := c.Members[i], c.leaders[i]
		leader := c.Members[p]
		m.Agent.leader = nil
		if leader.Agent.Status == TELEPORTING || moved[p] != moved[i] {
			continue
		}
		lp, mp := leader.Pos(), m.Pos()
		d, ok := lp.DirectionTo(mp)
		if !ok {
			continue
		}
		m.Agent.leader = &lp
		leader.Agent.followers[d] = &mp
	}
}

// jump is the bonus hop of the tail of a chain that moved.
func (rs *Resolver) jump(o *Occupant) {
	l := rs.Level
	o.Agent.Status = READY_TO_JUMP
	l.score(CONGA_JUMP, o, 1)
	l.emit(EV_JUMPED, o)
	l.Scheduler.After(StepDuration, func() {
		if o.Agent.Status != READY_TO_JUMP {
			return
		}
		o.Agent.Status = JUMPING
		l.Scheduler.After(JumpDuration, func() {
			if o.Agent.Status == JUMPING {
				o.Agent.Status = WAITING
			}
		})
	})
}

// settle returns a member to WAITING once its conga step has played out.
// A member burnt in the meantime stays burnt.
func (rs *Resolver) settle(o *Occupant) {
	rs.Level.Scheduler.After(StepDuration, func() {
		switch o.Agent.Status {
		case READY_TO_CONGA, CONGOTCHING:
			o.Agent.Status = WAITING
		}
	})
}

func flipSide(d Direction) Direction {
	if d == LEFT {
		return RIGHT
	}
	return LEFT
}
