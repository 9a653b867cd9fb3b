package model

// IsAgent reports whether o is a movable, directed unit (gotchi or rofl).
func (o *Occupant) IsAgent() bool {
	return o != nil && o.Agent != nil && (o.Kind == GOTCHI || o.Kind == ROFL)
}

func (o *Occupant) Pos() Pos {
	return Pos{Row: o.Row, Col: o.Col}
}

func (o *Occupant) burnt() bool {
	return o.Agent.Status == BURNT
}

func (o *Occupant) SetDirection(d Direction) {
	o.Agent.Facing = d
}

// FindLeader looks at the single cell o faces. The unit there leads o unless
// it is burnt or faces straight back.
func (o *Occupant) FindLeader(g *Grid) {
	a := o.Agent
	a.leader = nil
	p := o.Pos().Step(a.Facing)
	candidate, l := g.At(p)
	if l != OCCUPIED || !candidate.IsAgent() || candidate.burnt() {
		return
	}
	if candidate.Agent.Facing == a.Facing.Opposite() {
		return
	}
	a.leader = &p
}

// FindFollowers fills one slot per neighbour that faces o. A neighbour that o
// faces in return is skipped, mirroring FindLeader.
func (o *Occupant) FindFollowers(g *Grid) {
	a := o.Agent
	for _, d := range directions {
		a.followers[d] = nil
		p := o.Pos().Step(d)
		n, l := g.At(p)
		if l != OCCUPIED || !n.IsAgent() || n.burnt() {
			continue
		}
		if n.Agent.Facing != d.Opposite() || a.Facing == d {
			continue
		}
		a.followers[d] = &p
	}
}

func (o *Occupant) clearLinks() {
	o.Agent.leader = nil
	o.Agent.followers = [4]*Pos{}
}

// Leader resolves the discovered leader through the grid.
func (o *Occupant) Leader(g *Grid) *Occupant {
	if o.Agent.leader == nil {
		return nil
	}
	l, _ := g.At(*o.Agent.leader)
	if !l.IsAgent() || l == o {
		return nil
	}
	return l
}

func (o *Occupant) HasLeader() bool {
	return o.Agent.leader != nil
}

// Followers resolves the follower slots, indexed by Direction.
func (o *Occupant) Followers(g *Grid) [4]*Occupant {
	var out [4]*Occupant
	for i, p := range o.Agent.followers {
		if p == nil {
			continue
		}
		if f, _ := g.At(*p); f.IsAgent() {
			out[i] = f
		}
	}
	return out
}

func (o *Occupant) HasFollower() bool {
	for _, p := range o.Agent.followers {
		if p != nil {
			return true
		}
	}
	return false
}

// IsUpchainStatus reports whether any leader above o currently has status s.
// The walk is bounded by the grid size so leader cycles terminate.
func (o *Occupant) IsUpchainStatus(g *Grid, s Status) bool {
	limit := g.Rows() * g.Cols()
	for l := o.Leader(g); l != nil && limit > 0; l = l.Leader(g) {
		if l.Agent.Status == s {
			return true
		}
		limit--
	}
	return false
}

// Reset puts a burnt agent back into play after the player re-aims or drags it.
func (o *Occupant) Reset() {
	o.Agent.Status = WAITING
	o.Agent.Spiked = false
}
