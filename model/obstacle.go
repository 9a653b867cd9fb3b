package model

// Level bundles the grid with the collaborators every interaction needs.
type Level struct {
	Grid      *Grid
	Sink      EventSink
	Stats     Stats
	Scheduler *Scheduler
}

func (l *Level) score(stat Stat, o *Occupant, scale int) {
	l.Sink.Emit(Event{
		Type:  EV_SCORE,
		Id:    o.Id,
		Row:   o.Row,
		Col:   o.Col,
		Stat:  stat,
		Delta: l.Stats.Value(stat) * scale,
	})
}

func (l *Level) emit(t EventType, o *Occupant) {
	l.Sink.Emit(Event{Type: t, Id: o.Id, Row: o.Row, Col: o.Col})
}

// Contact is the outcome of a chain root stepping towards an occupied cell.
type Contact int

const (
	// the step is refused, the chain stalls
	CONTACT_BLOCKED Contact = iota
	// the target cell was cleared, the mover steps in
	CONTACT_ENTER
	// the mover leaves the grid through a portal
	CONTACT_TELEPORT
	// an effect fired but the mover stays where it is
	CONTACT_TRIGGERED
)

type contactRule func(l *Level, mover, target *Occupant) Contact

var contactRules [kindCount]contactRule

func init() {
	contactRules = [kindCount]contactRule{
		GOTCHI:    blocked,
		ROFL:      blocked,
		BLOCK:     blocked,
		CACTUS:    blocked,
		PORTAL:    (*Level).portalArrival,
		GRENADE:   (*Level).grenadeContact,
		MILKSHAKE: (*Level).consume,
	}
}

func blocked(*Level, *Occupant, *Occupant) Contact {
	return CONTACT_BLOCKED
}

// Contact applies the interaction rule of target's kind to mover.
func (l *Level) Contact(mover, target *Occupant) Contact {
	if target == nil || target.Kind < 0 || target.Kind >= kindCount {
		return CONTACT_BLOCKED
	}
	return contactRules[target.Kind](l, mover, target)
}

// portalArrival removes the arriving agent from the grid and pays the save
// bonus scaled by its multiplier.
func (l *Level) portalArrival(mover, portal *Occupant) Contact {
	l.Grid.Remove(mover)
	mover.Row, mover.Col = portal.Row, portal.Col
	mover.Agent.Status = TELEPORTING
	mover.clearLinks()
	l.score(GOTCHI_SAVE, mover, mover.Agent.Multiplier)
	l.emit(EV_TELEPORTED, mover)
	l.Scheduler.After(StepDuration+TeleportDuration, func() {
		mover.Agent.Status = FINISHED_CONGA
	})
	return CONTACT_TELEPORT
}

func (l *Level) grenadeContact(_, grenade *Occupant) Contact {
	l.Explode(grenade)
	return CONTACT_TRIGGERED
}

// consume collects a milkshake: the item leaves the grid and the collector's
// portal multiplier grows by one.
func (l *Level) consume(mover, item *Occupant) Contact {
	l.Grid.Remove(item)
	mover.Agent.Multiplier++
	l.score(MILKSHAKE_SIP, mover, 1)
	l.emit(EV_CONSUMED, item)
	return CONTACT_ENTER
}

// Explode detonates a live grenade. Agents in the 3x3 blast are burnt, other
// live grenades are scheduled to explode after the fuse, consumables and
// hazards are destroyed. Calling it again is a no-op.
func (l *Level) Explode(o *Occupant) {
	if o.Grenade == nil || o.Grenade.Fuse != LIVE {
		return
	}
	o.Grenade.Fuse = EXPLODED
	l.score(RED_ACTIVATE, o, 1)
	l.emit(EV_EXPLODED, o)

	for r := o.Row - 1; r <= o.Row+1; r++ {
		for c := o.Col - 1; c <= o.Col+1; c++ {
			target, lookup := l.Grid.CellAt(r, c)
			if lookup != OCCUPIED || target == o {
				continue
			}
			switch target.Kind {
			case GOTCHI, ROFL:
				if target.Agent.Status != BURNT {
					target.Agent.Status = BURNT
					target.clearLinks()
					l.emit(EV_BURNT, target)
				}
			case GRENADE:
				if target.Grenade.Fuse == LIVE {
					next := target
					l.Scheduler.After(FuseDuration, func() { l.Explode(next) })
				}
			case MILKSHAKE, CACTUS:
				l.Grid.Remove(target)
			}
		}
	}
	l.Grid.Remove(o)
}

// HazardCheck damages o once if any of its eight neighbours holds a cactus.
// The damage flag clears after the flash window.
func (l *Level) HazardCheck(o *Occupant) bool {
	if !o.IsAgent() {
		return false
	}
	hit := false
	for dr := -1; dr <= 1 && !hit; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n, lookup := l.Grid.CellAt(o.Row+dr, o.Col+dc)
			if lookup == OCCUPIED && n.Kind == CACTUS {
				hit = true
				break
			}
		}
	}
	if !hit {
		return false
	}
	o.Agent.Spiked = true
	l.score(RED_DAMAGE, o, 1)
	l.emit(EV_DAMAGED, o)
	l.Scheduler.After(FlashDuration, func() { o.Agent.Spiked = false })
	return true
}
