package model

import "fmt"

type EventType int

const (
	EV_SCORE EventType = iota
	EV_BURNT
	EV_TELEPORTED
	EV_EXPLODED
	EV_DAMAGED
	EV_CONSUMED
	EV_JUMPED
	EV_CONGA
	EV_STALLED
	EV_SETTLED
)

func (t EventType) Name() string {
	switch t {
	case EV_SCORE:
		return "SCORE"
	case EV_BURNT:
		return "BURNT"
	case EV_TELEPORTED:
		return "TELEPORTED"
	case EV_EXPLODED:
		return "EXPLODED"
	case EV_DAMAGED:
		return "DAMAGED"
	case EV_CONSUMED:
		return "CONSUMED"
	case EV_JUMPED:
		return "JUMPED"
	case EV_CONGA:
		return "CONGA"
	case EV_STALLED:
		return "STALLED"
	case EV_SETTLED:
		return "SETTLED"
	default:
		return fmt.Sprintf("N/A(%d)", t)
	}
}

// Stat names a score table entry.
type Stat string

const (
	GOTCHI_SAVE   Stat = "GOTCHI_SAVE"
	CONGA_JUMP    Stat = "CONGA_JUMP"
	RED_DAMAGE    Stat = "RED_DAMAGE"
	RED_ACTIVATE  Stat = "RED_ACTIVATE"
	MILKSHAKE_SIP Stat = "MILKSHAKE"
)

type Stats struct {
	GotchiSave  int
	CongaJump   int
	RedDamage   int
	RedActivate int
	Milkshake   int
}

func DefaultStats() Stats {
	return Stats{
		GotchiSave:  100,
		CongaJump:   10,
		RedDamage:   -25,
		RedActivate: 5,
		Milkshake:   20,
	}
}

func (s Stats) Value(stat Stat) int {
	switch stat {
	case GOTCHI_SAVE:
		return s.GotchiSave
	case CONGA_JUMP:
		return s.CongaJump
	case RED_DAMAGE:
		return s.RedDamage
	case RED_ACTIVATE:
		return s.RedActivate
	case MILKSHAKE_SIP:
		return s.Milkshake
	default:
		return 0
	}
}

type Event struct {
	Type     EventType
	Id       int32
	Row, Col int
	Stat     Stat
	Delta    int
}

// EventSink receives discrete events. Emit must not block.
type EventSink interface {
	Emit(Event)
}

// EventLog records every event and keeps a running score.
type EventLog struct {
	Events []Event
	Score  int
}

func (l *EventLog) Emit(e Event) {
	l.Events = append(l.Events, e)
	if e.Type == EV_SCORE {
		l.Score += e.Delta
	}
}

func (l *EventLog) Count(t EventType) int {
	n := 0
	for _, e := range l.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Drain returns the recorded events and forgets them. The score is kept.
func (l *EventLog) Drain() []Event {
	out := l.Events
	l.Events = nil
	return out
}
