package model

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timings in seconds. Logical state never waits on these; they only gate
// status flips back to WAITING and deferred effects such as chained
// detonations.
const (
	CongaStepDuration = float32(60.0 / 140.0)
	StepDuration      = CongaStepDuration * .5
	JumpDuration      = CongaStepDuration * .5
	TeleportDuration  = float32(.5)
	FuseDuration      = float32(.3)
	FlashDuration     = float32(.25)
	TickDuration      = float32(.02)
)

type scheduled struct {
	tween    *gween.Tween
	onFinish func()
}

// Scheduler runs deferred effects at simulation ticks. Each entry is a tween
// over its delay; when the tween finishes, its callback runs. Entries added
// by a callback are first updated on the following tick.
type Scheduler struct {
	queue []scheduled
}

func NewScheduler() *Scheduler {
	return &Scheduler{queue: make([]scheduled, 0)}
}

func (s *Scheduler) After(delay float32, f func()) {
	s.queue = append(s.queue, scheduled{
		tween:    gween.New(0, 1, delay, ease.Linear),
		onFinish: f,
	})
}

// Update advances every pending entry by dt, in insertion order.
func (s *Scheduler) Update(dt float32) {
	current := s.queue
	s.queue = make([]scheduled, 0, len(current))
	var finished []func()
	for _, e := range current {
		if _, done := e.tween.Update(dt); done {
			finished = append(finished, e.onFinish)
			continue
		}
		s.queue = append(s.queue, e)
	}
	for _, f := range finished {
		f()
	}
}

func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Clear drops every pending entry without running it.
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
}
