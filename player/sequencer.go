package player

import (
	"fmt"
	"time"
)

// Sequencer owns the current frame of a flip-book run and the state of the
// run. Everything the clock callback needs is read from the Sequencer at tick
// time, never captured when the clock was armed.
type Sequencer struct {
	total int
	gate  int
	clock Clock

	frame      int
	state      PlaybackState
	gatePassed bool
}

// NewSequencer builds a sequencer over total frames that pauses once at gate.
func NewSequencer(total, gate int, clock Clock) (*Sequencer, error) {
	if total < 2 {
		return nil, fmt.Errorf("sequencer: need at least 2 frames, got %d", total)
	}
	if gate <= 0 || gate >= total-1 {
		return nil, fmt.Errorf("sequencer: gate frame %d outside (0, %d)", gate, total-1)
	}
	if clock == nil {
		return nil, fmt.Errorf("sequencer: clock is nil")
	}
	return &Sequencer{total: total, gate: gate, clock: clock}, nil
}

// Start arms the clock at the current frame.
func (s *Sequencer) Start(now time.Time) {
	if s.state == Playing {
		s.clock.Start(now)
	}
}

// Stop disarms the clock without changing the run state.
func (s *Sequencer) Stop() {
	s.clock.Stop()
}

// Tick commits at most one frame when the clock says one is due. It reports
// whether the committed frame changed.
func (s *Sequencer) Tick(now time.Time) bool {
	if s.state != Playing || !s.clock.Due(now) {
		return false
	}

	last := s.total - 1
	next := min(s.frame+1, last)
	prev := s.frame

	switch {
	case !s.gatePassed && next >= s.gate:
		s.frame = s.gate
		s.state = PausedAtGate
		s.gatePassed = true
		s.clock.Stop()
	case next >= last:
		s.frame = last
		s.state = Completed
		s.clock.Stop()
	default:
		s.frame = next
	}

	return s.frame != prev
}

// Resume continues a run that is waiting at the gate frame. It reports false
// in any other state.
func (s *Sequencer) Resume(now time.Time) bool {
	if s.state != PausedAtGate {
		return false
	}
	s.state = Playing
	s.clock.Start(now)
	return true
}

// Restart rewinds to frame 0 and plays again; the gate will trigger again.
func (s *Sequencer) Restart(now time.Time) {
	s.clock.Stop()
	s.frame = 0
	s.state = Playing
	s.gatePassed = false
	s.clock.Start(now)
}

func (s *Sequencer) Frame() int {
	return s.frame
}

func (s *Sequencer) State() PlaybackState {
	return s.state
}

func (s *Sequencer) IsPlaying() bool {
	return s.state == Playing
}

// HasPaused reports whether the gate has been hit during this run.
func (s *Sequencer) HasPaused() bool {
	return s.gatePassed
}

func (s *Sequencer) IsComplete() bool {
	return s.state == Completed
}

func (s *Sequencer) TotalFrames() int {
	return s.total
}

func (s *Sequencer) GateFrame() int {
	return s.gate
}

// Running reports whether the clock is armed.
func (s *Sequencer) Running() bool {
	return s.clock.Running()
}
