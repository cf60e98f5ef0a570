package player

import (
	"math"
	"time"
)

// maxBacklogFrames caps how many owed frames a DriftClock remembers. A window
// that was hidden or suspended resumes near where it stopped instead of
// racing through the sequence.
const maxBacklogFrames = 5

// Clock decides when the sequencer owes the next frame.
type Clock interface {
	// Start arms the clock. The first frame is due one interval after now.
	Start(now time.Time)
	// Stop disarms the clock; Due reports false until Start is called again.
	Stop()
	// Due reports whether one frame should be committed at now. It reports
	// at most one frame per call.
	Due(now time.Time) bool
	Running() bool
}

// DriftClock carries leftover elapsed time forward between frames so the
// long-run frame rate stays on target under update jitter. The one exception
// is a stall longer than maxBacklogFrames intervals: time beyond the cap is
// dropped.
type DriftClock struct {
	interval time.Duration
	running  bool
	last     time.Time
	backlog  time.Duration
}

func NewDriftClock(interval time.Duration) *DriftClock {
	return &DriftClock{interval: interval}
}

func (c *DriftClock) Start(now time.Time) {
	c.running = true
	c.last = now
	c.backlog = 0
}

func (c *DriftClock) Stop() {
	c.running = false
	c.backlog = 0
}

func (c *DriftClock) Running() bool {
	return c.running
}

func (c *DriftClock) Due(now time.Time) bool {
	if !c.running || c.interval <= 0 {
		return false
	}

	if elapsed := now.Sub(c.last); elapsed > 0 {
		c.backlog += elapsed
		c.last = now
	}
	if limit := c.interval * maxBacklogFrames; c.backlog > limit {
		c.backlog = limit
	}

	if c.backlog < c.interval {
		return false
	}
	c.backlog -= c.interval
	return true
}

// IntervalClock reports a frame every fixed number of game updates, the way
// a plain interval timer would. It ignores wall time, so it drifts whenever
// the update rate does.
type IntervalClock struct {
	ticksPerFrame int
	ticks         int
	running       bool
}

// NewIntervalClock builds a clock for a loop running at tps updates per
// second that should advance fps frames per second.
func NewIntervalClock(tps int, fps float64) *IntervalClock {
	ticks := 1
	if fps > 0 {
		ticks = int(math.Round(float64(tps) / fps))
		if ticks < 1 {
			ticks = 1
		}
	}
	return &IntervalClock{ticksPerFrame: ticks}
}

func (c *IntervalClock) Start(time.Time) {
	c.running = true
	c.ticks = 0
}

func (c *IntervalClock) Stop() {
	c.running = false
	c.ticks = 0
}

func (c *IntervalClock) Running() bool {
	return c.running
}

func (c *IntervalClock) Due(time.Time) bool {
	if !c.running {
		return false
	}
	c.ticks++
	if c.ticks < c.ticksPerFrame {
		return false
	}
	c.ticks = 0
	return true
}
