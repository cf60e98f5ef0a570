package player

import (
	"time"
)

const (
	MuteLabel    = "Mute"
	UnmuteLabel  = "Unmute"
	RestartLabel = "Restart"
)

// Options configures a Player.
type Options struct {
	TotalFrames  int
	GateFrame    int
	PreloadAhead int
	Clock        Clock
	Fetcher      Fetcher
	Track        Track
	Volume       float64
}

// Player is the flip-book widget: a sequencer driven by a clock, a preloader
// following the visible frame, and an audio gate unlocked by user gestures.
// All methods must be called from the game update loop.
type Player struct {
	seq     *Sequencer
	preload *Preloader
	gate    *AudioGate
	closed  bool
}

func New(opts Options) (*Player, error) {
	seq, err := NewSequencer(opts.TotalFrames, opts.GateFrame, opts.Clock)
	if err != nil {
		return nil, err
	}
	return &Player{
		seq:     seq,
		preload: NewPreloader(opts.Fetcher, opts.TotalFrames, opts.PreloadAhead),
		gate:    NewAudioGate(opts.Track, opts.Volume),
	}, nil
}

// Mount starts the run at frame 0 and warms the first frames.
func (p *Player) Mount(now time.Time) {
	p.seq.Start(now)
	p.preload.Observe(p.seq.Frame())
}

// Update advances the sequencer and warms upcoming frames when the visible
// frame changed. It reports whether the frame changed.
func (p *Player) Update(now time.Time) bool {
	if p.closed {
		return false
	}
	if !p.seq.Tick(now) {
		return false
	}
	p.preload.Observe(p.seq.Frame())
	return true
}

// OnMainAreaClick handles a click anywhere on the widget outside the
// controls.
func (p *Player) OnMainAreaClick(now time.Time) {
	if p.closed {
		return
	}
	p.gate.Unlock()
	if p.seq.State() == PausedAtGate {
		p.seq.Resume(now)
	}
}

// OnMuteToggle handles the mute button. The caller must not also deliver the
// same click to OnMainAreaClick.
func (p *Player) OnMuteToggle() {
	if p.closed {
		return
	}
	p.gate.Unlock()
	p.gate.ToggleMute()
}

// OnRestart handles the restart button. The caller must not also deliver the
// same click to OnMainAreaClick.
func (p *Player) OnRestart(now time.Time) {
	if p.closed {
		return
	}
	p.gate.Unlock()
	p.seq.Restart(now)
	p.preload.Reset()
	p.preload.Observe(p.seq.Frame())
	p.gate.Restart()
}

// Close stops the clock and the track. The player ignores input afterwards.
func (p *Player) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.seq.Stop()
	p.gate.Stop()
}

func (p *Player) Frame() int {
	return p.seq.Frame()
}

func (p *Player) State() PlaybackState {
	return p.seq.State()
}

func (p *Player) Sequencer() *Sequencer {
	return p.seq
}

func (p *Player) Preloader() *Preloader {
	return p.preload
}

func (p *Player) Gate() *AudioGate {
	return p.gate
}

// ShowContinueHint reports whether the "click to continue" hint is visible.
func (p *Player) ShowContinueHint() bool {
	return p.seq.State() == PausedAtGate
}

// MuteLabel names the action the mute button performs next.
func (p *Player) MuteLabel() string {
	if p.gate.Muted() {
		return UnmuteLabel
	}
	return MuteLabel
}
