package player

import "log"

// Track is the looping music the gate controls. *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// AudioGate keeps the track silent until the first user gesture, then plays
// it at a fixed volume. Mute is applied as volume zero so the track keeps its
// position while muted.
type AudioGate struct {
	track   Track
	volume  float64
	started bool
	muted   bool
	warned  bool
}

func NewAudioGate(track Track, volume float64) *AudioGate {
	return &AudioGate{track: track, volume: volume}
}

// Unlock starts playback on the first call. Later calls do nothing. It
// reports whether this call started the track.
func (g *AudioGate) Unlock() bool {
	if g.started {
		return false
	}
	g.started = true
	if !g.hasTrack() {
		return true
	}
	g.track.SetVolume(g.effectiveVolume())
	g.track.Play()
	return true
}

// ToggleMute flips the mute state and returns the new value.
func (g *AudioGate) ToggleMute() bool {
	g.muted = !g.muted
	if g.started && g.hasTrack() {
		g.track.SetVolume(g.effectiveVolume())
	}
	return g.muted
}

// Restart plays the track again from the beginning, if it was ever started.
func (g *AudioGate) Restart() {
	if !g.started || !g.hasTrack() {
		return
	}
	if err := g.track.Rewind(); err != nil {
		log.Printf("audio: rewind: %v", err)
	}
	g.track.SetVolume(g.effectiveVolume())
	g.track.Play()
}

// Stop pauses the track without forgetting that it was started.
func (g *AudioGate) Stop() {
	if g.hasTrack() && g.track.IsPlaying() {
		g.track.Pause()
	}
}

func (g *AudioGate) Started() bool {
	return g.started
}

func (g *AudioGate) Muted() bool {
	return g.muted
}

func (g *AudioGate) effectiveVolume() float64 {
	if g.muted {
		return 0
	}
	return g.volume
}

func (g *AudioGate) hasTrack() bool {
	if g.track != nil {
		return true
	}
	if !g.warned {
		g.warned = true
		log.Printf("audio: no track loaded, playing silently")
	}
	return false
}
