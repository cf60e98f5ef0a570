package player

import (
	"errors"
	"testing"
	"time"
)

type fakeTrack struct {
	plays   int
	pauses  int
	rewinds int
	volume  float64
	playing bool
	rewind  error
}

func (f *fakeTrack) Play() {
	f.plays++
	f.playing = true
}

func (f *fakeTrack) Pause() {
	f.pauses++
	f.playing = false
}

func (f *fakeTrack) Rewind() error {
	f.rewinds++
	return f.rewind
}

func (f *fakeTrack) SetVolume(v float64) {
	f.volume = v
}

func (f *fakeTrack) IsPlaying() bool {
	return f.playing
}

func newTestPlayer(t *testing.T) (*Player, *fakeTrack, *recordingFetcher) {
	t.Helper()
	track := &fakeTrack{}
	fetcher := &recordingFetcher{}
	p, err := New(Options{
		TotalFrames:  135,
		GateFrame:    50,
		PreloadAhead: 5,
		Clock:        NewDriftClock(testInterval),
		Fetcher:      fetcher,
		Track:        track,
		Volume:       0.5,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Mount(epoch)
	return p, track, fetcher
}

func run(p *Player, now time.Time, n int) time.Time {
	for i := 0; i < n; i++ {
		now = now.Add(testInterval)
		p.Update(now)
	}
	return now
}

func TestAudioGateStartsOnce(t *testing.T) {
	track := &fakeTrack{}
	g := NewAudioGate(track, 0.5)

	if !g.Unlock() {
		t.Fatalf("first unlock should start audio")
	}
	for i := 0; i < 5; i++ {
		if g.Unlock() {
			t.Fatalf("unlock %d should be a no-op", i)
		}
	}
	if track.plays != 1 {
		t.Fatalf("expected one play, got %d", track.plays)
	}
	if track.volume != 0.5 {
		t.Fatalf("expected volume 0.5, got %v", track.volume)
	}
}

func TestAudioGateMute(t *testing.T) {
	track := &fakeTrack{}
	g := NewAudioGate(track, 0.5)

	if !g.ToggleMute() {
		t.Fatalf("expected muted")
	}
	if track.plays != 0 {
		t.Fatalf("mute alone must not start audio")
	}

	g.Unlock()
	if track.volume != 0 {
		t.Fatalf("muted start should use volume 0, got %v", track.volume)
	}
	if g.ToggleMute() {
		t.Fatalf("expected unmuted")
	}
	if track.volume != 0.5 {
		t.Fatalf("expected volume restored to 0.5, got %v", track.volume)
	}
}

func TestAudioGateRestart(t *testing.T) {
	track := &fakeTrack{}
	g := NewAudioGate(track, 0.5)

	g.Restart()
	if track.rewinds != 0 || track.plays != 0 {
		t.Fatalf("restart before unlock must not touch the track")
	}

	g.Unlock()
	g.Restart()
	g.Restart()
	if track.rewinds != 2 || track.plays != 3 {
		t.Fatalf("expected 2 rewinds and 3 plays, got %d and %d", track.rewinds, track.plays)
	}

	track.rewind = errors.New("seek failed")
	g.Restart()
	if track.plays != 4 {
		t.Fatalf("rewind errors should not block play, got %d plays", track.plays)
	}
}

func TestAudioGateWithoutTrack(t *testing.T) {
	g := NewAudioGate(nil, 0.5)
	if !g.Unlock() {
		t.Fatalf("unlock should still record the gesture")
	}
	g.ToggleMute()
	g.Restart()
	g.Stop()
	if !g.Started() || !g.Muted() {
		t.Fatalf("state should be tracked without a track")
	}
}

func TestPlayerMountPreloadsAhead(t *testing.T) {
	p, track, fetcher := newTestPlayer(t)
	if len(fetcher.frames) != 5 {
		t.Fatalf("expected 5 prefetches at mount, got %v", fetcher.frames)
	}
	if track.plays != 0 {
		t.Fatalf("audio must wait for a gesture")
	}

	run(p, epoch, 3)
	if p.Frame() != 3 {
		t.Fatalf("expected frame 3, got %d", p.Frame())
	}
	if last := fetcher.frames[len(fetcher.frames)-1]; last != 8 {
		t.Fatalf("expected preload to reach frame 8, got %d", last)
	}
}

func TestPlayerClickResumesFromGate(t *testing.T) {
	p, track, _ := newTestPlayer(t)
	now := run(p, epoch, 10)

	p.OnMainAreaClick(now)
	if p.State() != Playing || p.Frame() != 10 {
		t.Fatalf("click while playing must not change playback, got %v at %d", p.State(), p.Frame())
	}

	now = run(p, now, 60)
	if p.State() != PausedAtGate || !p.ShowContinueHint() {
		t.Fatalf("expected gate, got %v", p.State())
	}

	p.OnMainAreaClick(now)
	if p.State() != Playing {
		t.Fatalf("click should resume, got %v", p.State())
	}
	if p.ShowContinueHint() {
		t.Fatalf("hint should hide after resume")
	}
	if track.plays != 1 {
		t.Fatalf("expected one play across gestures, got %d", track.plays)
	}

	run(p, now, 100)
	if p.State() != Completed || p.Frame() != 134 {
		t.Fatalf("expected completion, got %v at %d", p.State(), p.Frame())
	}
}

func TestPlayerMuteDoesNotResume(t *testing.T) {
	p, track, _ := newTestPlayer(t)
	run(p, epoch, 60)

	p.OnMuteToggle()
	if p.State() != PausedAtGate {
		t.Fatalf("mute must not resume, got %v", p.State())
	}
	if p.MuteLabel() != UnmuteLabel {
		t.Fatalf("expected %q label, got %q", UnmuteLabel, p.MuteLabel())
	}
	if track.plays != 1 || track.volume != 0 {
		t.Fatalf("mute gesture should unlock muted audio, plays=%d volume=%v", track.plays, track.volume)
	}

	p.OnMuteToggle()
	if p.MuteLabel() != MuteLabel || track.volume != 0.5 {
		t.Fatalf("second toggle should unmute")
	}
}

func TestPlayerRestart(t *testing.T) {
	p, track, fetcher := newTestPlayer(t)
	now := run(p, epoch, 60)
	p.OnMainAreaClick(now)
	now = run(p, now, 30)

	before := len(fetcher.frames)
	p.OnRestart(now)

	if p.Frame() != 0 || p.State() != Playing {
		t.Fatalf("restart should reset, got %v at %d", p.State(), p.Frame())
	}
	if got := fetcher.frames[before:]; len(got) != 5 || got[0] != 1 {
		t.Fatalf("expected frames 1..5 fetched again, got %v", got)
	}
	if p.Preloader().Len() != 5 {
		t.Fatalf("expected fresh preload set, got %d", p.Preloader().Len())
	}
	if last := fetcher.seeks[len(fetcher.seeks)-1]; last != 0 {
		t.Fatalf("restart should move the fetcher back to frame 0, got %d", last)
	}
	if track.rewinds != 1 || track.plays != 2 {
		t.Fatalf("restart should rewind and replay, rewinds=%d plays=%d", track.rewinds, track.plays)
	}

	run(p, now, 60)
	if p.State() != PausedAtGate || p.Frame() != 50 {
		t.Fatalf("second run should pause at the gate, got %v at %d", p.State(), p.Frame())
	}
}

func TestPlayerRestartIsAGesture(t *testing.T) {
	p, track, _ := newTestPlayer(t)
	now := run(p, epoch, 5)

	p.OnRestart(now)
	if !p.Gate().Started() {
		t.Fatalf("restart should unlock audio")
	}
	if track.rewinds != 1 {
		t.Fatalf("restart should seek to zero, got %d rewinds", track.rewinds)
	}
}

func TestPlayerClose(t *testing.T) {
	p, track, _ := newTestPlayer(t)
	now := run(p, epoch, 5)
	p.OnMainAreaClick(now)

	p.Close()
	frame := p.Frame()
	run(p, now, 20)
	if p.Frame() != frame {
		t.Fatalf("closed player must not advance")
	}
	if track.playing {
		t.Fatalf("close should pause the track")
	}

	p.OnRestart(now)
	if p.Frame() != frame {
		t.Fatalf("closed player must ignore restart")
	}
}

func TestPlayerSequencerBounds(t *testing.T) {
	p, _, _ := newTestPlayer(t)
	seq := p.Sequencer()
	if seq.TotalFrames() != 135 || seq.GateFrame() != 50 {
		t.Fatalf("expected 135 frames gated at 50, got %d gated at %d", seq.TotalFrames(), seq.GateFrame())
	}
}
