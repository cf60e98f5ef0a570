package player

// PlaybackState is the sequencer's position in its run.
//
// Playing -> PausedAtGate -> Playing -> Completed. Restart returns to Playing
// from any state.
type PlaybackState int

const (
	Playing PlaybackState = iota
	PausedAtGate
	Completed
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case PausedAtGate:
		return "paused_at_gate"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}
