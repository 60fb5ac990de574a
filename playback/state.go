// Package playback reconciles a free-running media clock with discrete transport commands.
//
// A Controller owns the authoritative transport state for one open media source. It never
// blocks and holds no locks: a single dispatch loop (Loop, or the terminal UI) feeds it an
// ordered stream of Commands through a Session.
package playback

import "time"

// State is the authoritative transport state.
type State struct {
	Paused   bool
	Looping  bool
	Position time.Duration
	Duration time.Duration
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	Paused           bool          `json:"paused"`
	Looping          bool          `json:"looping"`
	Position         time.Duration `json:"position"`
	Duration         time.Duration `json:"duration"`
	ControlsVisible  bool          `json:"controls_visible"`
	Dragging         bool          `json:"dragging"`
	EndOfStreamCount int           `json:"end_of_stream_count"`
}

// Progress is the displayed position as a fraction of the duration.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Position) / float64(s.Duration)
}
