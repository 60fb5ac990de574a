package playback

import (
	"time"

	"github.com/samber/mo"
)

// SeekCoordinator is the two-phase drag state machine. While a drag is in progress the
// target moves freely; the engine is only told about it on Commit.
type SeekCoordinator struct {
	target mo.Option[time.Duration]
}

// BeginDrag arms target. Calling it mid-drag just moves the target.
func (s *SeekCoordinator) BeginDrag(target time.Duration) {
	s.target = mo.Some(target)
}

// UpdateDrag moves the armed target. It reports false, and does nothing, when no drag is in progress.
func (s *SeekCoordinator) UpdateDrag(target time.Duration) bool {
	if s.target.IsAbsent() {
		return false
	}
	s.target = mo.Some(target)
	return true
}

// Commit ends the drag and hands back the armed target, or None when idle.
func (s *SeekCoordinator) Commit() mo.Option[time.Duration] {
	target := s.target
	s.target = mo.None[time.Duration]()
	return target
}

func (s *SeekCoordinator) Dragging() bool {
	return s.target.IsPresent()
}

func (s *SeekCoordinator) Target() mo.Option[time.Duration] {
	return s.target
}
