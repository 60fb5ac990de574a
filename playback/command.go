package playback

import (
	"fmt"
	"time"
)

// Command is one entry of the ordered stream a Session consumes. User commands, engine
// notifications and UI refreshes share the stream so they are applied in arrival order.
type Command interface {
	fmt.Stringer
	command()
}

// InputKind classifies ambient input.
type InputKind int

const (
	InputPointer InputKind = iota
	InputKey
	InputOther
)

func (k InputKind) String() string {
	switch k {
	case InputPointer:
		return "pointer"
	case InputKey:
		return "key"
	default:
		return "other"
	}
}

type (
	TogglePause struct{}
	ToggleLoop  struct{}

	BeginSeek struct {
		Target time.Duration
	}

	UpdateSeek struct {
		Target time.Duration
	}

	CommitSeek struct{}

	// RawInput is activity that only keeps the controls visible.
	RawInput struct {
		Kind InputKind
	}

	// FrameReady is forwarded from the engine when a new position is available.
	FrameReady struct{}

	// EndOfStream is forwarded from the engine when the media ends.
	EndOfStream struct{}

	// UITick is the periodic refresh that lets the overlay hide.
	UITick struct {
		Now time.Time
	}

	// Status asks for a snapshot without changing anything.
	Status struct{}
)

func (TogglePause) command() {}
func (ToggleLoop) command() {}
func (BeginSeek) command() {}
func (UpdateSeek) command() {}
func (CommitSeek) command() {}
func (RawInput) command() {}
func (FrameReady) command() {}
func (EndOfStream) command() {}
func (UITick) command() {}
func (Status) command() {}

func (TogglePause) String() string { return "toggle-pause" }
func (ToggleLoop) String() string { return "toggle-loop" }
func (c BeginSeek) String() string { return fmt.Sprintf("begin-seek(%s)", c.Target) }
func (c UpdateSeek) String() string { return fmt.Sprintf("update-seek(%s)", c.Target) }
func (CommitSeek) String() string { return "commit-seek" }
func (c RawInput) String() string { return fmt.Sprintf("input(%s)", c.Kind) }
func (FrameReady) String() string { return "frame-ready" }
func (EndOfStream) String() string { return "end-of-stream" }
func (UITick) String() string { return "ui-tick" }
func (Status) String() string { return "status" }

// IsUserCommand reports whether cmd is a user action rather than an engine, timer or status notification.
func IsUserCommand(cmd Command) bool {
	switch cmd.(type) {
	case FrameReady, EndOfStream, UITick, Status:
		return false
	default:
		return true
	}
}
