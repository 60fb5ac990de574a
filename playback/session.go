package playback

import (
	"context"
	"fmt"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/log"
)

// Session groups the engine and the controller of one open media source. They are created
// together once the duration is known and torn down together by Close.
type Session struct {
	source     string
	engine     engine.Engine
	controller *Controller
}

// NewSession binds a controller to an opened engine. It fails with *engine.OpenError when the
// engine has not reported a duration.
func NewSession(source string, e engine.Engine, options Options) (*Session, error) {
	if e.Duration() <= 0 {
		_ = e.Close()
		return nil, &engine.OpenError{Source: source, Err: fmt.Errorf("%w: duration unknown", engine.ErrNotOpen)}
	}

	log.Infof("session opened for %s (duration %s)", source, e.Duration())
	return &Session{
		source:     source,
		engine:     e,
		controller: NewController(e, options),
	}, nil
}

// Open starts an engine of the given kind on source and wraps it in a session.
func Open(ctx context.Context, kind engine.Kind, source string, engineOptions engine.Options, options Options) (*Session, error) {
	e, err := engine.Open(ctx, kind, source, engineOptions)
	if err != nil {
		return nil, err
	}
	return NewSession(source, e, options)
}

// Apply feeds one command to the controller and returns the resulting snapshot. The only error
// it returns is a *SeekError from CommitSeek.
func (s *Session) Apply(cmd Command) (Snapshot, error) {
	var err error

	if IsUserCommand(cmd) {
		log.Debugf("apply %s", cmd)
	}

	switch c := cmd.(type) {
	case TogglePause:
		s.controller.TogglePause()
	case ToggleLoop:
		s.controller.ToggleLoop()
	case BeginSeek:
		s.controller.BeginSeek(c.Target)
	case UpdateSeek:
		s.controller.UpdateSeek(c.Target)
	case CommitSeek:
		err = s.controller.CommitSeek()
	case RawInput:
		s.controller.NoteInteraction()
	case FrameReady:
		s.controller.OnEngineTick()
	case EndOfStream:
		s.controller.OnEndOfStream()
	case UITick:
		s.controller.OnUITick(c.Now)
	case Status:
	default:
		log.Warnf("unknown command %T", cmd)
	}

	return s.controller.Snapshot(), err
}

// Snapshot returns the current presentation view.
func (s *Session) Snapshot() Snapshot {
	return s.controller.Snapshot()
}

// Source returns the media source the session was opened on.
func (s *Session) Source() string {
	return s.source
}

// Events returns the engine notification stream.
func (s *Session) Events() <-chan engine.Event {
	return s.engine.Events()
}

// Close shuts the engine down.
func (s *Session) Close() error {
	log.Infof("closing session for %s", s.source)
	return s.engine.Close()
}

// FromEvent converts an engine notification into a command.
func FromEvent(e engine.Event) Command {
	switch e.Kind {
	case engine.EndOfStream:
		return EndOfStream{}
	default:
		return FrameReady{}
	}
}
