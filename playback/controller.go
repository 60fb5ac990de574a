package playback

import (
	"time"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/util"
)

// Options tunes a Controller.
type Options struct {
	// IdleThreshold defaults to DefaultIdleThreshold.
	IdleThreshold time.Duration

	// StartPaused and Loop set the initial transport flags and are pushed to the engine.
	StartPaused bool
	Loop        bool

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Controller owns the transport state and the armed seek target, and translates commands
// into engine calls.
type Controller struct {
	engine      engine.Engine
	seek        SeekCoordinator
	interaction *InteractionTimer
	now         func() time.Time

	state State

	// enginePosition is the position recorded by the last applied engine tick.
	enginePosition time.Duration
	endOfStream    int
}

// NewController binds a controller to an engine that has already reported its duration.
func NewController(e engine.Engine, options Options) *Controller {
	now := options.Clock
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		engine:      e,
		interaction: NewInteractionTimer(options.IdleThreshold, now()),
		now:         now,
		state: State{
			Duration: e.Duration(),
		},
	}

	c.enginePosition = c.clamp(e.Position())
	c.state.Position = c.enginePosition

	if options.StartPaused {
		c.state.Paused = true
		c.setEnginePaused(true)
	}
	if options.Loop {
		c.state.Looping = true
		c.setEngineLooping(true)
	}

	return c
}

func (c *Controller) clamp(p time.Duration) time.Duration {
	return util.Clamp(p, 0, c.state.Duration)
}

func (c *Controller) setEnginePaused(paused bool) {
	if err := c.engine.SetPaused(paused); err != nil {
		log.Warnf("engine set paused=%t: %v", paused, err)
	}
}

func (c *Controller) setEngineLooping(looping bool) {
	if err := c.engine.SetLooping(looping); err != nil {
		log.Warnf("engine set looping=%t: %v", looping, err)
	}
}

// NoteInteraction records ambient input such as pointer motion or a key press.
func (c *Controller) NoteInteraction() {
	c.interaction.NoteInteraction(c.now())
}

// TogglePause flips the pause state.
func (c *Controller) TogglePause() {
	c.state.Paused = !c.state.Paused
	c.setEnginePaused(c.state.Paused)
	c.NoteInteraction()
	log.Debugf("paused=%t", c.state.Paused)
}

// ToggleLoop flips the loop flag.
func (c *Controller) ToggleLoop() {
	c.state.Looping = !c.state.Looping
	c.setEngineLooping(c.state.Looping)
	c.NoteInteraction()
	log.Debugf("looping=%t", c.state.Looping)
}

// BeginSeek starts a drag at target and pauses the engine. The pause state from before the
// drag is not restored on commit. Calling it mid-drag behaves as UpdateSeek.
func (c *Controller) BeginSeek(target time.Duration) {
	if c.seek.Dragging() {
		c.UpdateSeek(target)
		return
	}

	target = c.clamp(target)
	c.seek.BeginDrag(target)
	c.state.Position = target
	c.state.Paused = true
	c.setEnginePaused(true)
	c.NoteInteraction()
	log.Debugf("seek drag started at %s", target)
}

// UpdateSeek moves the drag target without touching the engine. It is ignored when no drag
// is in progress.
func (c *Controller) UpdateSeek(target time.Duration) {
	target = c.clamp(target)
	if !c.seek.UpdateDrag(target) {
		log.Tracef("seek update to %s ignored, not dragging", target)
		return
	}
	c.state.Position = target
	c.NoteInteraction()
}

// CommitSeek ends the drag and issues exactly one frame-accurate seek to the armed target,
// then resumes playback. A commit with no drag in progress does nothing.
//
// When the engine rejects the seek the controller stays paused, the position reverts to the
// last engine-reported one and a *SeekError is returned.
func (c *Controller) CommitSeek() error {
	target, ok := c.seek.Commit().Get()
	if !ok {
		return nil
	}
	c.NoteInteraction()

	if err := c.engine.Seek(target, false); err != nil {
		c.state.Paused = true
		c.setEnginePaused(true)
		c.state.Position = c.enginePosition
		log.Errorf("seek to %s rejected: %v", target, err)
		return &SeekError{Target: target, Err: err}
	}

	c.enginePosition = target
	c.state.Position = target
	c.state.Paused = false
	c.setEnginePaused(false)
	log.Debugf("seek committed to %s", target)
	return nil
}

// OnEngineTick pulls the engine position into the displayed one. It is the only way the
// position advances; ticks arriving mid-drag are dropped.
func (c *Controller) OnEngineTick() {
	if c.seek.Dragging() {
		log.Tracef("engine tick suppressed while dragging")
		return
	}
	c.enginePosition = c.clamp(c.engine.Position())
	c.state.Position = c.enginePosition
}

// OnEndOfStream records that the engine reached the end. Looping is the engine's job.
func (c *Controller) OnEndOfStream() {
	c.endOfStream++
	log.Infof("end of stream (%d), looping=%t", c.endOfStream, c.state.Looping)
}

// OnUITick lets the overlay hide once the idle threshold has passed.
func (c *Controller) OnUITick(now time.Time) {
	c.interaction.Tick(now, c.seek.Dragging())
}

// State returns the transport state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns a presentation view of the controller.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Paused:           c.state.Paused,
		Looping:          c.state.Looping,
		Position:         c.state.Position,
		Duration:         c.state.Duration,
		ControlsVisible:  c.interaction.Visible(),
		Dragging:         c.seek.Dragging(),
		EndOfStreamCount: c.endOfStream,
	}
}
