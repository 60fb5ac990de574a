// Package enginetest provides a recording engine.Engine for controller tests.
package enginetest

import (
	"sync"
	"time"

	"github.com/reel-cli/reel/engine"
)

// SeekCall records one Seek request.
type SeekCall struct {
	Target          time.Duration
	FidelityRelaxed bool
}

// Fake is an in-memory engine that records every outbound call. It is safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	duration time.Duration
	position time.Duration
	paused   bool
	looping  bool
	closed   bool

	// SeekErr, when set, is returned by Seek instead of moving the position.
	SeekErr error
	// PauseErr, when set, is returned by SetPaused and SetLooping.
	PauseErr error

	seeks     []SeekCall
	pauseSets []bool
	loopSets  []bool

	events chan engine.Event
}

// New returns a playing fake engine of the given duration, positioned at zero.
func New(duration time.Duration) *Fake {
	return &Fake{
		duration: duration,
		events:   make(chan engine.Event, 16),
	}
}

// SetPosition moves the reported decode position, as if the engine decoded up to p.
func (f *Fake) SetPosition(p time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = p
}

// Emit pushes an inbound notification. It reports false, and sends nothing, once the engine is closed.
func (f *Fake) Emit(kind engine.EventKind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.events <- engine.Event{Kind: kind, At: time.Now()}
	return true
}

// Seeks returns the recorded Seek calls.
func (f *Fake) Seeks() []SeekCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SeekCall(nil), f.seeks...)
}

// PauseSets returns the values passed to SetPaused, in order.
func (f *Fake) PauseSets() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.pauseSets...)
}

// LoopSets returns the values passed to SetLooping, in order.
func (f *Fake) LoopSets() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.loopSets...)
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) SetPaused(paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseSets = append(f.pauseSets, paused)
	if f.PauseErr != nil {
		return f.PauseErr
	}
	f.paused = paused
	return nil
}

func (f *Fake) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *Fake) SetLooping(looping bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loopSets = append(f.loopSets, looping)
	if f.PauseErr != nil {
		return f.PauseErr
	}
	f.looping = looping
	return nil
}

func (f *Fake) Looping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.looping
}

func (f *Fake) Seek(target time.Duration, fidelityRelaxed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, SeekCall{Target: target, FidelityRelaxed: fidelityRelaxed})
	if f.SeekErr != nil {
		return f.SeekErr
	}
	if target < 0 || target > f.duration {
		return engine.ErrOutOfRange
	}
	f.position = target
	return nil
}

func (f *Fake) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *Fake) Duration() time.Duration {
	return f.duration
}

func (f *Fake) Events() <-chan engine.Event {
	return f.events
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

var _ engine.Engine = (*Fake)(nil)
