// Package engine defines the capability set reel requires from an external media engine,
// together with the mpv-backed and virtual-clock implementations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies an engine implementation.
type Kind string

const (
	// KindMPV drives an mpv process over its JSON-IPC socket.
	KindMPV Kind = "mpv"

	// KindVirtual is a decode-less media clock.
	KindVirtual Kind = "virtual"
)

// AvailableKinds returns the identifiers of all registered engines.
func AvailableKinds() []string {
	return []string{string(KindMPV), string(KindVirtual)}
}

// EventKind classifies inbound engine notifications.
type EventKind int

const (
	// FrameReady signals that a new decoded frame (and position) is available.
	FrameReady EventKind = iota

	// EndOfStream signals that playback reached the end of the media.
	EndOfStream
)

func (k EventKind) String() string {
	switch k {
	case FrameReady:
		return "frame-ready"
	case EndOfStream:
		return "end-of-stream"
	default:
		return "unknown"
	}
}

// Event is a notification pushed by the engine at its own cadence.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Engine is the narrow interface through which the playback controller talks to a decoder.
// Outbound calls are synchronous requests fulfilled asynchronously by the engine.
type Engine interface {
	// SetPaused requests the engine to suspend or resume decoding.
	SetPaused(paused bool) error

	// Paused reports the engine's last known pause state.
	Paused() bool

	// SetLooping instructs the engine to restart at end of stream.
	SetLooping(looping bool) error

	// Looping reports the engine's loop flag.
	Looping() bool

	// Seek moves the decode position to target. When fidelityRelaxed is false the seek is
	// frame-accurate rather than snapping to the nearest keyframe.
	Seek(target time.Duration, fidelityRelaxed bool) error

	// Position returns the last reported decode position.
	Position() time.Duration

	// Duration returns the total media length, fixed once the source is loaded.
	Duration() time.Duration

	// Events returns the notification stream. It is closed when the engine shuts down.
	Events() <-chan Event

	// Close stops the engine and releases its resources.
	Close() error
}

// Sentinel engine-boundary failures.
var (
	ErrOutOfRange = errors.New("seek target out of range")
	ErrNotOpen    = errors.New("stream is not open")
	ErrClosed     = errors.New("engine closed")
)

// OpenError reports that a media source could not be opened. It is unrecoverable for the session.
type OpenError struct {
	Source string
	Engine Kind
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s with %s: %v", e.Source, e.Engine, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Options tunes engine construction.
type Options struct {
	// Duration is used by the virtual engine when the source does not encode one.
	Duration time.Duration

	// FPS is the virtual engine frame rate.
	FPS int

	// ExtraArgs are appended to the mpv command line.
	ExtraArgs []string
}

// Open starts the engine of the given kind on source and waits until the media duration is known.
func Open(ctx context.Context, kind Kind, source string, options Options) (Engine, error) {
	var (
		e   Engine
		err error
	)

	switch Kind(strings.ToLower(string(kind))) {
	case KindMPV:
		e, err = OpenMPV(ctx, source, options.ExtraArgs)
	case KindVirtual:
		e, err = OpenVirtual(source, options.Duration, options.FPS)
	default:
		err = fmt.Errorf("unknown engine %q, available: %s", kind, strings.Join(AvailableKinds(), ", "))
	}

	if err != nil {
		var openErr *OpenError
		if errors.As(err, &openErr) {
			return nil, openErr
		}
		return nil, &OpenError{Source: source, Engine: kind, Err: err}
	}

	return e, nil
}
