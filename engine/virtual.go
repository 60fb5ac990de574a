package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// VirtualScheme prefixes sources that encode their own length, e.g. "virtual://2m30s".
const VirtualScheme = "virtual://"

// DefaultFPS is the virtual engine frame rate when none is configured.
const DefaultFPS = 25

// Virtual is a decode-less media clock. It advances in real time while playing and emits
// FrameReady at a fixed frame rate.
type Virtual struct {
	mu       sync.Mutex
	duration time.Duration
	base     time.Duration // position at anchor
	anchor   time.Time
	paused   bool
	looping  bool
	ended    bool
	fps      int
	now      func() time.Time

	events    chan Event
	stop      chan struct{}
	closeOnce sync.Once
}

// OpenVirtual starts a virtual clock for source. The duration comes from a virtual:// source
// or, failing that, from fallback.
func OpenVirtual(source string, fallback time.Duration, fps int) (*Virtual, error) {
	duration, err := parseVirtualSource(source, fallback)
	if err != nil {
		return nil, &OpenError{Source: source, Engine: KindVirtual, Err: err}
	}

	v := newVirtual(duration, fps, time.Now)
	go v.run()
	return v, nil
}

func newVirtual(duration time.Duration, fps int, now func() time.Time) *Virtual {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Virtual{
		duration: duration,
		fps:      fps,
		now:      now,
		anchor:   now(),
		events:   make(chan Event, eventBuffer),
		stop:     make(chan struct{}),
	}
}

func parseVirtualSource(source string, fallback time.Duration) (time.Duration, error) {
	duration := fallback
	if rest, ok := strings.CutPrefix(source, VirtualScheme); ok && rest != "" {
		parsed, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("parse virtual duration: %w", err)
		}
		duration = parsed
	}

	if duration <= 0 {
		return 0, fmt.Errorf("%w: virtual source needs a positive duration", ErrNotOpen)
	}
	return duration, nil
}

// positionLocked computes the clock position; callers hold v.mu.
func (v *Virtual) positionLocked() time.Duration {
	if v.paused || v.ended {
		return v.base
	}

	pos := v.base + v.now().Sub(v.anchor)
	if pos < v.duration {
		return pos
	}
	if v.looping {
		return pos % v.duration
	}
	return v.duration
}

// rebase folds elapsed wall time into base so state changes take effect from now.
func (v *Virtual) rebase() {
	v.base = v.positionLocked()
	v.anchor = v.now()
}

func (v *Virtual) run() {
	defer close(v.events)

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.C:
			if v.advance() {
				select {
				case v.events <- Event{Kind: EndOfStream, At: v.now()}:
				case <-v.stop:
					return
				}
				continue
			}

			select {
			case v.events <- Event{Kind: FrameReady, At: v.now()}:
			default:
			}
		}
	}
}

// advance reports whether the clock just reached the end of a non-looping stream.
func (v *Virtual) advance() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.paused || v.ended {
		return false
	}

	if pos := v.positionLocked(); pos >= v.duration && !v.looping {
		v.base = v.duration
		v.ended = true
		return true
	}
	return false
}

func (v *Virtual) closed() bool {
	select {
	case <-v.stop:
		return true
	default:
		return false
	}
}

// SetPaused implements Engine.
func (v *Virtual) SetPaused(paused bool) error {
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rebase()
	v.paused = paused
	return nil
}

// Paused implements Engine.
func (v *Virtual) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

// SetLooping implements Engine.
func (v *Virtual) SetLooping(looping bool) error {
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rebase()
	v.looping = looping
	return nil
}

// Looping implements Engine.
func (v *Virtual) Looping() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.looping
}

// Seek implements Engine. The virtual clock has no keyframes, so fidelity is always exact.
func (v *Virtual) Seek(target time.Duration, _ bool) error {
	if v.closed() {
		return ErrClosed
	}
	if target < 0 || target > v.duration {
		return fmt.Errorf("%w: %s not in [0, %s]", ErrOutOfRange, target, v.duration)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.base = target
	v.anchor = v.now()
	v.ended = false
	return nil
}

// Position implements Engine.
func (v *Virtual) Position() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.positionLocked()
}

// Duration implements Engine.
func (v *Virtual) Duration() time.Duration {
	return v.duration
}

// Events implements Engine.
func (v *Virtual) Events() <-chan Event {
	return v.events
}

// Close implements Engine.
func (v *Virtual) Close() error {
	v.closeOnce.Do(func() { close(v.stop) })
	return nil
}
