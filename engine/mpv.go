package engine

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dexterlb/mpvipc"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/where"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
	durationWait      = 10 * time.Second
	quitWait          = 3 * time.Second
	eventBuffer       = 64
)

// Observed property identifiers.
const (
	observeTimePos = iota + 1
	observeDuration
	observePause
	observeEOF
	observeLoop
)

// MPV implements Engine on top of an mpv process controlled via JSON-IPC.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	conn       *mpvipc.Connection

	exited chan struct{} // closed when the mpv process exits
	stop   chan struct{} // closed by Close
	events chan Event
	loaded chan struct{} // closed once the duration is known

	mu          sync.Mutex
	position    time.Duration
	duration    time.Duration
	paused      bool
	looping     bool
	eofReported bool
	closeOnce   sync.Once
	loadOnce    sync.Once
}

// CheckMPV verifies that the mpv binary is on PATH.
func CheckMPV() error {
	if _, err := exec.LookPath("mpv"); err != nil {
		return fmt.Errorf("mpv command not found, please install mpv: %w", err)
	}
	return nil
}

// OpenMPV spawns mpv on source and blocks until the stream duration is reported.
func OpenMPV(ctx context.Context, source string, extraArgs []string) (*MPV, error) {
	target, err := sanitizeMediaTarget(source)
	if err != nil {
		return nil, &OpenError{Source: source, Engine: KindMPV, Err: fmt.Errorf("invalid media target: %w", err)}
	}

	if err := CheckMPV(); err != nil {
		return nil, &OpenError{Source: source, Engine: KindMPV, Err: err}
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}

	m := newMPV(filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Reel, randomBytes)))

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--keep-open=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", sanitizeTitle(filepath.Base(target))),
	}
	args = append(args, extraArgs...)
	args = append(args, "--", target)

	log.Debugf("spawning mpv %v", args)
	m.cmd = exec.Command("mpv", args...)
	detach(m.cmd)
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return nil, &OpenError{Source: source, Engine: KindMPV, Err: fmt.Errorf("start mpv: %w", err)}
	}

	// Reap the process to avoid zombies.
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.connect(ctx); err != nil {
		m.kill()
		return nil, &OpenError{Source: source, Engine: KindMPV, Err: err}
	}

	go m.monitor()

	if err := m.waitLoaded(ctx); err != nil {
		_ = m.Close()
		return nil, &OpenError{Source: source, Engine: KindMPV, Err: err}
	}

	log.Infof("mpv opened %s on %s (duration %s)", target, m.socketPath, m.Duration())
	return m, nil
}

func newMPV(socketPath string) *MPV {
	return &MPV{
		socketPath: socketPath,
		exited:     make(chan struct{}),
		stop:       make(chan struct{}),
		events:     make(chan Event, eventBuffer),
		loaded:     make(chan struct{}),
	}
}

// connect polls until the IPC socket accepts connections and registers the property observers.
func (m *MPV) connect(ctx context.Context) error {
	var lastErr error

	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn := mpvipc.NewConnection(m.socketPath)
		if err := conn.Open(); err != nil {
			lastErr = err
			continue
		}
		m.conn = conn

		for id, name := range map[int]string{
			observeTimePos:  "time-pos",
			observeDuration: "duration",
			observePause:    "pause",
			observeEOF:      "eof-reached",
			observeLoop:     "loop-file",
		} {
			if _, err := conn.Call("observe_property", id, name); err != nil {
				return fmt.Errorf("observe %s: %w", name, err)
			}
		}
		return nil
	}

	return fmt.Errorf("socket %s not ready after %d attempts: %v", m.socketPath, socketWaitRetries, lastErr)
}

func (m *MPV) waitLoaded(ctx context.Context) error {
	select {
	case <-m.loaded:
		return nil
	case <-m.exited:
		return errors.New("mpv exited before the stream was loaded")
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(durationWait):
		return fmt.Errorf("%w: no duration reported after %s", ErrNotOpen, durationWait)
	}
}

// monitor pumps IPC events into the engine state until shutdown. It is the only sender on m.events.
func (m *MPV) monitor() {
	defer close(m.events)

	raw := make(chan *mpvipc.Event)
	stopListen := make(chan struct{})
	defer close(stopListen)

	go m.conn.ListenForEvents(raw, stopListen)

	for {
		select {
		case <-m.stop:
			return
		case <-m.exited:
			log.Info("mpv process exited")
			return
		case ev, ok := <-raw:
			if !ok || ev.Name == "shutdown" {
				log.Debug("mpv shutdown detected")
				return
			}
			m.handleEvent(ev)
		}
	}
}

func (m *MPV) handleEvent(ev *mpvipc.Event) {
	switch ev.Name {
	case "property-change":
		m.handlePropertyChange(ev)
	case "end-file":
		if ev.Reason == "eof" {
			m.reportEndOfStream()
		}
	case "seek", "playback-restart":
		m.mu.Lock()
		m.eofReported = false
		m.mu.Unlock()
	}
}

func (m *MPV) handlePropertyChange(ev *mpvipc.Event) {
	if ev.Data == nil {
		return
	}

	switch ev.ID {
	case observeTimePos:
		val, ok := ev.Data.(float64)
		if !ok {
			return
		}
		m.mu.Lock()
		m.position = secondsToDuration(val)
		m.mu.Unlock()
		m.emit(Event{Kind: FrameReady, At: time.Now()})
	case observeDuration:
		val, ok := ev.Data.(float64)
		if !ok || val <= 0 {
			return
		}
		m.mu.Lock()
		// Duration is fixed once loaded.
		if m.duration == 0 {
			m.duration = secondsToDuration(val)
		}
		m.mu.Unlock()
		m.loadOnce.Do(func() { close(m.loaded) })
	case observePause:
		if val, ok := ev.Data.(bool); ok {
			m.mu.Lock()
			m.paused = val
			m.mu.Unlock()
		}
	case observeEOF:
		if val, ok := ev.Data.(bool); ok && val {
			m.reportEndOfStream()
		}
	case observeLoop:
		m.mu.Lock()
		m.looping = parseLoopValue(ev.Data)
		m.mu.Unlock()
	}
}

// reportEndOfStream emits at most one EndOfStream per reached end.
func (m *MPV) reportEndOfStream() {
	m.mu.Lock()
	if m.eofReported {
		m.mu.Unlock()
		return
	}
	m.eofReported = true
	m.mu.Unlock()

	select {
	case m.events <- Event{Kind: EndOfStream, At: time.Now()}:
	case <-m.stop:
	}
}

// emit delivers a frame tick without blocking; a dropped tick is superseded by the next one.
func (m *MPV) emit(e Event) {
	select {
	case m.events <- e:
	default:
		log.Tracef("dropping %s, consumer is behind", e.Kind)
	}
}

func (m *MPV) isClosed() bool {
	select {
	case <-m.stop:
		return true
	default:
		return false
	}
}

// SetPaused implements Engine.
func (m *MPV) SetPaused(paused bool) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.conn.Set("pause", paused); err != nil {
		return fmt.Errorf("mpv set pause: %w", err)
	}
	m.mu.Lock()
	m.paused = paused
	m.mu.Unlock()
	return nil
}

// Paused implements Engine.
func (m *MPV) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// SetLooping implements Engine.
func (m *MPV) SetLooping(looping bool) error {
	if m.isClosed() {
		return ErrClosed
	}
	value := "no"
	if looping {
		value = "inf"
	}
	if err := m.conn.Set("loop-file", value); err != nil {
		return fmt.Errorf("mpv set loop-file: %w", err)
	}
	m.mu.Lock()
	m.looping = looping
	m.mu.Unlock()
	return nil
}

// Looping implements Engine.
func (m *MPV) Looping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.looping
}

// Seek implements Engine.
func (m *MPV) Seek(target time.Duration, fidelityRelaxed bool) error {
	if m.isClosed() {
		return ErrClosed
	}

	m.mu.Lock()
	duration := m.duration
	m.mu.Unlock()

	if target < 0 || (duration > 0 && target > duration) {
		return fmt.Errorf("%w: %s not in [0, %s]", ErrOutOfRange, target, duration)
	}

	flags := "absolute+exact"
	if fidelityRelaxed {
		flags = "absolute+keyframes"
	}

	if _, err := m.conn.Call("seek", target.Seconds(), flags); err != nil {
		return fmt.Errorf("mpv seek: %w", err)
	}

	m.mu.Lock()
	m.position = target
	m.eofReported = false
	m.mu.Unlock()
	return nil
}

// Position implements Engine.
func (m *MPV) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Duration implements Engine.
func (m *MPV) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

// Events implements Engine.
func (m *MPV) Events() <-chan Event {
	return m.events
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Close quits mpv gracefully, killing it if it does not exit in time.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		close(m.stop)

		if m.conn != nil {
			_, _ = m.conn.Call("quit")
		}

		if m.cmd != nil {
			select {
			case <-m.exited:
			case <-time.After(quitWait):
				log.Warn("mpv did not quit in time, killing it")
				m.kill()
			}
		}

		if m.conn != nil {
			_ = m.conn.Close()
		}
		_ = os.Remove(m.socketPath)
	})
	return nil
}

func (m *MPV) kill() {
	if m.cmd == nil || m.cmd.Process == nil {
		return
	}
	select {
	case <-m.exited:
	default:
		_ = killGroup(m.cmd)
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// parseLoopValue interprets mpv's loop-file property, which is "inf", "no", a count or a bool.
func parseLoopValue(data any) bool {
	switch v := data.(type) {
	case bool:
		return v
	case string:
		return v != "no" && v != ""
	case float64:
		return v > 0
	default:
		return false
	}
}

// sanitizeMediaTarget validates that a source is safe to hand to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty source")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in source")
	}

	// Sources must not be mistaken for flags.
	if strings.HasPrefix(l, "-") {
		return "", errors.New("source must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle removes characters that break mpv's command line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
