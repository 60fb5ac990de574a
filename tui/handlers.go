package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/internal/ui"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
	"github.com/reel-cli/reel/util"
)

const (
	defaultTickRate = 100 * time.Millisecond
	defaultSeekStep = 5 * time.Second

	// barRow is the seek bar's line within the padded content.
	barRow = 2
)

type (
	sessionOpenedMsg struct {
		session *playback.Session
	}

	engineEventMsg  engine.Event
	engineClosedMsg struct{}
	uiTickMsg       time.Time
)

func (b *statefulBubble) openSession() tea.Cmd {
	ctx, options := b.ctx, b.options
	return func() tea.Msg {
		session, err := playback.Open(ctx, options.Engine, options.Source, options.EngineOptions, options.Playback)
		if err != nil {
			return err
		}

		// The program may have quit while the engine was starting.
		if ctx.Err() != nil {
			_ = session.Close()
			return ctx.Err()
		}
		return sessionOpenedMsg{session: session}
	}
}

// startPlaying adopts an opened session and starts the event and refresh loops.
func (b *statefulBubble) startPlaying(session *playback.Session) tea.Cmd {
	b.session = session
	b.snapshot = session.Snapshot()
	b.setState(playingState)

	log.Infof("tui: playing %s", session.Source())
	return tea.Batch(b.waitForEvent(), b.tick(), b.windowTitle())
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	events := b.session.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return engineEventMsg(e)
	}
}

func (b *statefulBubble) tick() tea.Cmd {
	rate := b.options.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}
	return tea.Tick(rate, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

// apply feeds cmd to the session and turns the outcome into follow-up UI commands.
func (b *statefulBubble) apply(cmd playback.Command) tea.Cmd {
	previous := b.snapshot
	snapshot, err := b.session.Apply(cmd)
	b.snapshot = snapshot

	var cmds []tea.Cmd

	var seekErr *playback.SeekError
	if errors.As(err, &seekErr) {
		cmds = append(cmds, ui.Notify(fmt.Sprintf("%s could not seek to %s", icon.Get(icon.Fail), util.FormatDuration(seekErr.Target))))
	}

	if _, ok := cmd.(playback.EndOfStream); ok {
		cmds = append(cmds, ui.Notify(icon.Get(icon.End)+" end of stream"))
	}

	if previous.Paused != snapshot.Paused {
		cmds = append(cmds, b.windowTitle())
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) windowTitle() tea.Cmd {
	if !b.options.ShowTitle {
		return nil
	}

	state := icon.Get(icon.Play)
	if b.snapshot.Paused {
		state = icon.Get(icon.Pause)
	}
	return tea.SetWindowTitle(fmt.Sprintf("%s %s - %s", state, filepath.Base(b.options.Source), constant.Reel))
}

// scrub moves the drag target by one seek step, starting a drag from the displayed position when idle.
func (b *statefulBubble) scrub(direction int) tea.Cmd {
	step := b.options.SeekStep
	if step <= 0 {
		step = defaultSeekStep
	}

	target := b.snapshot.Position + time.Duration(direction)*step
	if b.snapshot.Dragging {
		return b.apply(playback.UpdateSeek{Target: target})
	}
	return b.apply(playback.BeginSeek{Target: target})
}

func (b *statefulBubble) barOrigin() (x, y int) {
	top, _, _, left := paddingStyle.GetPadding()
	return left, top + barRow
}

func (b *statefulBubble) onBar(x, y int) bool {
	ox, oy := b.barOrigin()
	return y == oy && x >= ox && x < ox+b.progressC.Width
}

// targetAt maps a terminal column to a media position along the seek bar.
func (b *statefulBubble) targetAt(x int) time.Duration {
	ox, _ := b.barOrigin()
	width := b.progressC.Width
	if width <= 1 {
		return 0
	}

	column := util.Clamp(x-ox, 0, width-1)
	return b.snapshot.Duration * time.Duration(column) / time.Duration(width-1)
}

// handleMouse turns pointer events into drag commands: press on the bar begins a drag,
// motion while held updates it and release commits it. Anything else is ambient input.
func (b *statefulBubble) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
		b.snapshot.ControlsVisible && b.onBar(msg.X, msg.Y):
		b.pointerHeld = true
		return b.apply(playback.BeginSeek{Target: b.targetAt(msg.X)})
	case msg.Action == tea.MouseActionMotion && b.pointerHeld:
		return b.apply(playback.UpdateSeek{Target: b.targetAt(msg.X)})
	case msg.Action == tea.MouseActionRelease && b.pointerHeld:
		b.pointerHeld = false
		return b.apply(playback.CommitSeek{})
	default:
		return b.apply(playback.RawInput{Kind: playback.InputPointer})
	}
}
