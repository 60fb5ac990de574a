package tui

import (
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Notifications are handled in every state.
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.close()
			return b, tea.Quit
		}
	}

	var next tea.Cmd
	switch b.state {
	case loadingState:
		next = b.updateLoading(msg)
	case playingState:
		next = b.updatePlaying(msg)
	case errorState:
		next = b.updateError(msg)
	}

	return b, tea.Batch(cmd, next)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sessionOpenedMsg:
		return b.startPlaying(msg.session)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.quit) {
			b.close()
			return tea.Quit
		}
	}
	return nil
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) tea.Cmd {
	// Messages queued before a quit may still arrive after the session is closed.
	if b.session == nil {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.close()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b.apply(playback.TogglePause{})
		case bubblesKey.Matches(msg, b.keymap.loop):
			return b.apply(playback.ToggleLoop{})
		case bubblesKey.Matches(msg, b.keymap.scrubBackward):
			return b.scrub(-1)
		case bubblesKey.Matches(msg, b.keymap.scrubForward):
			return b.scrub(1)
		case bubblesKey.Matches(msg, b.keymap.commit) && b.snapshot.Dragging:
			return b.apply(playback.CommitSeek{})
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		}
		return b.apply(playback.RawInput{Kind: playback.InputKey})
	case tea.MouseMsg:
		return b.handleMouse(msg)
	case engineEventMsg:
		return tea.Batch(b.apply(playback.FromEvent(engine.Event(msg))), b.waitForEvent())
	case engineClosedMsg:
		log.Info("tui: engine closed, quitting")
		b.close()
		return tea.Quit
	case uiTickMsg:
		return tea.Batch(b.apply(playback.UITick{Now: time.Time(msg)}), b.tick())
	}
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
