package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, loop,
	scrubBackward, scrubForward, commit,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp(style.Fg(color.Seeking)("space"), style.Fg(color.Seeking)("play/pause")),
		),
		loop: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "loop"),
		),
		scrubBackward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "scrub back"),
		),
		scrubForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "scrub forward"),
		),
		commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "seek"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case playingState:
		return h(k.playPause, k.scrubForward, k.commit, k.showHelp),
			h(k.playPause, k.loop, k.scrubBackward, k.scrubForward, k.commit, k.quit)
	case errorState:
		return to2(h(k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
