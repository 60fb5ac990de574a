package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			b.viewHeader(),
			"",
			b.spinnerC.View() + " Opening " + style.Fg(color.Purple)(b.options.Source),
		},
	)
}

func (b *statefulBubble) viewHeader() string {
	title := style.Title(constant.Reel)
	name := filepath.Base(b.options.Source)
	return title + " " + style.Truncate(b.width-lipgloss.Width(title)-1)(name)
}

func (b *statefulBubble) viewPlaying() string {
	lines := []string{b.viewHeader(), ""}

	if !b.snapshot.ControlsVisible {
		lines = append(lines, "", style.Faint("move the pointer or press a key to show controls"))
		return b.renderLines(false, lines)
	}

	lines = append(lines,
		b.progressC.ViewAs(b.snapshot.Progress()),
		style.Truncate(b.width)(b.viewTransport()),
	)
	return b.renderLines(b.options.ShowHelp, lines)
}

// viewTransport renders the play/pause and loop labels followed by the elapsed and total time.
func (b *statefulBubble) viewTransport() string {
	s := b.snapshot

	playPause := style.Fg(color.Playing)(icon.Get(icon.Pause) + " Pause")
	if s.Paused {
		playPause = style.Fg(color.Paused)(icon.Get(icon.Play) + " Play")
	}

	loop := style.Faint(icon.Get(icon.Loop) + " Loop Off")
	if s.Looping {
		loop = style.Fg(color.Looping)(icon.Get(icon.Loop) + " Loop On")
	}

	elapsed := util.FormatDuration(s.Position)
	if s.Dragging {
		elapsed = style.Fg(color.Seeking)(icon.Get(icon.Seek) + " " + elapsed)
	}

	return fmt.Sprintf("%s  %s   %s / %s", style.Bold(playPause), loop, elapsed, util.FormatDuration(s.Duration))
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(color.Failure)(b.fatal.Error()), util.Max(b.width, 1))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Could not play " + b.options.Source,
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
