package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/internal/ui"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
	"github.com/reel-cli/reel/util"
)

// statefulBubble holds the interface state and the playback session it drives. Update is the
// only place the session is touched, which makes the Bubble Tea loop the dispatch loop.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	session  *playback.Session
	snapshot playback.Snapshot

	// pointerHeld is set between a press on the seek bar and its release.
	pointerHeld bool

	ctx    context.Context
	cancel context.CancelFunc

	// fatal is the error that prevented playback; Run returns it.
	fatal error

	width, height int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.fatal = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = util.Max(b.width, 0)
	b.helpC.Width = b.width
}

// close tears the session down. It is safe to call more than once.
func (b *statefulBubble) close() {
	b.cancel()
	if b.session == nil {
		return
	}
	if err := b.session.Close(); err != nil {
		log.Warnf("tui: close session: %v", err)
	}
	b.session = nil
}

func newBubble(options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	bubble := statefulBubble{
		keymap:   newStatefulKeymap(),
		notifier: &ui.Model{},
		ctx:      ctx,
		cancel:   cancel,
		options:  options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Accent)

	bubble.progressC = progress.New(
		progress.WithGradient(string(color.Secondary), string(color.Accent)),
		progress.WithoutPercentage(),
	)

	bubble.setState(loadingState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
