package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/engine/enginetest"
	"github.com/reel-cli/reel/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestBubble(duration time.Duration) (*statefulBubble, *enginetest.Fake) {
	fake := enginetest.New(duration)
	session, err := playback.NewSession("movies/clip.mkv", fake, playback.Options{})
	So(err, ShouldBeNil)

	b := newBubble(&Options{Source: "movies/clip.mkv", SeekStep: 5 * time.Second, ShowHelp: true})
	b.resize(104, 30) // seek bar 100 cells wide
	b.startPlaying(session)
	return b, fake
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBubble(t *testing.T) {
	Convey("Given a playing bubble on a 99s stream", t, func() {
		b, fake := newTestBubble(99 * time.Second)
		defer b.close()

		So(b.state, ShouldEqual, playingState)
		So(b.progressC.Width, ShouldEqual, 100)

		Convey("space toggles pause", func() {
			b.Update(press(" "))
			So(b.snapshot.Paused, ShouldBeTrue)
			So(fake.PauseSets(), ShouldResemble, []bool{true})
		})

		Convey("l toggles loop", func() {
			b.Update(press("l"))
			So(b.snapshot.Looping, ShouldBeTrue)
		})

		Convey("arrow keys scrub and enter commits once", func() {
			b.Update(press("right"))
			b.Update(press("right"))
			So(b.snapshot.Dragging, ShouldBeTrue)
			So(b.snapshot.Position, ShouldEqual, 10*time.Second)
			So(fake.Seeks(), ShouldBeEmpty)

			b.Update(press("left"))
			b.Update(press("enter"))
			So(fake.Seeks(), ShouldResemble, []enginetest.SeekCall{{Target: 5 * time.Second}})
			So(b.snapshot.Paused, ShouldBeFalse)
		})

		Convey("the mouse drags along the seek bar", func() {
			x, y := b.barOrigin()

			b.Update(tea.MouseMsg{X: x + 33, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			So(b.snapshot.Dragging, ShouldBeTrue)
			So(b.snapshot.Position, ShouldEqual, 33*time.Second)

			b.Update(tea.MouseMsg{X: x + 150, Y: y + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
			So(b.snapshot.Position, ShouldEqual, 99*time.Second)

			b.Update(tea.MouseMsg{X: x + 66, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
			So(fake.Seeks(), ShouldBeEmpty)

			b.Update(tea.MouseMsg{X: x + 66, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
			So(fake.Seeks(), ShouldResemble, []enginetest.SeekCall{{Target: 66 * time.Second}})
			So(b.pointerHeld, ShouldBeFalse)
		})

		Convey("presses off the bar are ambient input", func() {
			_, y := b.barOrigin()
			b.Update(tea.MouseMsg{X: 0, Y: y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			So(b.snapshot.Dragging, ShouldBeFalse)
			So(b.pointerHeld, ShouldBeFalse)
		})

		Convey("engine frames advance the position", func() {
			fake.SetPosition(42 * time.Second)
			b.Update(engineEventMsg(engine.Event{Kind: engine.FrameReady}))
			So(b.snapshot.Position, ShouldEqual, 42*time.Second)
			So(b.View(), ShouldContainSubstring, "0:42 / 1:39")
		})

		Convey("end of stream is only reported", func() {
			b.Update(engineEventMsg(engine.Event{Kind: engine.EndOfStream}))
			So(b.snapshot.EndOfStreamCount, ShouldEqual, 1)
			So(fake.Seeks(), ShouldBeEmpty)
		})

		Convey("controls hide after the idle threshold and return on input", func() {
			b.Update(uiTickMsg(time.Now().Add(time.Minute)))
			So(b.snapshot.ControlsVisible, ShouldBeFalse)
			So(b.View(), ShouldContainSubstring, "show controls")

			b.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
			So(b.snapshot.ControlsVisible, ShouldBeTrue)
		})

		Convey("enter with no drag armed counts as input and seeks nowhere", func() {
			b.Update(uiTickMsg(time.Now().Add(time.Minute)))
			So(b.snapshot.ControlsVisible, ShouldBeFalse)

			b.Update(press("enter"))
			So(b.snapshot.ControlsVisible, ShouldBeTrue)
			So(fake.Seeks(), ShouldBeEmpty)
		})

		Convey("the view shows transport labels", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "Pause")
			So(view, ShouldContainSubstring, "Loop Off")
			So(view, ShouldContainSubstring, "clip.mkv")

			b.Update(press(" "))
			b.Update(press("l"))
			view = b.View()
			So(view, ShouldContainSubstring, "Play")
			So(view, ShouldContainSubstring, "Loop On")
		})

		Convey("the engine closing quits", func() {
			_, cmd := b.Update(engineClosedMsg{})
			So(cmd, ShouldNotBeNil)
			So(fake.Closed(), ShouldBeTrue)
			So(b.session, ShouldBeNil)
		})

		Convey("q quits and closes the session", func() {
			b.Update(press("q"))
			So(fake.Closed(), ShouldBeTrue)
		})
	})

	Convey("A failure to open shows the error", t, func() {
		b := newBubble(&Options{Source: "missing.mkv"})
		b.resize(80, 24)

		b.Update(&engine.OpenError{Source: "missing.mkv", Engine: engine.KindMPV, Err: errors.New("no such file")})
		So(b.state, ShouldEqual, errorState)
		So(b.fatal, ShouldNotBeNil)
		So(strings.Contains(b.View(), "no such file"), ShouldBeTrue)
	})
}

func TestKeymapHelp(t *testing.T) {
	Convey("The keymap offers help per state", t, func() {
		k := newStatefulKeymap()

		k.setState(playingState)
		So(len(k.ShortHelp()), ShouldBeGreaterThan, 0)
		So(len(k.FullHelp()[0]), ShouldBeGreaterThan, len(k.ShortHelp()))

		k.setState(loadingState)
		So(len(k.ShortHelp()), ShouldEqual, 1)
	})
}
