package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/engine/enginetest"
	. "github.com/smartystreets/goconvey/convey"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(duration time.Duration) (*Controller, *enginetest.Fake, *manualClock) {
	fake := enginetest.New(duration)
	clock := &manualClock{now: time.Unix(0, 0)}
	c := NewController(fake, Options{Clock: clock.Now})
	return c, fake, clock
}

func TestController(t *testing.T) {
	Convey("Given a controller on a 120s stream", t, func() {
		c, fake, clock := newTestController(120 * time.Second)

		snap := c.Snapshot()
		So(snap.Paused, ShouldBeFalse)
		So(snap.Looping, ShouldBeFalse)
		So(snap.Duration, ShouldEqual, 120*time.Second)
		So(snap.Position, ShouldEqual, time.Duration(0))
		So(snap.ControlsVisible, ShouldBeTrue)

		Convey("TogglePause twice restores the state with two engine calls", func() {
			c.TogglePause()
			So(c.Snapshot().Paused, ShouldBeTrue)
			c.TogglePause()
			So(c.Snapshot().Paused, ShouldBeFalse)
			So(fake.PauseSets(), ShouldResemble, []bool{true, false})
		})

		Convey("ToggleLoop flips the engine loop flag", func() {
			c.ToggleLoop()
			So(c.Snapshot().Looping, ShouldBeTrue)
			So(fake.Looping(), ShouldBeTrue)
			c.ToggleLoop()
			So(fake.LoopSets(), ShouldResemble, []bool{true, false})
		})

		Convey("Engine ticks advance the position", func() {
			fake.SetPosition(12 * time.Second)
			c.OnEngineTick()
			So(c.Snapshot().Position, ShouldEqual, 12*time.Second)
		})

		Convey("Engine positions are clamped to the duration", func() {
			fake.SetPosition(130 * time.Second)
			c.OnEngineTick()
			So(c.Snapshot().Position, ShouldEqual, 120*time.Second)
		})

		Convey("A drag scenario BeginSeek(30) UpdateSeek(45) CommitSeek", func() {
			c.BeginSeek(30 * time.Second)

			snap := c.Snapshot()
			So(snap.Position, ShouldEqual, 30*time.Second)
			So(snap.Dragging, ShouldBeTrue)
			So(snap.Paused, ShouldBeTrue)
			So(fake.Paused(), ShouldBeTrue)

			c.UpdateSeek(45 * time.Second)
			So(c.Snapshot().Position, ShouldEqual, 45*time.Second)
			So(fake.Seeks(), ShouldBeEmpty)

			So(c.CommitSeek(), ShouldBeNil)
			So(fake.Seeks(), ShouldResemble, []enginetest.SeekCall{{Target: 45 * time.Second, FidelityRelaxed: false}})

			snap = c.Snapshot()
			So(snap.Paused, ShouldBeFalse)
			So(snap.Dragging, ShouldBeFalse)
			So(fake.Paused(), ShouldBeFalse)

			Convey("the next tick resumes from the committed target", func() {
				c.OnEngineTick()
				So(c.Snapshot().Position, ShouldEqual, 45*time.Second)
			})
		})

		Convey("Many updates during a drag produce at most one seek", func() {
			c.BeginSeek(10 * time.Second)
			for i := 1; i <= 50; i++ {
				c.UpdateSeek(time.Duration(i) * time.Second)
			}
			So(fake.Seeks(), ShouldBeEmpty)

			So(c.CommitSeek(), ShouldBeNil)
			So(len(fake.Seeks()), ShouldEqual, 1)
			So(fake.Seeks()[0].Target, ShouldEqual, 50*time.Second)

			Convey("and a duplicate release is a no-op", func() {
				So(c.CommitSeek(), ShouldBeNil)
				So(len(fake.Seeks()), ShouldEqual, 1)
			})
		})

		Convey("During a drag the engine position is not displayed", func() {
			fake.SetPosition(5 * time.Second)
			c.OnEngineTick()
			c.BeginSeek(60 * time.Second)

			fake.SetPosition(7 * time.Second)
			c.OnEngineTick()
			So(c.Snapshot().Position, ShouldEqual, 60*time.Second)
		})

		Convey("BeginSeek while dragging behaves as UpdateSeek", func() {
			c.BeginSeek(10 * time.Second)
			c.BeginSeek(20 * time.Second)
			So(c.Snapshot().Position, ShouldEqual, 20*time.Second)
			So(fake.PauseSets(), ShouldResemble, []bool{true})
		})

		Convey("UpdateSeek while idle is ignored", func() {
			c.UpdateSeek(80 * time.Second)
			So(c.Snapshot().Position, ShouldEqual, time.Duration(0))
			So(c.Snapshot().Dragging, ShouldBeFalse)
		})

		Convey("Seek targets are clamped", func() {
			c.BeginSeek(-5 * time.Second)
			So(c.Snapshot().Position, ShouldEqual, time.Duration(0))
			c.UpdateSeek(500 * time.Second)
			So(c.Snapshot().Position, ShouldEqual, 120*time.Second)
		})

		Convey("A rejected seek leaves the controller paused at the engine position", func() {
			fake.SetPosition(20 * time.Second)
			c.OnEngineTick()

			fake.SeekErr = engine.ErrOutOfRange
			c.BeginSeek(50 * time.Second)
			c.UpdateSeek(60 * time.Second)

			err := c.CommitSeek()
			var seekErr *SeekError
			So(errors.As(err, &seekErr), ShouldBeTrue)
			So(seekErr.Target, ShouldEqual, 60*time.Second)
			So(errors.Is(err, engine.ErrOutOfRange), ShouldBeTrue)

			snap := c.Snapshot()
			So(snap.Paused, ShouldBeTrue)
			So(snap.Dragging, ShouldBeFalse)
			So(snap.Position, ShouldEqual, 20*time.Second)
		})

		Convey("A rejected seek right after a committed one reverts to the committed target", func() {
			c.BeginSeek(45 * time.Second)
			So(c.CommitSeek(), ShouldBeNil)
			So(fake.Position(), ShouldEqual, 45*time.Second)

			fake.SeekErr = engine.ErrOutOfRange
			c.BeginSeek(60 * time.Second)
			So(c.CommitSeek(), ShouldNotBeNil)

			snap := c.Snapshot()
			So(snap.Paused, ShouldBeTrue)
			So(snap.Position, ShouldEqual, 45*time.Second)
		})

		Convey("A rejected seek pauses an engine resumed mid-drag", func() {
			c.BeginSeek(30 * time.Second)
			c.TogglePause()
			So(fake.Paused(), ShouldBeFalse)

			fake.SeekErr = engine.ErrOutOfRange
			So(c.CommitSeek(), ShouldNotBeNil)

			So(c.Snapshot().Paused, ShouldBeTrue)
			So(fake.Paused(), ShouldBeTrue)
			So(fake.PauseSets(), ShouldResemble, []bool{true, false, true})
		})

		Convey("End of stream is counted, never acted upon", func() {
			c.OnEndOfStream()
			c.OnEndOfStream()
			So(c.Snapshot().EndOfStreamCount, ShouldEqual, 2)
			So(fake.Seeks(), ShouldBeEmpty)
			So(fake.PauseSets(), ShouldBeEmpty)
		})

		Convey("Engine pause failures are not surfaced", func() {
			fake.PauseErr = errors.New("ipc closed")
			c.TogglePause()
			So(c.Snapshot().Paused, ShouldBeTrue)
		})

		Convey("Controls visibility", func() {
			Convey("hides once idle for longer than the threshold", func() {
				clock.Advance(3 * time.Second)
				c.OnUITick(clock.Now())
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)

				clock.Advance(time.Millisecond)
				c.OnUITick(clock.Now())
				So(c.Snapshot().ControlsVisible, ShouldBeFalse)
			})

			Convey("returns right after any interaction", func() {
				clock.Advance(10 * time.Second)
				c.OnUITick(clock.Now())
				So(c.Snapshot().ControlsVisible, ShouldBeFalse)

				c.NoteInteraction()
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})

			Convey("never hides while dragging", func() {
				c.BeginSeek(30 * time.Second)
				clock.Advance(time.Minute)
				c.OnUITick(clock.Now())
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})

			Convey("each drag update counts as an interaction", func() {
				c.BeginSeek(30 * time.Second)
				clock.Advance(2 * time.Second)
				c.UpdateSeek(31 * time.Second)
				clock.Advance(2 * time.Second)
				So(c.CommitSeek(), ShouldBeNil)

				clock.Advance(2 * time.Second)
				c.OnUITick(clock.Now())
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})
		})
	})

	Convey("Given start options", t, func() {
		fake := enginetest.New(time.Minute)
		c := NewController(fake, Options{StartPaused: true, Loop: true})

		So(c.State().Paused, ShouldBeTrue)
		So(c.State().Looping, ShouldBeTrue)
		So(fake.PauseSets(), ShouldResemble, []bool{true})
		So(fake.LoopSets(), ShouldResemble, []bool{true})
	})
}
