package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/engine/enginetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSession(t *testing.T) {
	Convey("Given a session", t, func() {
		fake := enginetest.New(2 * time.Minute)
		clock := &manualClock{now: time.Unix(0, 0)}
		session, err := NewSession("clip.mkv", fake, Options{Clock: clock.Now})
		So(err, ShouldBeNil)
		So(session.Source(), ShouldEqual, "clip.mkv")

		Convey("Apply routes every command to the controller", func() {
			snap, err := session.Apply(TogglePause{})
			So(err, ShouldBeNil)
			So(snap.Paused, ShouldBeTrue)

			snap, _ = session.Apply(ToggleLoop{})
			So(snap.Looping, ShouldBeTrue)

			snap, _ = session.Apply(BeginSeek{Target: 30 * time.Second})
			So(snap.Dragging, ShouldBeTrue)

			snap, _ = session.Apply(UpdateSeek{Target: 45 * time.Second})
			So(snap.Position, ShouldEqual, 45*time.Second)

			snap, err = session.Apply(CommitSeek{})
			So(err, ShouldBeNil)
			So(snap.Paused, ShouldBeFalse)
			So(len(fake.Seeks()), ShouldEqual, 1)

			fake.SetPosition(46 * time.Second)
			snap, _ = session.Apply(FrameReady{})
			So(snap.Position, ShouldEqual, 46*time.Second)

			snap, _ = session.Apply(EndOfStream{})
			So(snap.EndOfStreamCount, ShouldEqual, 1)

			snap, _ = session.Apply(UITick{Now: clock.Now().Add(time.Hour)})
			So(snap.ControlsVisible, ShouldBeFalse)

			snap, _ = session.Apply(Status{})
			So(snap.ControlsVisible, ShouldBeFalse)

			snap, _ = session.Apply(RawInput{Kind: InputPointer})
			So(snap.ControlsVisible, ShouldBeTrue)
		})

		Convey("A rejected commit surfaces a SeekError", func() {
			fake.SeekErr = engine.ErrOutOfRange
			_, _ = session.Apply(BeginSeek{Target: 10 * time.Second})
			_, err := session.Apply(CommitSeek{})

			var seekErr *SeekError
			So(errors.As(err, &seekErr), ShouldBeTrue)
			So(session.Snapshot().Paused, ShouldBeTrue)
		})

		Convey("Close shuts the engine down", func() {
			So(session.Close(), ShouldBeNil)
			So(fake.Closed(), ShouldBeTrue)
		})
	})

	Convey("A session needs a known duration", t, func() {
		fake := enginetest.New(0)
		_, err := NewSession("clip.mkv", fake, Options{})

		var openErr *engine.OpenError
		So(errors.As(err, &openErr), ShouldBeTrue)
		So(errors.Is(err, engine.ErrNotOpen), ShouldBeTrue)
		So(fake.Closed(), ShouldBeTrue)
	})

	Convey("Open surfaces engine open failures", t, func() {
		_, err := Open(context.Background(), engine.KindVirtual, "clip.mkv", engine.Options{}, Options{})
		var openErr *engine.OpenError
		So(errors.As(err, &openErr), ShouldBeTrue)
	})
}

func TestCommands(t *testing.T) {
	Convey("Commands", t, func() {
		So(IsUserCommand(TogglePause{}), ShouldBeTrue)
		So(IsUserCommand(RawInput{Kind: InputKey}), ShouldBeTrue)
		So(IsUserCommand(FrameReady{}), ShouldBeFalse)
		So(IsUserCommand(UITick{}), ShouldBeFalse)
		So(IsUserCommand(Status{}), ShouldBeFalse)

		So(BeginSeek{Target: 30 * time.Second}.String(), ShouldEqual, "begin-seek(30s)")
		So(RawInput{Kind: InputKey}.String(), ShouldEqual, "input(key)")

		So(FromEvent(engine.Event{Kind: engine.FrameReady}), ShouldResemble, FrameReady{})
		So(FromEvent(engine.Event{Kind: engine.EndOfStream}), ShouldResemble, EndOfStream{})
	})
}
