package playback

import (
	"context"
	"testing"
	"time"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/engine/enginetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoop(t *testing.T) {
	Convey("Given a dispatch loop", t, func() {
		fake := enginetest.New(time.Minute)
		session, err := NewSession("clip.mkv", fake, Options{})
		So(err, ShouldBeNil)

		commands := make(chan Command)
		var applied []Command
		loop := &Loop{
			Session:  session,
			Commands: commands,
			Observer: func(cmd Command, _ Snapshot, _ error) {
				applied = append(applied, cmd)
			},
		}

		done := make(chan error, 1)
		go func() { done <- loop.Run(context.Background()) }()

		Convey("It applies commands in order and stops when they end", func() {
			commands <- BeginSeek{Target: 10 * time.Second}
			commands <- UpdateSeek{Target: 20 * time.Second}
			commands <- CommitSeek{}
			close(commands)

			So(<-done, ShouldBeNil)
			So(applied, ShouldResemble, []Command{
				BeginSeek{Target: 10 * time.Second},
				UpdateSeek{Target: 20 * time.Second},
				CommitSeek{},
			})
			So(fake.Seeks(), ShouldResemble, []enginetest.SeekCall{{Target: 20 * time.Second}})
		})

		Convey("It forwards engine events and stops when the engine closes", func() {
			fake.SetPosition(5 * time.Second)
			fake.Emit(engine.FrameReady)
			fake.Emit(engine.EndOfStream)
			So(fake.Close(), ShouldBeNil)

			So(<-done, ShouldBeNil)
			So(applied, ShouldResemble, []Command{FrameReady{}, EndOfStream{}})
			So(session.Snapshot().Position, ShouldEqual, 5*time.Second)
			So(session.Snapshot().EndOfStreamCount, ShouldEqual, 1)
		})
	})

	Convey("The loop stops with its context", t, func() {
		session, err := NewSession("clip.mkv", enginetest.New(time.Minute), Options{})
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		loop := &Loop{Session: session, Commands: make(chan Command), TickRate: time.Millisecond}

		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx) }()
		cancel()

		So(<-done, ShouldEqual, context.Canceled)
	})
}
