package headless

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/engine/enginetest"
	"github.com/reel-cli/reel/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRequest(t *testing.T) {
	Convey("ParseRequest", t, func() {
		Convey("Should skip blank lines and comments", func() {
			for _, line := range []string{"", "   ", "# pause"} {
				req, err := ParseRequest(line)
				So(err, ShouldBeNil)
				So(req.IsAbsent(), ShouldBeTrue)
			}
		})

		Convey("Should map toggles", func() {
			req, err := ParseRequest("pause")
			So(err, ShouldBeNil)
			So(req.MustGet().Commands, ShouldResemble, []playback.Command{playback.TogglePause{}})

			req, err = ParseRequest("  LOOP ")
			So(err, ShouldBeNil)
			So(req.MustGet().Commands, ShouldResemble, []playback.Command{playback.ToggleLoop{}})
		})

		Convey("Should expand seek into a drag and a release", func() {
			req, err := ParseRequest("seek 42.5")
			So(err, ShouldBeNil)
			So(req.MustGet().Commands, ShouldResemble, []playback.Command{
				playback.BeginSeek{Target: 42500 * time.Millisecond},
				playback.CommitSeek{},
			})
		})

		Convey("Should accept durations for drag", func() {
			req, err := ParseRequest("drag 1m30s")
			So(err, ShouldBeNil)
			So(req.MustGet().Commands, ShouldResemble, []playback.Command{playback.BeginSeek{Target: 90 * time.Second}})
		})

		Convey("Should recognise quit", func() {
			req, err := ParseRequest("quit")
			So(err, ShouldBeNil)
			So(req.MustGet().Quit, ShouldBeTrue)
		})

		Convey("Should reject malformed lines", func() {
			for _, line := range []string{"rewind", "seek", "seek soon", "pause now", "drag 1 2", "quit now"} {
				_, err := ParseRequest(line)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Should reject positions that are not finite durations", func() {
			for _, line := range []string{"seek NaN", "seek Inf", "seek -Inf", "drag 1e300", "seek -1e300"} {
				_, err := ParseRequest(line)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func decode(out *bytes.Buffer) []Output {
	var outputs []Output
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var o Output
		So(json.Unmarshal(scanner.Bytes(), &o), ShouldBeNil)
		outputs = append(outputs, o)
	}
	return outputs
}

func TestRun(t *testing.T) {
	Convey("Given a headless session", t, func() {
		fake := enginetest.New(2 * time.Minute)
		session, err := playback.NewSession("clip.mkv", fake, playback.Options{})
		So(err, ShouldBeNil)

		var out bytes.Buffer

		Convey("It applies a drag and reports every step as JSON", func() {
			in := strings.NewReader("drag 30\ndrag 45\nrelease\nstatus\nquit\npause\n")
			err := Run(context.Background(), &Options{In: in, Out: &out, Session: session, Json: true})
			So(err, ShouldBeNil)

			outputs := decode(&out)
			So(len(outputs), ShouldEqual, 4)

			So(outputs[0].Command, ShouldEqual, "begin-seek(30s)")
			So(outputs[0].Status.Dragging, ShouldBeTrue)
			So(outputs[0].Status.Paused, ShouldBeTrue)

			So(outputs[1].Status.Position, ShouldEqual, 45.0)
			So(outputs[1].Status.Elapsed, ShouldEqual, "0:45")

			So(outputs[2].Command, ShouldEqual, "commit-seek")
			So(outputs[2].Status.Paused, ShouldBeFalse)
			So(outputs[2].Status.Total, ShouldEqual, "2:00")

			So(outputs[3].Command, ShouldEqual, "status")

			So(fake.Seeks(), ShouldResemble, []enginetest.SeekCall{{Target: 45 * time.Second}})
		})

		Convey("It reports rejected seeks and keeps going", func() {
			fake.SeekErr = engine.ErrOutOfRange
			in := strings.NewReader("seek 10\npause\n")
			So(Run(context.Background(), &Options{In: in, Out: &out, Session: session, Json: true}), ShouldBeNil)

			outputs := decode(&out)
			So(len(outputs), ShouldEqual, 3)
			So(outputs[1].Command, ShouldEqual, "commit-seek")
			So(outputs[1].Error, ShouldContainSubstring, "seek to 10s")
			So(outputs[1].Status.Paused, ShouldBeTrue)

			So(outputs[2].Command, ShouldEqual, "toggle-pause")
			So(outputs[2].Status.Paused, ShouldBeFalse)
		})

		Convey("It reports malformed lines without stopping", func() {
			in := strings.NewReader("rewind\n")
			So(Run(context.Background(), &Options{In: in, Out: &out, Session: session, Json: true}), ShouldBeNil)

			outputs := decode(&out)
			So(len(outputs), ShouldEqual, 1)
			So(outputs[0].Error, ShouldContainSubstring, "unknown command")
			So(outputs[0].Status, ShouldBeNil)
		})

		Convey("It writes plain status lines without --json", func() {
			in := strings.NewReader("loop\n")
			So(Run(context.Background(), &Options{In: in, Out: &out, Session: session}), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "0:00 / 2:00")
			So(out.String(), ShouldContainSubstring, "loop on")
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema describes the output stream", t, func() {
		data, err := Schema()
		So(err, ShouldBeNil)

		var schema map[string]any
		So(json.Unmarshal(data, &schema), ShouldBeNil)
		So(string(data), ShouldContainSubstring, "end_of_stream_count")
		So(string(data), ShouldContainSubstring, "controls_visible")
	})
}
