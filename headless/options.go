package headless

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reel-cli/reel/playback"
	"github.com/samber/mo"
)

// Options configures a headless run.
type Options struct {
	In  io.Reader
	Out io.Writer

	Session *playback.Session

	// TickRate is the overlay refresh interval.
	TickRate time.Duration

	// Json switches the output from one status line per update to JSON objects.
	Json bool

	// Frames also reports engine frame ticks.
	Frames bool
}

// Request is one parsed protocol line.
type Request struct {
	Commands []playback.Command
	Quit     bool
}

// Verbs lists the protocol words accepted by ParseRequest.
var Verbs = []string{"pause", "loop", "seek", "drag", "release", "input", "status", "quit"}

// ParseRequest parses a protocol line. Blank lines and # comments yield None.
//
//	pause           toggle pause
//	loop            toggle loop
//	seek <secs>     drag to secs and release
//	drag <secs>     start or move a drag
//	release         commit the drag
//	input           ambient activity
//	status          print the current state
//	quit            stop
func ParseRequest(line string) (mo.Option[Request], error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return mo.None[Request](), nil
	}

	fields := strings.Fields(line)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	single := func(cmds ...playback.Command) (mo.Option[Request], error) {
		if len(args) != 0 {
			return mo.None[Request](), fmt.Errorf("%s takes no arguments", verb)
		}
		return mo.Some(Request{Commands: cmds}), nil
	}

	switch verb {
	case "pause":
		return single(playback.TogglePause{})
	case "loop":
		return single(playback.ToggleLoop{})
	case "release":
		return single(playback.CommitSeek{})
	case "input":
		return single(playback.RawInput{Kind: playback.InputOther})
	case "status":
		return single(playback.Status{})
	case "quit", "exit":
		if len(args) != 0 {
			return mo.None[Request](), fmt.Errorf("%s takes no arguments", verb)
		}
		return mo.Some(Request{Quit: true}), nil
	case "seek", "drag":
		if len(args) != 1 {
			return mo.None[Request](), fmt.Errorf("%s takes exactly one argument: seconds", verb)
		}
		target, err := parseSeconds(args[0])
		if err != nil {
			return mo.None[Request](), err
		}
		if verb == "drag" {
			return mo.Some(Request{Commands: []playback.Command{playback.BeginSeek{Target: target}}}), nil
		}
		return mo.Some(Request{Commands: []playback.Command{
			playback.BeginSeek{Target: target},
			playback.CommitSeek{},
		}}), nil
	default:
		return mo.None[Request](), fmt.Errorf("unknown command %q, available: %s", verb, strings.Join(Verbs, ", "))
	}
}

// parseSeconds accepts plain seconds ("42.5") or a Go duration ("1m30s").
func parseSeconds(value string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		nanos := seconds * float64(time.Second)
		if math.IsNaN(nanos) || math.IsInf(nanos, 0) || math.Abs(nanos) >= math.MaxInt64 {
			return 0, fmt.Errorf("invalid position %q: out of range", value)
		}
		return time.Duration(nanos), nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: expected seconds or a duration", value)
	}
	return d, nil
}
