package headless

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/playback"
	"github.com/reel-cli/reel/util"
)

// Status is the JSON form of a playback snapshot. Times are in seconds.
type Status struct {
	Paused           bool    `json:"paused" jsonschema:"description=Whether playback is paused"`
	Looping          bool    `json:"looping" jsonschema:"description=Whether the media restarts at end of stream"`
	Position         float64 `json:"position" jsonschema:"description=Displayed position in seconds,minimum=0"`
	Duration         float64 `json:"duration" jsonschema:"description=Media length in seconds,minimum=0"`
	Elapsed          string  `json:"elapsed" jsonschema:"description=Position as m:ss"`
	Total            string  `json:"total" jsonschema:"description=Duration as m:ss"`
	ControlsVisible  bool    `json:"controls_visible" jsonschema:"description=Whether the control overlay is shown"`
	Dragging         bool    `json:"dragging" jsonschema:"description=Whether a seek drag is in progress"`
	EndOfStreamCount int     `json:"end_of_stream_count" jsonschema:"description=Times the end of the media was reached"`
}

// Output is one line of the JSON stream.
type Output struct {
	Source  string  `json:"source" jsonschema:"description=Media source of the session"`
	Command string  `json:"command,omitempty" jsonschema:"description=Command that produced this update"`
	Status  *Status `json:"status,omitempty"`
	Error   string  `json:"error,omitempty" jsonschema:"description=Recoverable failure such as a rejected seek"`
}

func newStatus(s playback.Snapshot) *Status {
	return &Status{
		Paused:           s.Paused,
		Looping:          s.Looping,
		Position:         s.Position.Seconds(),
		Duration:         s.Duration.Seconds(),
		Elapsed:          util.FormatDuration(s.Position),
		Total:            util.FormatDuration(s.Duration),
		ControlsVisible:  s.ControlsVisible,
		Dragging:         s.Dragging,
		EndOfStreamCount: s.EndOfStreamCount,
	}
}

// Schema returns the JSON schema of Output.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(reflector.Reflect(&Output{}), "", "  ")
}

func writeJson(out io.Writer, output Output) error {
	return json.NewEncoder(out).Encode(output)
}

func writeText(out io.Writer, output Output) error {
	if output.Error != "" {
		_, err := fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Fail), output.Error)
		return err
	}

	status := output.Status
	state := icon.Get(icon.Play)
	if status.Paused {
		state = icon.Get(icon.Pause)
	}

	loop := "loop off"
	if status.Looping {
		loop = "loop on"
	}

	line := fmt.Sprintf("%s %s / %s  %s", state, status.Elapsed, status.Total, loop)
	if status.Dragging {
		line += "  (dragging)"
	}
	if output.Command == (playback.EndOfStream{}).String() {
		line += fmt.Sprintf("  %s end of stream", icon.Get(icon.End))
	}

	_, err := fmt.Fprintln(out, line)
	return err
}
