// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/engine"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Source        string
	Engine        engine.Kind
	EngineOptions engine.Options
	Playback      playback.Options

	// SeekStep is the distance covered by one scrub key press.
	SeekStep time.Duration

	// TickRate is the overlay refresh interval.
	TickRate time.Duration

	ShowHelp  bool
	ShowTitle bool
}

// Run opens the source and executes the Bubble Tea program until the user quits or the engine
// shuts down. An error that prevented the media from opening is returned once the program exits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}

	if bubble.fatal != nil {
		log.Errorf("tui: %v", bubble.fatal)
		return bubble.fatal
	}
	return nil
}
