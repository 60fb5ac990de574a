package playback

import (
	"context"
	"time"

	"github.com/reel-cli/reel/log"
)

// Observer is told about every applied command.
type Observer func(cmd Command, snapshot Snapshot, err error)

// Loop is the headless dispatch loop. It merges engine notifications, user commands and a UI
// refresh ticker into one ordered stream and is the only goroutine touching the session.
type Loop struct {
	Session  *Session
	Commands <-chan Command

	// TickRate is the UITick interval. Zero disables refresh ticks.
	TickRate time.Duration

	Observer Observer
}

// Run dispatches until ctx is done, the command channel closes or the engine shuts down.
func (l *Loop) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.TickRate > 0 {
		ticker := time.NewTicker(l.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	events := l.Session.Events()
	for {
		var cmd Command

		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				log.Info("engine event stream closed")
				return nil
			}
			cmd = FromEvent(e)
		case c, ok := <-l.Commands:
			if !ok {
				return nil
			}
			cmd = c
		case now := <-tick:
			cmd = UITick{Now: now}
		}

		snapshot, err := l.Session.Apply(cmd)
		if l.Observer != nil {
			l.Observer(cmd, snapshot, err)
		}
	}
}
