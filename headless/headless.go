// Package headless drives a playback session from a line protocol instead of the terminal UI.
// Commands arrive one per line on the input; state updates are written to the output as
// status lines or JSON objects.
package headless

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/playback"
)

// Run dispatches protocol commands until the input ends, "quit" is read, ctx is done or the
// engine shuts down.
func Run(ctx context.Context, options *Options) error {
	if options.In == nil {
		options.In = os.Stdin
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	options.Out = &lockedWriter{w: options.Out}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan playback.Command)
	go read(ctx, cancel, options, commands)

	var writeErr error
	loop := &playback.Loop{
		Session:  options.Session,
		Commands: commands,
		TickRate: options.TickRate,
		Observer: func(cmd playback.Command, snapshot playback.Snapshot, err error) {
			if !shouldReport(cmd, err, options.Frames) {
				return
			}
			if e := report(options, cmd, snapshot, err); e != nil && writeErr == nil {
				writeErr = e
				cancel()
			}
		},
	}

	err := loop.Run(ctx)
	if writeErr != nil {
		return writeErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// read parses input lines into commands. Malformed lines are reported and skipped.
func read(ctx context.Context, cancel context.CancelFunc, options *Options, commands chan<- playback.Command) {
	defer close(commands)

	scanner := bufio.NewScanner(options.In)
	for scanner.Scan() {
		request, err := ParseRequest(scanner.Text())
		if err != nil {
			log.Warnf("headless: %v", err)
			if err := write(options, Output{Source: options.Session.Source(), Error: err.Error()}); err != nil {
				log.Errorf("headless: write: %v", err)
			}
			continue
		}

		req, ok := request.Get()
		if !ok {
			continue
		}
		if req.Quit {
			cancel()
			return
		}

		for _, cmd := range req.Commands {
			if !send(ctx, commands, cmd) {
				return
			}
		}
	}

	if err := scanner.Err(); err != nil {
		log.Errorf("headless: read input: %v", err)
	}
}

func send(ctx context.Context, commands chan<- playback.Command, cmd playback.Command) bool {
	select {
	case commands <- cmd:
		return true
	case <-ctx.Done():
		return false
	}
}

func shouldReport(cmd playback.Command, err error, frames bool) bool {
	if err != nil {
		return true
	}
	switch cmd.(type) {
	case playback.UITick:
		return false
	case playback.FrameReady:
		return frames
	default:
		return true
	}
}

func report(options *Options, cmd playback.Command, snapshot playback.Snapshot, err error) error {
	output := Output{
		Source:  options.Session.Source(),
		Command: cmd.String(),
		Status:  newStatus(snapshot),
	}
	if err != nil {
		output.Error = err.Error()
	}

	return write(options, output)
}

func write(options *Options, output Output) error {
	if options.Json {
		return writeJson(options.Out, output)
	}
	return writeText(options.Out, output)
}

// lockedWriter serializes writes from the reader and dispatch goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
