package playback

import (
	"fmt"
	"time"
)

// SeekError reports that the engine rejected a committed seek. The session stays usable.
type SeekError struct {
	Target time.Duration
	Err    error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("seek to %s: %v", e.Target, e.Err)
}

func (e *SeekError) Unwrap() error {
	return e.Err
}
