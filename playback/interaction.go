package playback

import "time"

// DefaultIdleThreshold is how long the controls stay visible after the last interaction.
const DefaultIdleThreshold = 3 * time.Second

// InteractionTimer tracks input recency and derives whether the control overlay is visible.
type InteractionTimer struct {
	threshold time.Duration
	last      time.Time
	visible   bool
}

// NewInteractionTimer returns a timer that counts now as the first interaction.
// A non-positive threshold selects DefaultIdleThreshold.
func NewInteractionTimer(threshold time.Duration, now time.Time) *InteractionTimer {
	if threshold <= 0 {
		threshold = DefaultIdleThreshold
	}
	return &InteractionTimer{
		threshold: threshold,
		last:      now,
		visible:   true,
	}
}

// NoteInteraction records user activity and shows the controls.
func (t *InteractionTimer) NoteInteraction(now time.Time) {
	t.last = now
	t.visible = true
}

// Tick hides the controls once the idle threshold has passed, unless a drag is in progress.
func (t *InteractionTimer) Tick(now time.Time, dragging bool) {
	if dragging {
		return
	}
	if now.Sub(t.last) > t.threshold {
		t.visible = false
	}
}

func (t *InteractionTimer) Visible() bool {
	return t.visible
}

func (t *InteractionTimer) LastInteraction() time.Time {
	return t.last
}

func (t *InteractionTimer) Threshold() time.Duration {
	return t.threshold
}
