package trivia

import (
	"context"
	"time"
)

// Timing of the typewriter presentation, matching the board's original
// 30ms-per-character reveal and 2s pause between multiple-choice options.
const (
	DefaultTypingInterval = 30 * time.Millisecond
	DefaultOptionPause    = 2 * time.Second
)

// Revealer streams question text and option lists character by character.
// Reveals are scheduled effects, not blocking delays: each call runs on
// its caller's goroutine and stops promptly when ctx is canceled, so a
// closed or replaced question dialog never interleaves two reveals.
type Revealer struct {
	Interval time.Duration
	Pause    time.Duration
}

func NewRevealer(interval, pause time.Duration) *Revealer {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}
	if pause < 0 {
		pause = DefaultOptionPause
	}
	return &Revealer{Interval: interval, Pause: pause}
}

// RevealText emits text one character at a time at the configured
// interval. Returns ctx.Err() when canceled mid-reveal, nil when the full
// text was emitted.
func (rv *Revealer) RevealText(ctx context.Context, text string, emit func(chunk string)) error {
	ticker := time.NewTicker(rv.Interval)
	defer ticker.Stop()

	for _, r := range text {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(string(r))
		}
	}
	return nil
}

// RevealOptions emits each option character by character, pausing between
// options. The emit callback receives the option's index so the
// presentation can start a new line per option.
func (rv *Revealer) RevealOptions(ctx context.Context, options []string, emit func(index int, chunk string)) error {
	for i, option := range options {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(rv.Pause):
			}
		}
		err := rv.RevealText(ctx, option, func(chunk string) {
			emit(i, chunk)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
