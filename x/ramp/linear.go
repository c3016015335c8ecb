package ramp

import (
	"time"

	"drv8833-go/x/mathx"
)

// Step applies the next level; an error stops the ramp.
type Step func(level int) error

// Tick waits for d; an error (e.g. cancellation) stops the ramp.
type Tick func(d time.Duration) error

// Linear walks from cur to to in up to steps integer increments spread evenly
// over dur, calling tick between levels. It is synchronous. steps <= 0 or
// dur <= 0 snaps to to. The final level is always to unless stopped early.
func Linear(cur, to int, dur time.Duration, steps int, tick Tick, set Step) error {
	if steps <= 0 || dur <= 0 {
		return set(to)
	}
	d := to - cur
	acc := 0
	stepDur := mathx.Max(dur/time.Duration(steps), time.Millisecond)

	for i := 1; i < steps; i++ {
		if err := tick(stepDur); err != nil {
			return err
		}
		acc += d
		inc := acc / steps
		if inc != 0 {
			acc -= inc * steps
			cur += inc
			if err := set(cur); err != nil {
				return err
			}
		}
	}
	if err := tick(stepDur); err != nil {
		return err
	}
	return set(to)
}
