package drv8833

import (
	"context"
	"time"

	"drv8833-go/errcode"
	"drv8833-go/x/mathx"
	"drv8833-go/x/ramp"
)

// Ramp changes speed linearly from the last commanded speed to to (signed,
// saturated to [-100, 100]) over dur in up to steps writes. It blocks until
// done, ctx is cancelled, or a write fails; the motor keeps whatever speed
// was reached.
func (m *Motor) Ramp(ctx context.Context, to int, dur time.Duration, steps int) error {
	if m.closed {
		return &errcode.E{C: errcode.Closed, Op: "ramp"}
	}
	to = mathx.Clamp(to, -100, 100)
	return ramp.Linear(m.speed, to, dur, steps, func(d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}, m.Drive)
}
