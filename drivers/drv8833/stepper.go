package drv8833

import (
	"context"
	"math"
	"time"

	"drv8833-go/errcode"
	"drv8833-go/x/mathx"
	"drv8833-go/x/timex"

	"go.uber.org/multierr"
)

// StepMode selects the coil sequence used by a Stepper.
type StepMode uint8

const (
	StepFull StepMode = iota // both coils always energised
	StepHalf                 // interleaves single-coil phases; twice the steps
)

const (
	defaultStepsPerRev = 200
	defaultStepRateHz  = 200
)

// StepperConfig controls a Stepper. Zero fields take defaults.
type StepperConfig struct {
	// StepsPerRev is the motor's full steps per revolution. Default 200.
	StepsPerRev uint16
	// RateHz is the step rate. Default 200 steps/s.
	RateHz uint32
	Mode   StepMode
	// Sleep waits between steps. Default time.Sleep.
	Sleep func(time.Duration)
}

// phase is the polarity of coil A and coil B: +1 forward, -1 backward, 0 coast.
type phase struct{ a, b int8 }

var (
	fullSteps = [...]phase{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	halfSteps = [...]phase{{1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}}
)

// Stepper drives a bipolar stepper from both bridges of one chip, one Motor
// per coil. Coils are driven at 100% so either decay mode works.
type Stepper struct {
	coil     [2]*Motor
	seq      []phase
	spr      int32 // sequence steps per revolution
	interval time.Duration
	sleep    func(time.Duration)

	idx int
	pos int32
}

// NewStepper takes ownership of two motors wired to the stepper's coils.
func NewStepper(coilA, coilB *Motor, cfg StepperConfig) (*Stepper, error) {
	if coilA == nil || coilB == nil || coilA == coilB {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "stepper", Msg: "need two distinct coils"}
	}
	if cfg.StepsPerRev == 0 {
		cfg.StepsPerRev = defaultStepsPerRev
	}
	if cfg.RateHz == 0 {
		cfg.RateHz = defaultStepRateHz
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	s := &Stepper{
		coil:     [2]*Motor{coilA, coilB},
		spr:      int32(cfg.StepsPerRev),
		interval: timex.Interval(cfg.RateHz),
		sleep:    cfg.Sleep,
	}
	switch cfg.Mode {
	case StepFull:
		s.seq = fullSteps[:]
	case StepHalf:
		s.seq = halfSteps[:]
		s.spr *= 2
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "stepper", Msg: "unknown step mode"}
	}
	return s, nil
}

// Move advances steps sequence steps (negative reverses), waiting one step
// interval after each. Cancellation is checked between steps.
func (s *Stepper) Move(ctx context.Context, steps int32) error {
	dir, left := int32(1), int64(steps)
	if left < 0 {
		dir, left = -1, -left
	}
	n := len(s.seq)
	for ; left > 0; left-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.idx = (s.idx + int(dir) + n) % n
		if err := s.energise(s.seq[s.idx]); err != nil {
			return err
		}
		s.pos += dir
		s.sleep(s.interval)
	}
	return nil
}

// Angle turns by degrees (negative reverses), rounded to the nearest step.
func (s *Stepper) Angle(ctx context.Context, degrees float32) error {
	steps := math.Round(float64(degrees) * float64(s.spr) / 360)
	return s.Move(ctx, int32(mathx.Clamp(steps, math.MinInt32, math.MaxInt32)))
}

// Position returns the net number of sequence steps taken.
func (s *Stepper) Position() int32 { return s.pos }

// StepsPerRev returns sequence steps per revolution for the configured mode.
func (s *Stepper) StepsPerRev() int32 { return s.spr }

// Release coasts both coils.
func (s *Stepper) Release() error {
	return multierr.Combine(s.coil[0].Coast(), s.coil[1].Coast())
}

func (s *Stepper) energise(p phase) error {
	return multierr.Combine(drive(s.coil[0], p.a), drive(s.coil[1], p.b))
}

func drive(m *Motor, pol int8) error {
	switch {
	case pol > 0:
		return m.Forward(100)
	case pol < 0:
		return m.Backward(100)
	}
	return m.Coast()
}
