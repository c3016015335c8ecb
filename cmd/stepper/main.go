//go:build rp2040

// Bipolar stepper on both bridges of one DRV8833, turning 30° at a time.
package main

import (
	"context"
	"time"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/platform/rp2pwm"
)

func main() {
	time.Sleep(2 * time.Second)
	println("[stepper] boot")

	pwm := rp2pwm.New()
	cfg, err := pwm.Hardware().NewTimerConfig(drv8833.ClockFast, 12, 20_000)
	if err != nil {
		println("[stepper] timer:", err.Error())
		return
	}
	coilA, err := drv8833.New(pwm, cfg, 0, 1, drv8833.SlowDecay)
	if err != nil {
		println("[stepper] coil a:", err.Error())
		return
	}
	coilB, err := drv8833.New(pwm, cfg, 10, 9, drv8833.SlowDecay)
	if err != nil {
		println("[stepper] coil b:", err.Error())
		return
	}
	s, err := drv8833.NewStepper(coilA, coilB, drv8833.StepperConfig{StepsPerRev: 200, RateHz: 100})
	if err != nil {
		println("[stepper] new:", err.Error())
		return
	}

	ctx := context.Background()
	for {
		if err := s.Angle(ctx, 30); err != nil {
			println("[stepper] move:", err.Error())
		}
		_ = s.Release()
		println("[stepper] position", s.Position())
		time.Sleep(500 * time.Millisecond)
	}
}
