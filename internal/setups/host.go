//go:build !pico

package setups

import "drv8833-go/drivers/drv8833"

// SelectedPlan for host builds, run against the simulated PWM.
var SelectedPlan = Plan{
	Timer: TimerPlan{Clock: drv8833.ClockSlow, Bits: 10, FreqHz: 20_000},
	Motors: []MotorPlan{
		{Name: "left", A: 2, B: 3, Decay: "fast"},
		{Name: "right", A: 4, B: 5, Decay: "slow"},
	},
}
