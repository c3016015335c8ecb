// Package setups holds the board wiring for the programs under cmd/. The plan
// compiled in is chosen by build tags.
package setups

import (
	"drv8833-go/console"
	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"

	"go.uber.org/multierr"
)

// Plan specifies wiring and operating parameters chosen by a setup.
type Plan struct {
	Timer  TimerPlan
	Motors []MotorPlan
	UART   []UARTPlan
	I2C    []I2CPlan
}

// TimerPlan is the one timer every motor in the plan shares.
type TimerPlan struct {
	Clock  drv8833.ClockSource
	Bits   drv8833.Resolution
	FreqHz uint32
}

type MotorPlan struct {
	Name  string // console name
	A, B  int    // pin or output numbers for IN1/IN2
	Decay string // "fast" | "slow"
}

type UARTPlan struct {
	ID   string // e.g. "uart0"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}

type I2CPlan struct {
	ID  string // e.g. "i2c0"
	SDA int    // GPIO number
	SCL int    // GPIO number
	Hz  uint32 // bus frequency
}

// Build validates the timer against hw and creates every motor on pwm. On
// failure the motors already built are closed again.
func Build(pwm drv8833.PWM, hw drv8833.Hardware, plan Plan) (console.Motors, error) {
	cfg, err := hw.NewTimerConfig(plan.Timer.Clock, plan.Timer.Bits, plan.Timer.FreqHz)
	if err != nil {
		return nil, err
	}
	motors := make(console.Motors, len(plan.Motors))
	for _, mp := range plan.Motors {
		err := buildOne(pwm, cfg, mp, motors)
		if err != nil {
			for _, m := range motors {
				err = multierr.Append(err, m.Close())
			}
			return nil, err
		}
	}
	return motors, nil
}

func buildOne(pwm drv8833.PWM, cfg *drv8833.TimerConfig, mp MotorPlan, motors console.Motors) error {
	mode, ok := drv8833.ParseDecayMode(mp.Decay)
	if _, dup := motors[mp.Name]; !ok || dup || mp.Name == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "setup", Msg: mp.Name}
	}
	m, err := drv8833.New(pwm, cfg, drv8833.Pin(mp.A), drv8833.Pin(mp.B), mode)
	if err != nil {
		return err
	}
	motors[mp.Name] = m
	return nil
}
