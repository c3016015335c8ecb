//go:build rp2040

package main

import (
	"time"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/platform/rp2pwm"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	pwm := rp2pwm.New()
	cfg, err := pwm.Hardware().NewTimerConfig(drv8833.ClockFast, 12, 20_000)
	if err != nil {
		println("[motor] timer:", err.Error())
		return
	}
	m, err := drv8833.New(pwm, cfg, 2, 3, drv8833.FastDecay)
	if err != nil {
		println("[motor] new:", err.Error())
		return
	}
	if err := m.Forward(100); err != nil {
		println("[motor] forward:", err.Error())
	}

	// Periodic stats.
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for t := range tick.C {
		a, b, _ := m.Duty()
		println(t.Format("15:04:05"), "Heartbeat a=", a, "b=", b)
	}
}
