//go:build rp2040

// Two motors sharing one timer: right at full speed, left at half.
package main

import (
	"time"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/platform/rp2pwm"
)

func main() {
	time.Sleep(2 * time.Second)
	println("[two-motors] boot")

	pwm := rp2pwm.New()
	cfg, err := pwm.Hardware().NewTimerConfig(drv8833.ClockFast, 12, 20_000)
	if err != nil {
		println("[two-motors] timer:", err.Error())
		return
	}
	right, err := drv8833.New(pwm, cfg, 2, 3, drv8833.FastDecay)
	if err != nil {
		println("[two-motors] right:", err.Error())
		return
	}
	left, err := drv8833.New(pwm, cfg, 6, 7, drv8833.FastDecay)
	if err != nil {
		println("[two-motors] left:", err.Error())
		return
	}

	for {
		if err := right.Forward(100); err != nil {
			println("[two-motors] right:", err.Error())
		}
		if err := left.Forward(50); err != nil {
			println("[two-motors] left:", err.Error())
		}
		time.Sleep(3 * time.Second)

		_ = right.Brake()
		_ = left.Brake()
		time.Sleep(time.Second)

		_ = right.Backward(100)
		_ = left.Backward(50)
		time.Sleep(3 * time.Second)

		_ = right.Coast()
		_ = left.Coast()
		time.Sleep(time.Second)
	}
}
