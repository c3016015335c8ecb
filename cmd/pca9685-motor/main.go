//go:build pico

// Motor on PCA9685 outputs 0/1 over i2c0.
package main

import (
	"machine"
	"time"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/drivers/pca9685"
	"drv8833-go/internal/setups"
	"drv8833-go/platform/pcapwm"
)

func main() {
	time.Sleep(2 * time.Second)
	println("[pca9685] boot")

	if len(setups.SelectedPlan.I2C) == 0 {
		println("[pca9685] FAIL: no i2c in plan")
		return
	}
	p := setups.SelectedPlan.I2C[0]
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		SCL:       machine.Pin(p.SCL),
		SDA:       machine.Pin(p.SDA),
		Frequency: p.Hz,
	}); err != nil {
		println("[pca9685] i2c:", err.Error())
		return
	}

	dev := pca9685.New(bus, pca9685.Config{})
	if err := dev.Configure(); err != nil {
		println("[pca9685] configure:", err.Error())
		return
	}
	pwm := pcapwm.New(dev, 0)
	cfg, err := pwm.Hardware().NewTimerConfig(drv8833.ClockSlow, 12, 1000)
	if err != nil {
		println("[pca9685] timer:", err.Error())
		return
	}
	m, err := drv8833.New(pwm, cfg, 0, 1, drv8833.SlowDecay)
	if err != nil {
		println("[pca9685] motor:", err.Error())
		return
	}

	speeds := []int{25, 50, 75, 100, 0, -50, -100}
	for {
		for _, s := range speeds {
			if err := m.Drive(s); err != nil {
				println("[pca9685] drive:", err.Error())
				_ = m.Resync()
			}
			a, b, _ := m.Duty()
			println("[pca9685] speed", s, "a=", a, "b=", b)
			time.Sleep(2 * time.Second)
		}
		_ = m.Brake()
		time.Sleep(time.Second)
	}
}
