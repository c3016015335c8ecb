//go:build pico

// Motor console on uart0 using the board plan.
package main

import (
	"context"
	"machine"
	"time"

	"drv8833-go/console"
	"drv8833-go/internal/setups"
	"drv8833-go/platform/rp2pwm"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

func main() {
	time.Sleep(1500 * time.Millisecond)
	println("[console] boot …")

	plan := setups.SelectedPlan
	pwm := rp2pwm.New()
	motors, err := setups.Build(pwm, pwm.Hardware(), plan)
	if err != nil {
		println("[console] setup:", err.Error())
		return
	}
	if len(plan.UART) == 0 {
		println("[console] FAIL: no uart in plan")
		return
	}
	u := plan.UART[0]
	hw := uartx.UART0
	if u.ID == "uart1" {
		hw = uartx.UART1
	}
	// Configure pins and baud. Defaults inside uartx will apply if zero.
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: u.Baud,
		TX:       machine.Pin(u.TX),
		RX:       machine.Pin(u.RX),
	})
	println("[console] ready on", u.ID, "motors:", len(motors))
	_, _ = hw.Write([]byte("ok ready\n"))

	for {
		err := console.Run(context.Background(), hw, motors)
		println("[console] port:", err.Error())
		time.Sleep(100 * time.Millisecond)
	}
}
