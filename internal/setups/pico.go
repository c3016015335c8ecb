//go:build pico

package setups

import "drv8833-go/drivers/drv8833"

// SelectedPlan: two DRV8833 bridges on a Pico. Each motor's pins sit on one
// PWM slice (GP2/3 = slice 1, GP6/7 = slice 3).
var SelectedPlan = Plan{
	Timer: TimerPlan{Clock: drv8833.ClockFast, Bits: 12, FreqHz: 20_000},
	Motors: []MotorPlan{
		{Name: "left", A: 2, B: 3, Decay: "fast"},
		{Name: "right", A: 6, B: 7, Decay: "fast"},
	},
	UART: []UARTPlan{
		// RP2040 default pins for Pico
		{ID: "uart0", TX: 0, RX: 1, Baud: 115_200},
	},
	I2C: []I2CPlan{
		{ID: "i2c0", SDA: 4, SCL: 5, Hz: 400_000},
	},
}
