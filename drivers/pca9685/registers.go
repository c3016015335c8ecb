// Package pca9685 provides register access for the PCA9685 16-channel,
// 12-bit I2C PWM controller.
package pca9685

const (
	// 7-bit I2C address with A0..A5 strapped low.
	AddressDefault = 0x40

	// Number of PWM outputs.
	Channels = 16

	// Counter period in counts (12-bit).
	Top = 4096

	// --- Register sub-addresses ---
	regMode1    = 0x00
	regMode2    = 0x01
	regLED0OnL  = 0x06 // LEDn_ON_L = 0x06 + 4n, then ON_H, OFF_L, OFF_H
	regAllOnL   = 0xFA
	regPrescale = 0xFE

	// --- MODE1 bits ---
	mode1Restart = 0x80
	mode1ExtClk  = 0x40
	mode1AI      = 0x20 // register auto-increment
	mode1Sleep   = 0x10
	mode1AllCall = 0x01

	// --- MODE2 bits ---
	mode2Invrt  = 0x10
	mode2OutDrv = 0x04 // totem-pole outputs

	// Bit 4 of LEDn_ON_H / LEDn_OFF_H. Full-off wins over full-on.
	ledFull = 0x10

	// Prescale register limits (divider = prescale + 1).
	PrescaleMin = 3
	PrescaleMax = 255
)
