package pca9685

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	ErrChannel  = errors.New("pca9685: channel out of range")
	ErrPrescale = errors.New("pca9685: prescale out of range")
)

// Oscillator start-up time after leaving sleep.
const wakeDelay = 500 * time.Microsecond

type Config struct {
	// Address is the 7-bit bus address. Default AddressDefault.
	Address uint16
	// Invert flips all outputs (MODE2.INVRT).
	Invert bool
	// OpenDrain selects open-drain outputs instead of totem-pole.
	OpenDrain bool
	// Sleep waits for the oscillator. Default time.Sleep.
	Sleep func(time.Duration)
}

type Device struct {
	i2c   drivers.I2C
	addr  uint16
	mode2 byte
	sleep func(time.Duration)
	w     [5]byte
	r     [1]byte
}

// New returns a Device on bus. It performs no I/O.
func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = AddressDefault
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	d := &Device{i2c: bus, addr: cfg.Address, sleep: cfg.Sleep}
	if !cfg.OpenDrain {
		d.mode2 |= mode2OutDrv
	}
	if cfg.Invert {
		d.mode2 |= mode2Invrt
	}
	return d
}

func (d *Device) Address() uint16 { return d.addr }

// Configure sets the output stage, turns every output fully off and leaves the
// chip asleep with auto-increment enabled. Call SetPrescale to start it.
func (d *Device) Configure() error {
	if err := d.writeReg(regMode1, mode1Sleep|mode1AI|mode1AllCall); err != nil {
		return err
	}
	if err := d.writeReg(regMode2, d.mode2); err != nil {
		return err
	}
	return d.writeLED(regAllOnL, 0, ledFull<<8)
}

// SetPrescale programs the output frequency divider and restarts the
// oscillator. The prescaler is only writable in sleep, so outputs pause
// briefly. ext latches the EXTCLK input; it stays selected until power cycle.
func (d *Device) SetPrescale(prescale uint8, ext bool) error {
	if prescale < PrescaleMin {
		return ErrPrescale
	}
	old, err := d.readReg(regMode1)
	if err != nil {
		return err
	}
	sleep := (old &^ mode1Restart) | mode1Sleep
	if err := d.writeReg(regMode1, sleep); err != nil {
		return err
	}
	if ext {
		if err := d.writeReg(regMode1, sleep|mode1ExtClk); err != nil {
			return err
		}
		sleep |= mode1ExtClk
	}
	if err := d.writeReg(regPrescale, prescale); err != nil {
		return err
	}
	awake := sleep &^ mode1Sleep
	if err := d.writeReg(regMode1, awake); err != nil {
		return err
	}
	d.sleep(wakeDelay)
	return d.writeReg(regMode1, awake|mode1Restart|mode1AI)
}

// Prescale reads back the prescale register.
func (d *Device) Prescale() (uint8, error) { return d.readReg(regPrescale) }

// SetCounts sets ch to go high at count 0 and low at off (0..Top). off == 0
// and off >= Top use the full-off and full-on bits so the output is a clean
// level.
func (d *Device) SetCounts(ch uint8, off uint16) error {
	if ch >= Channels {
		return ErrChannel
	}
	base := regLED0OnL + 4*ch
	switch {
	case off == 0:
		return d.writeLED(base, 0, ledFull<<8)
	case off >= Top:
		return d.writeLED(base, ledFull<<8, 0)
	}
	return d.writeLED(base, 0, off)
}

// Off forces ch fully off.
func (d *Device) Off(ch uint8) error { return d.SetCounts(ch, 0) }

// Sleep stops the oscillator; all outputs go off.
func (d *Device) Sleep() error {
	m, err := d.readReg(regMode1)
	if err != nil {
		return err
	}
	return d.writeReg(regMode1, (m&^mode1Restart)|mode1Sleep)
}
