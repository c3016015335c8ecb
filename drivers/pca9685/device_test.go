package pca9685

import (
	"errors"
	"testing"
	"time"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*fakeI2C)(nil)

// fakeI2C is a register file with auto-increment. It logs MODE1 writes.
type fakeI2C struct {
	addr  uint16
	regs  [256]byte
	mode1 []byte
	fail  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.fail != nil {
		return f.fail
	}
	if addr != f.addr || len(w) == 0 {
		return errors.New("nack")
	}
	reg := w[0]
	for i, b := range w[1:] {
		f.regs[reg+byte(i)] = b
		if reg+byte(i) == regMode1 {
			f.mode1 = append(f.mode1, b)
		}
	}
	for i := range r {
		r[i] = f.regs[reg+byte(i)]
	}
	return nil
}

func (f *fakeI2C) led(ch uint8) (on, off uint16) {
	b := f.regs[regLED0OnL+4*ch:]
	return uint16(b[0]) | uint16(b[1])<<8, uint16(b[2]) | uint16(b[3])<<8
}

func newDev(t *testing.T) (*Device, *fakeI2C) {
	t.Helper()
	bus := &fakeI2C{addr: AddressDefault}
	d := New(bus, Config{Sleep: func(time.Duration) {}})
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return d, bus
}

func TestConfigure(t *testing.T) {
	_, bus := newDev(t)
	if bus.regs[regMode1] != mode1Sleep|mode1AI|mode1AllCall {
		t.Fatalf("MODE1 = %#x", bus.regs[regMode1])
	}
	if bus.regs[regMode2] != mode2OutDrv {
		t.Fatalf("MODE2 = %#x", bus.regs[regMode2])
	}
	if bus.regs[regAllOnL+3] != ledFull {
		t.Fatalf("ALL_LED_OFF_H = %#x", bus.regs[regAllOnL+3])
	}

	bus2 := &fakeI2C{addr: 0x41}
	d := New(bus2, Config{Address: 0x41, Invert: true, OpenDrain: true})
	if err := d.Configure(); err != nil {
		t.Fatal(err)
	}
	if bus2.regs[regMode2] != mode2Invrt {
		t.Fatalf("MODE2 = %#x", bus2.regs[regMode2])
	}
}

func TestSetPrescaleSequence(t *testing.T) {
	d, bus := newDev(t)
	bus.mode1 = nil
	if err := d.SetPrescale(5, false); err != nil {
		t.Fatal(err)
	}
	if p, _ := d.Prescale(); p != 5 {
		t.Fatalf("prescale = %d", p)
	}
	want := []byte{
		mode1Sleep | mode1AI | mode1AllCall,
		mode1AI | mode1AllCall,
		mode1Restart | mode1AI | mode1AllCall,
	}
	if len(bus.mode1) != len(want) {
		t.Fatalf("MODE1 writes = %#x", bus.mode1)
	}
	for i := range want {
		if bus.mode1[i] != want[i] {
			t.Fatalf("MODE1 write %d = %#x, want %#x", i, bus.mode1[i], want[i])
		}
	}
}

func TestSetPrescaleExternalClock(t *testing.T) {
	d, bus := newDev(t)
	if err := d.SetPrescale(PrescaleMax, true); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regMode1]&mode1ExtClk == 0 || bus.regs[regMode1]&mode1Sleep != 0 {
		t.Fatalf("MODE1 = %#x", bus.regs[regMode1])
	}
	if err := d.SetPrescale(PrescaleMin-1, false); err != ErrPrescale {
		t.Fatalf("err = %v", err)
	}
}

func TestSetCounts(t *testing.T) {
	d, bus := newDev(t)
	cases := []struct{ counts, on, off uint16 }{
		{0, 0, ledFull << 8},
		{1024, 0, 1024},
		{Top, ledFull << 8, 0},
	}
	for _, c := range cases {
		if err := d.SetCounts(15, c.counts); err != nil {
			t.Fatal(err)
		}
		on, off := bus.led(15)
		if on != c.on || off != c.off {
			t.Fatalf("SetCounts(%d): on=%#x off=%#x", c.counts, on, off)
		}
	}
	if err := d.SetCounts(Channels, 1); err != ErrChannel {
		t.Fatalf("err = %v", err)
	}
}

func TestSleepAndBusErrors(t *testing.T) {
	d, bus := newDev(t)
	_ = d.SetPrescale(30, false)
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regMode1]&mode1Sleep == 0 {
		t.Fatalf("not asleep: %#x", bus.regs[regMode1])
	}
	bus.fail = errors.New("bus")
	if err := d.Off(0); err == nil {
		t.Fatalf("expected bus error")
	}
	if _, err := d.Prescale(); err == nil {
		t.Fatalf("expected bus error")
	}
}
