package simpwm

import (
	"errors"
	"testing"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
)

func cfgAt(t *testing.T, hw drv8833.Hardware, freq uint32) *drv8833.TimerConfig {
	t.Helper()
	cfg, err := hw.NewTimerConfig(drv8833.ClockSlow, 10, freq)
	if err != nil {
		t.Fatalf("NewTimerConfig: %v", err)
	}
	return cfg
}

func TestTimerReuseAndLimit(t *testing.T) {
	p := New(Config{Timers: 2})
	a, err := p.Timer(cfgAt(t, drv8833.LEDC, 1000))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.Timer(cfgAt(t, drv8833.LEDC, 1000))
	if a != b || p.Timers() != 1 {
		t.Fatalf("identical configs should share a timer")
	}
	if _, err := p.Timer(cfgAt(t, drv8833.LEDC, 2000)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Timer(cfgAt(t, drv8833.LEDC, 3000)); err != errcode.NoChannel {
		t.Fatalf("third timer = %v, want no_channel", err)
	}
}

func TestTimerRejectsForeignConfigs(t *testing.T) {
	p := New(Config{})
	if _, err := p.Timer(nil); err != errcode.InvalidParams {
		t.Fatalf("nil = %v", err)
	}
	pca, _ := drv8833.PCA9685.NewTimerConfig(drv8833.ClockSlow, 12, 1000)
	if _, err := p.Timer(pca); err != errcode.Unsupported {
		t.Fatalf("pca9685 config = %v, want unsupported", err)
	}
	if err := p.SelectSlowClock(drv8833.ClockExternal); err != nil {
		t.Fatal(err)
	}
	// Built against the 80 MHz slow clock, but the device now runs it at 40 MHz.
	if _, err := p.Timer(cfgAt(t, drv8833.LEDC, 1000)); err != errcode.Conflict {
		t.Fatalf("stale clock = %v, want conflict", err)
	}
	if _, err := p.Timer(cfgAt(t, p.Hardware(), 1000)); err != nil {
		t.Fatalf("matching clock: %v", err)
	}
	if err := p.SelectSlowClock(drv8833.ClockSlow); err != errcode.Busy {
		t.Fatalf("reselect after timer = %v, want busy", err)
	}
}

func TestChannelLifecycle(t *testing.T) {
	p := New(Config{})
	tm, _ := p.Timer(cfgAt(t, drv8833.LEDC, 1000))
	ch, err := tm.Bind(5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Channel(5) != 0 {
		t.Fatalf("channel = %d", p.Channel(5))
	}
	if err := ch.Set(10); err != errcode.Disabled {
		t.Fatalf("set while disabled = %v", err)
	}
	_ = ch.Enable(true)
	if err := ch.Set(50); err != nil {
		t.Fatal(err)
	}
	if d, _ := p.Duty(5); d != 50 || p.Counts(5) != 512 || p.Writes() != 1 {
		t.Fatalf("duty=%d counts=%d writes=%d", d, p.Counts(5), p.Writes())
	}

	if err := ch.Release(); err != nil {
		t.Fatal(err)
	}
	if err := ch.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if err := ch.Set(1); err != errcode.Closed {
		t.Fatalf("set after release = %v", err)
	}
	if _, bound := p.Duty(5); bound || p.Enabled(5) {
		t.Fatalf("pin 5 still bound")
	}
	if _, err := tm.Bind(5); err != nil {
		t.Fatalf("rebind: %v", err)
	}
}

func TestFaults(t *testing.T) {
	p := New(Config{})
	tm, _ := p.Timer(cfgAt(t, drv8833.LEDC, 1000))
	boom := errors.New("boom")

	p.FailBind(1, boom)
	if _, err := tm.Bind(1); err != boom {
		t.Fatalf("bind = %v", err)
	}
	p.FailBind(1, nil)
	ch, err := tm.Bind(1)
	if err != nil {
		t.Fatal(err)
	}
	_ = ch.Enable(true)
	p.FailWrites(1, boom)
	if err := ch.Set(20); err != boom {
		t.Fatalf("set = %v", err)
	}
	p.FailWrites(1, nil)
	if err := ch.Set(20); err != nil {
		t.Fatal(err)
	}
}
