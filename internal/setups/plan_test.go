package setups

import (
	"errors"
	"testing"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
	"drv8833-go/platform/simpwm"
)

func TestBuildHostPlan(t *testing.T) {
	p := simpwm.New(simpwm.Config{})
	motors, err := Build(p, p.Hardware(), SelectedPlan)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(motors) != len(SelectedPlan.Motors) {
		t.Fatalf("motors = %d", len(motors))
	}
	for _, mp := range SelectedPlan.Motors {
		m := motors[mp.Name]
		if m == nil || m.Mode().String() != mp.Decay {
			t.Fatalf("motor %q missing or wrong mode", mp.Name)
		}
	}
	if p.Timers() != 1 {
		t.Fatalf("timers = %d", p.Timers())
	}
}

func TestBuildRollsBack(t *testing.T) {
	plan := Plan{
		Timer: TimerPlan{Clock: drv8833.ClockSlow, Bits: 10, FreqHz: 1000},
		Motors: []MotorPlan{
			{Name: "a", A: 0, B: 1, Decay: "fast"},
			{Name: "b", A: 1, B: 2, Decay: "fast"},
		},
	}
	p := simpwm.New(simpwm.Config{})
	_, err := Build(p, p.Hardware(), plan)
	if errcode.Cause(err) != errcode.PinInUse {
		t.Fatalf("err = %v", err)
	}
	if p.Channel(0) != -1 || p.Channel(1) != -1 {
		t.Fatalf("motor a not closed on failure")
	}
}

func TestBuildRejectsBadPlans(t *testing.T) {
	timer := TimerPlan{Clock: drv8833.ClockSlow, Bits: 10, FreqHz: 1000}
	cases := map[string]Plan{
		"decay":     {Timer: timer, Motors: []MotorPlan{{Name: "a", A: 0, B: 1, Decay: "medium"}}},
		"duplicate": {Timer: timer, Motors: []MotorPlan{{Name: "a", A: 0, B: 1, Decay: "fast"}, {Name: "a", A: 2, B: 3, Decay: "fast"}}},
		"unnamed":   {Timer: timer, Motors: []MotorPlan{{A: 0, B: 1, Decay: "fast"}}},
	}
	for name, plan := range cases {
		p := simpwm.New(simpwm.Config{})
		if _, err := Build(p, p.Hardware(), plan); !errors.Is(err, errcode.InvalidParams) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}

	p := simpwm.New(simpwm.Config{})
	_, err := Build(p, p.Hardware(), Plan{Timer: TimerPlan{Clock: drv8833.ClockSlow, Bits: 12, FreqHz: 20_000}})
	if !errors.Is(err, errcode.UnachievableFrequency) || p.Timers() != 0 {
		t.Fatalf("err = %v timers = %d", err, p.Timers())
	}
}
