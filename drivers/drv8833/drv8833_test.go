package drv8833

import "testing"

type pair struct{ a, b uint8 }

func duty(t *testing.T, mode DecayMode, c Command) pair {
	t.Helper()
	a, b, ok := Duty(mode, c)
	if !ok {
		t.Fatalf("Duty(%v, %v %d) not ok", mode, c.Verb, c.Speed)
	}
	return pair{a, b}
}

func TestDutyTable(t *testing.T) {
	cases := []struct {
		mode DecayMode
		cmd  Command
		want pair
	}{
		{FastDecay, Command{VerbForward, 100}, pair{100, 0}},
		{FastDecay, Command{VerbForward, 30}, pair{100, 70}},
		{FastDecay, Command{VerbBackward, 50}, pair{50, 100}},
		{FastDecay, Command{VerbBrake, 0}, pair{0, 0}},
		{FastDecay, Command{VerbCoast, 0}, pair{100, 100}},

		{SlowDecay, Command{VerbForward, 75}, pair{75, 0}},
		{SlowDecay, Command{VerbBackward, 20}, pair{0, 20}},
		{SlowDecay, Command{VerbBrake, 0}, pair{100, 100}},
		{SlowDecay, Command{VerbCoast, 0}, pair{0, 0}},
	}
	for _, c := range cases {
		if got := duty(t, c.mode, c.cmd); got != c.want {
			t.Fatalf("%v %v(%d): got %v want %v", c.mode, c.cmd.Verb, c.cmd.Speed, got, c.want)
		}
	}
}

func TestForwardBackwardMirror(t *testing.T) {
	for _, mode := range []DecayMode{FastDecay, SlowDecay} {
		for s := 0; s <= 100; s++ {
			f := duty(t, mode, Command{VerbForward, s})
			b := duty(t, mode, Command{VerbBackward, s})
			if f.a != b.b || f.b != b.a {
				t.Fatalf("%v speed %d: forward %v is not the mirror of backward %v", mode, s, f, b)
			}
		}
	}
}

func TestBrakeAndCoast(t *testing.T) {
	want := map[DecayMode]uint8{FastDecay: 0, SlowDecay: 100}
	for mode, level := range want {
		br := duty(t, mode, Command{Verb: VerbBrake, Speed: 42}) // speed ignored
		if br.a != level || br.b != level {
			t.Fatalf("%v brake = %v, want both %d", mode, br, level)
		}
		co := duty(t, mode, Command{Verb: VerbCoast})
		if co.a != 100-br.a || co.b != 100-br.b {
			t.Fatalf("%v coast %v is not the complement of brake %v", mode, co, br)
		}
	}
}

func TestSpeedSaturates(t *testing.T) {
	for _, mode := range []DecayMode{FastDecay, SlowDecay} {
		for _, v := range []Verb{VerbForward, VerbBackward} {
			if hi, max := duty(t, mode, Command{v, 150}), duty(t, mode, Command{v, 100}); hi != max {
				t.Fatalf("%v %v(150)=%v, want %v", mode, v, hi, max)
			}
			if lo, min := duty(t, mode, Command{v, -5}), duty(t, mode, Command{v, 0}); lo != min {
				t.Fatalf("%v %v(-5)=%v, want %v", mode, v, lo, min)
			}
		}
	}
}

func TestForwardZeroIsCoast(t *testing.T) {
	for _, mode := range []DecayMode{FastDecay, SlowDecay} {
		if f, c := duty(t, mode, Command{VerbForward, 0}), duty(t, mode, Command{Verb: VerbCoast}); f != c {
			t.Fatalf("%v forward(0)=%v coast=%v", mode, f, c)
		}
	}
}

func TestDutyRejectsUnknown(t *testing.T) {
	if _, _, ok := Duty(0, Command{Verb: VerbBrake}); ok {
		t.Fatalf("zero decay mode accepted")
	}
	if _, _, ok := Duty(FastDecay, Command{Verb: 0}); ok {
		t.Fatalf("zero verb accepted")
	}
}

func TestDecayModeStrings(t *testing.T) {
	if FastDecay.String() != "fast" || SlowDecay.String() != "slow" || DecayMode(9).String() != "unknown" {
		t.Fatalf("DecayMode.String mismatch")
	}
	if m, ok := ParseDecayMode("slow"); !ok || m != SlowDecay {
		t.Fatalf("ParseDecayMode(slow) = %v, %v", m, ok)
	}
	if _, ok := ParseDecayMode("medium"); ok {
		t.Fatalf("ParseDecayMode accepted medium")
	}
	if VerbCoast.String() != "coast" || Verb(0).String() != "unknown" {
		t.Fatalf("Verb.String mismatch")
	}
}
