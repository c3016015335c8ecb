package drv8833

import (
	"drv8833-go/errcode"
	"drv8833-go/x/conv"
	"drv8833-go/x/mathx"
	"drv8833-go/x/timex"
)

// ClockSource selects the reference clock feeding a PWM timer.
type ClockSource uint8

const (
	ClockSlow     ClockSource = iota // low-speed peripheral clock (default)
	ClockFast                        // system clock
	ClockExternal                    // external reference input
	numClocks
)

func (c ClockSource) String() string {
	switch c {
	case ClockSlow:
		return "slow"
	case ClockFast:
		return "fast"
	case ClockExternal:
		return "external"
	}
	return "unknown"
}

// Resolution is the duty bit-depth of a timer.
type Resolution uint8

// Hardware describes the divider arithmetic of a PWM peripheral. The timer
// counter runs at clock/divider and wraps every 2^bits counts, so
//
//	divider = clockHz / (frequencyHz * 2^bits)
//
// expressed in fixed point with FracBits fractional bits.
type Hardware struct {
	Name string
	// Clocks holds the frequency behind each source in Hz; 0 = not wired.
	Clocks [numClocks]uint32

	MinBits, MaxBits Resolution
	// FracBits is the number of fractional bits in the divider register.
	FracBits uint8
	// MinDivider and MaxDivider bound the raw (fixed-point) divider, inclusive.
	MinDivider, MaxDivider uint32
}

// Hardware presets.
var (
	// LEDC is a low-speed LED-control style timer group: 10.8 divider,
	// up to 14 bits, slow clock routed from the 80 MHz peripheral bus.
	LEDC = Hardware{
		Name:       "ledc",
		Clocks:     [numClocks]uint32{ClockSlow: 80_000_000, ClockExternal: 40_000_000},
		MinBits:    1,
		MaxBits:    14,
		FracBits:   8,
		MinDivider: 1 << 8,
		MaxDivider: 0x3FFFF,
	}

	// RP2040 PWM slices: 8.4 divider off clk_sys, 16-bit counter. The machine
	// package picks the slice TOP from the period, so resolution only sets
	// duty granularity (see TimerConfig.CountsOn).
	RP2040 = Hardware{
		Name:       "rp2040",
		Clocks:     [numClocks]uint32{ClockFast: 125_000_000},
		MinBits:    1,
		MaxBits:    16,
		FracBits:   4,
		MinDivider: 1 << 4,
		MaxDivider: 0xFFF,
	}

	// PCA9685: fixed 12-bit counter, prescale 3..255 (divider = prescale+1)
	// off the 25 MHz internal oscillator.
	PCA9685 = Hardware{
		Name:       "pca9685",
		Clocks:     [numClocks]uint32{ClockSlow: 25_000_000},
		MinBits:    12,
		MaxBits:    12,
		MinDivider: 4,
		MaxDivider: 256,
	}

	DefaultHardware = LEDC
)

// ClockHz returns the frequency behind src, 0 if it is not wired.
func (h Hardware) ClockHz(src ClockSource) uint32 {
	if src >= numClocks {
		return 0
	}
	return h.Clocks[src]
}

// WithClock returns a copy of h with src wired to hz (0 unwires it).
func (h Hardware) WithClock(src ClockSource, hz uint32) Hardware {
	if src < numClocks {
		h.Clocks[src] = hz
	}
	return h
}

// TimerConfig is a validated, immutable timer setup shared read-only by every
// Motor built from it. It never touches hardware; platforms apply it lazily
// when the first channel is bound.
type TimerConfig struct {
	hw      Hardware
	clock   ClockSource
	bits    Resolution
	freqHz  uint32
	divider uint32
}

// NewTimerConfig validates a timer setup against DefaultHardware.
func NewTimerConfig(clock ClockSource, bits Resolution, freqHz uint32) (*TimerConfig, error) {
	return DefaultHardware.NewTimerConfig(clock, bits, freqHz)
}

// NewTimerConfig validates that freqHz is reachable at bits resolution from
// clock on h. Errors carry errcode.InvalidResolution, errcode.UnsupportedClock
// or errcode.UnachievableFrequency.
func (h Hardware) NewTimerConfig(clock ClockSource, bits Resolution, freqHz uint32) (*TimerConfig, error) {
	const op = "timer_config"
	if !mathx.Within(bits, h.MinBits, h.MaxBits) || bits > 31 {
		return nil, &errcode.E{C: errcode.InvalidResolution, Op: op, Msg: h.Name + ": " + bitsMsg(bits)}
	}
	clk := h.ClockHz(clock)
	if clk == 0 {
		return nil, &errcode.E{C: errcode.UnsupportedClock, Op: op, Msg: h.Name + ": " + clock.String()}
	}
	if freqHz == 0 {
		return nil, &errcode.E{C: errcode.UnachievableFrequency, Op: op, Msg: "0 Hz"}
	}
	num := uint64(clk) << h.FracBits
	den := uint64(freqHz) << bits
	div := mathx.RoundDiv(num, den)
	if div < uint64(h.MinDivider) || div > uint64(h.MaxDivider) {
		msg := conv.AppendInt([]byte(h.Name+": "), int64(freqHz))
		msg = append(msg, " Hz at "...)
		msg = append(msg, bitsMsg(bits)...)
		return nil, &errcode.E{C: errcode.UnachievableFrequency, Op: op, Msg: string(msg)}
	}
	return &TimerConfig{
		hw:      h,
		clock:   clock,
		bits:    bits,
		freqHz:  freqHz,
		divider: uint32(div),
	}, nil
}

func bitsMsg(bits Resolution) string {
	return string(conv.AppendInt(nil, int64(bits))) + " bits"
}

func (c *TimerConfig) Hardware() Hardware     { return c.hw }
func (c *TimerConfig) Clock() ClockSource     { return c.clock }
func (c *TimerConfig) Resolution() Resolution { return c.bits }
func (c *TimerConfig) FrequencyHz() uint32    { return c.freqHz }

// Divider returns the raw fixed-point divider (Hardware.FracBits fractional bits).
func (c *TimerConfig) Divider() uint32 { return c.divider }

// Top returns the number of counts in one period (2^bits).
func (c *TimerConfig) Top() uint32 { return 1 << c.bits }

// Counts converts a duty percentage to timer counts; 100% is a full period.
func (c *TimerConfig) Counts(percent uint8) uint32 {
	return mathx.ScalePct(percent, c.Top())
}

// CountsOn converts a duty percentage for a counter of length top that the
// platform chose itself. The duty is quantised at the configured resolution
// first, so a 4-bit config steps in sixteenths whatever top is.
func (c *TimerConfig) CountsOn(percent uint8, top uint32) uint32 {
	return uint32(uint64(c.Counts(percent)) * uint64(top) / uint64(c.Top()))
}

// Period returns the PWM period in nanoseconds.
func (c *TimerConfig) Period() uint64 { return timex.PeriodFromHz(c.freqHz) }

// SameTimer reports whether o programs the timer identically to c, i.e. both
// may share one hardware timer.
func (c *TimerConfig) SameTimer(o *TimerConfig) bool {
	return o != nil && c.hw == o.hw && c.clock == o.clock && c.bits == o.bits && c.freqHz == o.freqHz
}
