package drv8833

// Pin identifies a physical output (GPIO number, or output index on an
// expander).
type Pin int

// PWM is the platform PWM peripheral Motors draw their channels from.
type PWM interface {
	// Timer returns the hardware timer programmed per cfg, creating it on first
	// use. A platform whose timers are shared may reject a cfg that conflicts
	// with one already in service (errcode.Conflict).
	Timer(cfg *TimerConfig) (Timer, error)
}

// Timer is one hardware timer that several channels run from.
type Timer interface {
	// Bind claims pin exclusively and attaches it to a channel of this timer.
	Bind(pin Pin) (Channel, error)
}

// Channel is one PWM output bound to a pin.
type Channel interface {
	// Set writes a duty percentage in [0, 100].
	Set(percent uint8) error
	// Enable starts or stops the output. A disabled channel rejects Set.
	Enable(on bool) error
	// Release drives the output low and returns the pin to the platform.
	Release() error
}
