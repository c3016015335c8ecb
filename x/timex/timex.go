package timex

import "time"

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(time.Second) / uint64(freqHz)
}

// Interval returns the duration of one cycle at freqHz as a time.Duration.
func Interval(freqHz uint32) time.Duration {
	return time.Duration(PeriodFromHz(freqHz))
}
