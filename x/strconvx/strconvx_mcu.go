//go:build rp2040

package strconvx

// Minimal decimal parsing with the strconv signature; keeps strconv's tables
// out of firmware images.

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

type rangeError struct{}

func (rangeError) Error() string { return "value out of range" }

func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) == 0 {
		return 0, parseError{}
	}
	const max = int(^uint(0) >> 1)
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseError{}
		}
		d := int(c - '0')
		if v > (max-d)/10 {
			return 0, rangeError{}
		}
		v = v*10 + d
	}
	if neg {
		v = -v
	}
	return v, nil
}
