//go:build !rp2040

package strconvx

import "strconv"

// The goal is signature parity with strconv.
// Delegate straight through.

func Atoi(s string) (int, error) { return strconv.Atoi(s) }
