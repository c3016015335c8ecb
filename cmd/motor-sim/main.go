// motor-sim runs the motor console on stdin/stdout against simulated PWM.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"drv8833-go/console"
	"drv8833-go/internal/setups"
	"drv8833-go/platform/simpwm"
)

// stdio adapts a reader/writer pair to console.Port. A single goroutine owns
// the blocking reads.
type stdio struct {
	w      io.Writer
	chunks chan []byte
	err    chan error
	pend   []byte
}

func newStdio(r io.Reader, w io.Writer) *stdio {
	s := &stdio{w: w, chunks: make(chan []byte), err: make(chan error, 1)}
	go func() {
		for {
			buf := make([]byte, 256)
			n, err := r.Read(buf)
			if n > 0 {
				s.chunks <- buf[:n]
			}
			if err != nil {
				s.err <- err
				return
			}
		}
	}()
	return s
}

func (s *stdio) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *stdio) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	if len(s.pend) == 0 {
		select {
		case s.pend = <-s.chunks:
		case err := <-s.err:
			return 0, err
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	n := copy(p, s.pend)
	s.pend = s.pend[n:]
	return n, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pwm := simpwm.New(simpwm.Config{})
	motors, err := setups.Build(pwm, pwm.Hardware(), setups.SelectedPlan)
	if err != nil {
		println("[sim] setup:", err.Error())
		os.Exit(1)
	}
	println("[sim] ready; motors:", len(motors), "(type help)")

	err = console.Run(ctx, newStdio(os.Stdin, os.Stdout), motors)
	for name, m := range motors {
		if cerr := m.Close(); cerr != nil {
			println("[sim] close", name+":", cerr.Error())
		}
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		println("[sim] console:", err.Error())
		os.Exit(1)
	}
	println("[sim] writes:", pwm.Writes())
}
