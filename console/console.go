// Package console drives motors from a line protocol over any byte stream:
//
//	<motor> forward <0..100>    <motor> backward <0..100>
//	<motor> drive <-100..100>   <motor> ramp <-100..100> <ms>
//	<motor> brake | coast | duty | resync
//	list | help
//
// Every non-empty line gets exactly one reply line: "ok ..." or "err <code>".
package console

import (
	"context"
	"time"

	"drv8833-go/drivers/drv8833"
	"drv8833-go/errcode"
	"drv8833-go/x/conv"
	"drv8833-go/x/mathx"
	"drv8833-go/x/strconvx"

	"github.com/google/shlex"
	"golang.org/x/exp/slices"
)

// MaxLine bounds a command line; longer lines are rejected whole.
const MaxLine = 128

const usage = "<motor> forward|backward <0..100> | <motor> drive <-100..100> | <motor> ramp <-100..100> <ms> | <motor> brake|coast|duty|resync | list | help"

// One ramp write per rampStepMs, within [1, maxRampSteps] writes.
const (
	rampStepMs   = 20
	maxRampSteps = 50
)

// Port is the byte stream the console runs on (a UART, stdio, a socket).
type Port interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}

// Motors maps console names to motors.
type Motors map[string]*drv8833.Motor

// Run reads lines from port and answers each one until ctx is done or the
// port fails. Motors are used only from the calling goroutine.
func Run(ctx context.Context, port Port, motors Motors) error {
	buf := make([]byte, 64)
	line := make([]byte, 0, MaxLine)
	overflow := false
	for {
		n, err := port.RecvSomeContext(ctx, buf)
		// Handle what arrived before looking at err.
		for _, b := range buf[:n] {
			switch b {
			case '\n':
				var reply []byte
				if overflow {
					reply = errReply(errcode.InvalidParams)
				} else {
					reply = Exec(ctx, motors, string(line))
				}
				line, overflow = line[:0], false
				if reply == nil {
					continue
				}
				if _, werr := port.Write(append(reply, '\n')); werr != nil {
					return werr
				}
			case '\r':
				// ignore
			default:
				if len(line) < MaxLine {
					line = append(line, b)
				} else {
					overflow = true
				}
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return err
		}
	}
}

// Exec runs one command line and returns the reply without a newline. Blank
// lines return nil. ctx bounds ramps.
func Exec(ctx context.Context, motors Motors, line string) []byte {
	args, err := shlex.Split(line)
	if err != nil {
		return errReply(errcode.InvalidParams)
	}
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "help":
		return []byte("ok " + usage)
	case "list":
		return list(motors)
	}

	m, ok := motors[args[0]]
	if !ok || len(args) < 2 {
		return errReply(errcode.InvalidParams)
	}
	verb, rest := args[1], args[2:]

	switch verb {
	case "duty":
		if len(rest) != 0 {
			return errReply(errcode.InvalidParams)
		}
		return dutyReply(m)
	case "resync":
		err = m.Resync()
	case "brake", "coast":
		if len(rest) != 0 {
			return errReply(errcode.InvalidParams)
		}
		if verb == "brake" {
			err = m.Brake()
		} else {
			err = m.Coast()
		}
	case "forward", "backward", "drive":
		if len(rest) != 1 {
			return errReply(errcode.InvalidParams)
		}
		speed, perr := strconvx.Atoi(rest[0])
		if perr != nil {
			return errReply(errcode.InvalidParams)
		}
		switch verb {
		case "forward":
			err = m.Forward(speed)
		case "backward":
			err = m.Backward(speed)
		default:
			err = m.Drive(speed)
		}
	case "ramp":
		if len(rest) != 2 {
			return errReply(errcode.InvalidParams)
		}
		to, perr := strconvx.Atoi(rest[0])
		ms, merr := strconvx.Atoi(rest[1])
		if perr != nil || merr != nil || ms < 0 {
			return errReply(errcode.InvalidParams)
		}
		steps := mathx.Clamp(ms/rampStepMs, 1, maxRampSteps)
		err = m.Ramp(ctx, to, time.Duration(ms)*time.Millisecond, steps)
	default:
		return errReply(errcode.InvalidParams)
	}
	if err != nil {
		return errReply(errcode.Of(err))
	}
	return dutyReply(m)
}

func list(motors Motors) []byte {
	names := make([]string, 0, len(motors))
	for name := range motors {
		names = append(names, name)
	}
	slices.Sort(names)
	out := []byte("ok")
	for _, name := range names {
		out = append(out, ' ')
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, motors[name].Mode().String()...)
	}
	return out
}

func dutyReply(m *drv8833.Motor) []byte {
	a, b, ok := m.Duty()
	if !ok {
		return []byte("ok a=? b=?")
	}
	out := conv.AppendInt([]byte("ok a="), int64(a))
	out = append(out, " b="...)
	return conv.AppendInt(out, int64(b))
}

func errReply(c errcode.Code) []byte { return []byte("err " + string(c)) }
