package tools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// ErrNoExitStatus marks a child that terminated without an exit code, such
// as one killed by a signal.
var ErrNoExitStatus = errors.New("tools: process produced no exit status")

// OutcomeState tags how a launched command ended.
type OutcomeState int

const (
	OutcomeExited OutcomeState = iota + 1
	OutcomeNotRun
)

func (s OutcomeState) String() string {
	switch s {
	case OutcomeExited:
		return "exited"
	case OutcomeNotRun:
		return "not_run"
	default:
		return "unknown"
	}
}

// Outcome is the result of one command launch. ExitCode is meaningful only
// when State is OutcomeExited; Err only when State is OutcomeNotRun.
// RelayErr holds the first error a relay destination returned, if any.
type Outcome struct {
	State    OutcomeState
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Err      error
	RelayErr error
}

// Exited builds the outcome of a child that terminated with an exit code.
func Exited(code int, stdout, stderr []byte) Outcome {
	return Outcome{State: OutcomeExited, ExitCode: code, Stdout: stdout, Stderr: stderr}
}

// NotRun builds the outcome of a child that never produced an exit code.
// A nil err becomes ErrNoExitStatus.
func NotRun(err error) Outcome {
	if err == nil {
		err = ErrNoExitStatus
	}
	return Outcome{State: OutcomeNotRun, Err: err}
}

// Ran reports whether the child produced an exit code, zero or not.
func (o Outcome) Ran() bool {
	return o.State == OutcomeExited
}

// Success reports whether the child exited with status 0.
func (o Outcome) Success() bool {
	return o.State == OutcomeExited && o.ExitCode == 0
}

// Streams is a pair of relay destinations for child output.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner abstracts process execution for the archive and submit phases.
// A nil relay captures output without mirroring it.
type CommandRunner interface {
	Run(name string, args []string, relay *Streams) Outcome
}

// ExecRunner executes commands on the local host.
type ExecRunner struct {
	// Env replaces the child environment when non-nil.
	Env []string
}

// tools command-runner implementation backed by os/exec.
func (r ExecRunner) Run(name string, args []string, relay *Streams) Outcome {
	cmd := exec.Command(name, args...)
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var relays []*relayWriter
	if relay != nil {
		if relay.Stdout != nil {
			w := &relayWriter{dst: relay.Stdout}
			relays = append(relays, w)
			cmd.Stdout = io.MultiWriter(&stdout, w)
		}
		if relay.Stderr != nil {
			w := &relayWriter{dst: relay.Stderr}
			relays = append(relays, w)
			cmd.Stderr = io.MultiWriter(&stderr, w)
		}
	}

	err := cmd.Run()

	var out Outcome
	if state := cmd.ProcessState; state != nil && state.Exited() {
		out = Exited(state.ExitCode(), stdout.Bytes(), stderr.Bytes())
	} else {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w: %s", ErrNoExitStatus, exitErr.ProcessState.String())
		}
		out = NotRun(err)
		out.Stdout = stdout.Bytes()
		out.Stderr = stderr.Bytes()
	}

	for _, w := range relays {
		if relayErr := w.Err(); relayErr != nil {
			out.RelayErr = relayErr
			break
		}
	}
	return out
}

// relayWriter never fails toward os/exec. A failing destination is dropped
// after its first error so the child's pipe keeps draining into capture.
type relayWriter struct {
	dst io.Writer

	mu  sync.Mutex
	err error
}

func (w *relayWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		if _, err := w.dst.Write(p); err != nil {
			w.err = err
		}
	}
	return len(p), nil
}

func (w *relayWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
