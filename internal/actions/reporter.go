package actions

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const EnvOutputFile = "GITHUB_OUTPUT"

var ErrDelimiterCollision = errors.New("actions: output collides with heredoc delimiter")

// Reporter is the CI-facing sink for one run.
type Reporter interface {
	StartGroup(name string)
	EndGroup()
	Info(msg string)
	Debug(msg string)
	Warning(msg string)
	Error(msg string)
	SetSecret(value string)
	SetOutput(name, value string) error
	SetFailed(msg string)
	// Streams are the live relay destinations for child process output.
	Stdout() io.Writer
	Stderr() io.Writer
}

// Group runs fn between group markers.
func Group[T any](r Reporter, name string, fn func() (T, error)) (T, error) {
	r.StartGroup(name)
	defer r.EndGroup()
	return fn()
}

// Workflow writes GitHub Actions workflow commands.
type Workflow struct {
	out        io.Writer
	errOut     io.Writer
	outputFile string
	delimiter  func() string

	mu      sync.Mutex
	failed  bool
	failure string
	outputs map[string]string
}

// NewWorkflow builds a reporter on the given streams, taking the output file
// location from $GITHUB_OUTPUT.
func NewWorkflow(out, errOut io.Writer) *Workflow {
	return NewWorkflowWithOutputFile(out, errOut, os.Getenv(EnvOutputFile))
}

func NewWorkflowWithOutputFile(out, errOut io.Writer, outputFile string) *Workflow {
	return &Workflow{
		out:        out,
		errOut:     errOut,
		outputFile: strings.TrimSpace(outputFile),
		delimiter:  func() string { return "ghadelimiter_" + uuid.NewString() },
		outputs:    map[string]string{},
	}
}

func (w *Workflow) command(name string, props map[string]string, msg string) {
	fmt.Fprintln(w.out, formatCommand(name, props, msg))
}

func (w *Workflow) StartGroup(name string) { w.command("group", nil, name) }

func (w *Workflow) EndGroup() { w.command("endgroup", nil, "") }

func (w *Workflow) Info(msg string) { fmt.Fprintln(w.out, msg) }

func (w *Workflow) Debug(msg string) { w.command("debug", nil, msg) }

func (w *Workflow) Warning(msg string) { w.command("warning", nil, msg) }

func (w *Workflow) Error(msg string) { w.command("error", nil, msg) }

func (w *Workflow) SetSecret(value string) {
	if value == "" {
		return
	}
	w.command("add-mask", nil, value)
}

// SetOutput records a step output. With an output file the value is appended
// in heredoc form; otherwise the legacy set-output command is emitted.
func (w *Workflow) SetOutput(name, value string) error {
	if w.outputFile == "" {
		fmt.Fprintln(w.out)
		w.command("set-output", map[string]string{"name": name}, value)
		w.remember(name, value)
		return nil
	}

	delimiter := w.delimiter()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("%w: %s", ErrDelimiterCollision, name)
	}

	f, err := os.OpenFile(w.outputFile, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	_, writeErr := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}
	w.remember(name, value)
	return nil
}

// SetFailed marks the step failed and annotates the message as an error.
func (w *Workflow) SetFailed(msg string) {
	w.mu.Lock()
	w.failed = true
	w.failure = msg
	w.mu.Unlock()
	w.Error(msg)
}

func (w *Workflow) Stdout() io.Writer { return w.out }

func (w *Workflow) Stderr() io.Writer { return w.errOut }

// Failed reports whether SetFailed was called, and its last message.
func (w *Workflow) Failed() (bool, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed, w.failure
}

// Outputs returns a copy of the outputs set so far.
func (w *Workflow) Outputs() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.outputs))
	for k, v := range w.outputs {
		out[k] = v
	}
	return out
}

func (w *Workflow) remember(name, value string) {
	w.mu.Lock()
	w.outputs[name] = value
	w.mu.Unlock()
}
