package notary

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/notarize/internal/observability"
	"github.com/danmuck/notarize/internal/tools"
	"github.com/rs/zerolog"
)

var (
	ErrNotRun          = errors.New("unknown failure: notarytool did not run at all")
	ErrProductNotFound = errors.New("no product could be found")
)

// Submitter runs notarytool submit --wait and interprets its exit.
type Submitter struct {
	runner tools.CommandRunner
	diag   Diagnostics
	relay  tools.Streams
	logger zerolog.Logger
}

// NewSubmitter wires a submitter. relay receives notarytool's live output
// when a request is verbose.
func NewSubmitter(runner tools.CommandRunner, diag Diagnostics, relay tools.Streams, logger zerolog.Logger) *Submitter {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Submitter{runner: runner, diag: diag, relay: relay, logger: logger}
}

// Submit reports whether notarytool accepted the archive. A missing product or
// a notarytool that produced no exit status is returned as an error; a
// non-zero exit is (false, nil).
func (s *Submitter) Submit(req Request) (bool, error) {
	if _, err := os.Stat(req.ProductPath); err != nil {
		return false, fmt.Errorf("%w at %s", ErrProductNotFound, req.ProductPath)
	}

	args := SubmitArgs(req)
	s.logger.Debug().
		Str("command", tools.FormatCommand(xcrunTool, args, req.Password)).
		Msg("submit_dispatch")

	var relay *tools.Streams
	if req.Verbose {
		relay = &s.relay
	}
	out := s.runner.Run(xcrunTool, args, relay)
	observability.RecordProcessExit(xcrunTool, out.State.String())
	if out.RelayErr != nil {
		s.logger.Warn().Err(out.RelayErr).Msg("submit_relay_failed")
	}

	if !out.Ran() {
		return false, fmt.Errorf("%w: %w", ErrNotRun, out.Err)
	}

	if req.Verbose {
		s.diag.Info(string(out.Stdout))
	}

	event := s.logger.Info().Int("exit_code", out.ExitCode)
	if sub, ok := ParseSubmission(out.Stdout); ok {
		event = event.Str("submission_id", sub.ID.String()).Str("status", sub.Status)
	}
	event.Msg("submit_done")

	return out.ExitCode == 0, nil
}
