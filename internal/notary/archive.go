package notary

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/notarize/internal/observability"
	"github.com/danmuck/notarize/internal/tools"
	digest "github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"
)

// Diagnostics is where archive and submit phases report to the CI log.
type Diagnostics interface {
	Info(msg string)
	Error(msg string)
}

// Archiver packs a product bundle with ditto.
type Archiver struct {
	runner      tools.CommandRunner
	diag        Diagnostics
	destination string
	logger      zerolog.Logger
}

func NewArchiver(runner tools.CommandRunner, diag Diagnostics, logger zerolog.Logger) *Archiver {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Archiver{
		runner:      runner,
		diag:        diag,
		destination: DefaultArchivePath,
		logger:      logger,
	}
}

// WithDestination returns a copy writing to path instead of DefaultArchivePath.
func (a *Archiver) WithDestination(path string) *Archiver {
	cp := *a
	cp.destination = path
	return &cp
}

func (a *Archiver) Destination() string {
	return a.destination
}

// Archive creates the archive and returns its path. Failure is reported to
// the diagnostics sink and signaled only by ok=false.
func (a *Archiver) Archive(productPath string) (string, bool) {
	args := ArchiveArgs(productPath, a.destination)
	a.logger.Debug().
		Str("command", tools.FormatCommand(dittoTool, args)).
		Msg("archive_dispatch")

	out := a.runner.Run(dittoTool, args, nil)
	observability.RecordProcessExit(dittoTool, out.State.String())
	if !out.Success() {
		a.diag.Error(describeFailure(dittoTool, out))
		return "", false
	}

	a.logArchive()
	return a.destination, true
}

func (a *Archiver) logArchive() {
	f, err := os.Open(a.destination)
	if err != nil {
		a.logger.Warn().Err(err).Str("archive", a.destination).Msg("archive_unreadable")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.logger.Warn().Err(err).Str("archive", a.destination).Msg("archive_unreadable")
		return
	}
	dgst, err := digest.FromReader(f)
	if err != nil {
		a.logger.Warn().Err(err).Str("archive", a.destination).Msg("archive_digest_failed")
		return
	}
	a.logger.Info().
		Str("archive", a.destination).
		Int64("bytes", info.Size()).
		Str("digest", dgst.String()).
		Msg("archive_created")
}

func describeFailure(tool string, out tools.Outcome) string {
	if !out.Ran() {
		return fmt.Sprintf("%s failed to run: %v", tool, out.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", tool, out.ExitCode)
	if detail := strings.TrimSpace(string(out.Stderr)); detail != "" {
		msg += ": " + detail
	}
	return msg
}
