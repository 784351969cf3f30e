package step

import (
	"fmt"

	"github.com/danmuck/notarize/internal/actions"
	"github.com/danmuck/notarize/internal/config"
	"github.com/danmuck/notarize/internal/logging"
	"github.com/danmuck/notarize/internal/notary"
	"github.com/danmuck/notarize/internal/observability"
	"github.com/danmuck/notarize/internal/tools"
	"github.com/rs/zerolog"
)

const (
	OutputProductPath = "product-path"

	GroupArchive = "Archiving Application"
	GroupSubmit  = "Submitting for Notarizing"

	MsgFailed          = "Notarization failed"
	msgUnexpectedError = "Notarization failed with an unexpected error: "
)

// Phase is the furthest point a run reached.
type Phase string

const (
	PhaseConfigure Phase = "configure"
	PhaseArchive   Phase = "archive"
	PhaseSubmit    Phase = "submit"
	PhaseComplete  Phase = "complete"
)

// Result summarizes one run for the process entry point.
type Result struct {
	Phase       Phase
	Failed      bool
	Message     string
	ProductPath string
}

// Step wires one notarization run.
type Step struct {
	source      config.Source
	reporter    actions.Reporter
	runner      tools.CommandRunner
	logger      zerolog.Logger
	archivePath string
}

func New(source config.Source, reporter actions.Reporter, runner tools.CommandRunner, logger zerolog.Logger) *Step {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Step{
		source:      source,
		reporter:    reporter,
		runner:      runner,
		logger:      logger,
		archivePath: notary.DefaultArchivePath,
	}
}

// WithArchivePath returns a copy of the step that archives to path.
func (s *Step) WithArchivePath(path string) *Step {
	cp := *s
	cp.archivePath = path
	return &cp
}

// Run executes configure -> archive -> submit. Every error, including a
// panic, ends as a single failure report; nothing propagates.
func (s *Step) Run() (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.unexpected(&res, fmt.Errorf("panic: %v", r))
		}
		observability.RecordRun(!res.Failed)
	}()

	if err := s.run(&res); err != nil {
		s.unexpected(&res, err)
	}
	return res
}

func (s *Step) run(res *Result) error {
	res.Phase = PhaseConfigure
	cfg, err := config.Parse(s.source)
	if err != nil {
		return err
	}
	for _, secret := range cfg.Secrets() {
		s.reporter.SetSecret(secret)
	}
	res.ProductPath = cfg.ProductPath
	if cfg.Verbose {
		logging.RaiseToDebug()
	}

	res.Phase = PhaseArchive
	archiver := notary.NewArchiver(s.runner, s.reporter, s.logger).WithDestination(s.archivePath)
	timer := observability.StartPhase(s.logger, string(PhaseArchive))
	archivePath, _ := actions.Group(s.reporter, GroupArchive, func() (string, error) {
		path, ok := archiver.Archive(cfg.ProductPath)
		if ok {
			s.reporter.Info("Created application archive at " + path)
		}
		return path, nil
	})
	if archivePath == "" {
		timer.Done("failed")
		s.fail(res, MsgFailed)
		return nil
	}
	timer.Done("ok")

	res.Phase = PhaseSubmit
	relay := tools.Streams{Stdout: s.reporter.Stdout(), Stderr: s.reporter.Stderr()}
	submitter := notary.NewSubmitter(s.runner, s.reporter, relay, s.logger)
	req := notary.Request{
		ProductPath: cfg.ProductPath,
		ArchivePath: archivePath,
		AppleID:     cfg.AppleID,
		TeamID:      cfg.TeamID,
		Password:    cfg.Password,
		Verbose:     cfg.Verbose,
	}
	timer = observability.StartPhase(s.logger, string(PhaseSubmit))
	accepted, err := actions.Group(s.reporter, GroupSubmit, func() (bool, error) {
		return submitter.Submit(req)
	})
	if err != nil {
		timer.Done("error")
		return err
	}
	if !accepted {
		timer.Done("failed")
		s.fail(res, MsgFailed)
		return nil
	}
	timer.Done("ok")
	s.reporter.Info("Submitted package for notarization.")

	res.Phase = PhaseComplete
	return s.reporter.SetOutput(OutputProductPath, cfg.ProductPath)
}

func (s *Step) fail(res *Result, msg string) {
	res.Failed = true
	res.Message = msg
	s.reporter.SetFailed(msg)
	s.logger.Error().Str("phase", string(res.Phase)).Msg(msg)
}

func (s *Step) unexpected(res *Result, err error) {
	s.fail(res, msgUnexpectedError+err.Error())
}
