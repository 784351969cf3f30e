package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// PhaseTimer measures one orchestration phase and reports it on Done.
type PhaseTimer struct {
	logger zerolog.Logger
	phase  string
	start  time.Time
}

func StartPhase(logger zerolog.Logger, phase string) *PhaseTimer {
	logger.Debug().Str("phase", phase).Msg("phase_start")
	return &PhaseTimer{logger: logger, phase: phase, start: time.Now()}
}

func (p *PhaseTimer) Done(outcome string) time.Duration {
	elapsed := time.Since(p.start)
	RecordPhase(p.phase, outcome, elapsed)

	event := p.logger.Debug()
	if outcome != "ok" {
		event = p.logger.Warn()
	}
	event.
		Str("phase", p.phase).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("phase_done")
	return elapsed
}
