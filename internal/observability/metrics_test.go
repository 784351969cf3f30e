package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordPhase("archive", "ok", 12*time.Millisecond)
	RecordProcessExit("ditto", "exited")
	RecordRun(true)

	log.Debug().Msg("observability/metrics: registration idempotent and recording paths executed")
}

func TestWriteMetricsFile(t *testing.T) {
	RecordPhase("submit", "failed", 3*time.Second)

	path := filepath.Join(t.TempDir(), "notarize.prom")
	if err := WriteMetricsFile(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `notarize_phase_runs_total{outcome="failed",phase="submit"}`) {
		t.Fatalf("missing phase counter in textfile:\n%s", data)
	}
}

func TestRunResultCarriesNoPerRunLabels(t *testing.T) {
	RecordRun(false)
	RecordRun(true)

	path := filepath.Join(t.TempDir(), "notarize.prom")
	if err := WriteMetricsFile(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\nnotarize_run_success 1\n") {
		t.Fatalf("expected a single unlabeled run series:\n%s", text)
	}
	if strings.Contains(text, "notarize_run_success{") {
		t.Fatalf("run result must not be labeled:\n%s", text)
	}
}

func TestWriteMetricsFileEmptyPathIsNoop(t *testing.T) {
	if err := WriteMetricsFile("  "); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestPhaseTimerLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	timer := StartPhase(logger, "archive")
	if d := timer.Done("failed"); d < 0 {
		t.Fatalf("negative duration: %v", d)
	}

	out := buf.String()
	if !strings.Contains(out, `"phase_done"`) || !strings.Contains(out, `"outcome":"failed"`) {
		t.Fatalf("unexpected phase log: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("failed phase should log at warn: %s", out)
	}
}

func TestInitLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger("notarize", &buf, LoggerOptions{JSON: true})
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"app":"notarize"`) {
		t.Fatalf("missing app field: %s", buf.String())
	}
	if strings.Contains(buf.String(), `"time"`) {
		t.Fatalf("timestamp should be disabled: %s", buf.String())
	}
}
