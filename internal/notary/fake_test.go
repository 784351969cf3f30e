package notary

import (
	"bytes"
	"fmt"

	"github.com/danmuck/notarize/internal/tools"
)

type call struct {
	name  string
	args  []string
	relay *tools.Streams
}

// fakeRunner returns queued outcomes in order and writes relayed output the
// way a live child would.
type fakeRunner struct {
	calls    []call
	outcomes []tools.Outcome
}

func (f *fakeRunner) Run(name string, args []string, relay *tools.Streams) tools.Outcome {
	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...), relay: relay})
	if len(f.outcomes) == 0 {
		return tools.NotRun(fmt.Errorf("fake: no outcome queued for %s", name))
	}
	out := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	if relay != nil {
		if relay.Stdout != nil {
			relay.Stdout.Write(out.Stdout)
		}
		if relay.Stderr != nil {
			relay.Stderr.Write(out.Stderr)
		}
	}
	return out
}

type diagnostics struct {
	info  []string
	error []string
}

func (d *diagnostics) Info(msg string) { d.info = append(d.info, msg) }
func (d *diagnostics) Error(msg string) { d.error = append(d.error, msg) }

func relayPair() (*bytes.Buffer, *bytes.Buffer, tools.Streams) {
	var out, errOut bytes.Buffer
	return &out, &errOut, tools.Streams{Stdout: &out, Stderr: &errOut}
}
