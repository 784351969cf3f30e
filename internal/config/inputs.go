package config

import (
	"os"
	"strings"

	"github.com/samber/lo"
)

const (
	InputProductPath = "product-path"
	InputAppleID     = "apple-id"
	InputTeamID      = "team-id"
	InputAppPassword = "app-password"
	InputVerbose     = "verbose"
)

// InputSpec describes one action input.
type InputSpec struct {
	Name        string
	Required    bool
	Secret      bool
	Description string
}

// Inputs is the full input surface of the action, in declaration order.
var Inputs = []InputSpec{
	{Name: InputProductPath, Required: true, Description: "Path to the application bundle to notarize"},
	{Name: InputAppleID, Required: true, Description: "Apple ID used to authenticate with the notary service"},
	{Name: InputTeamID, Required: false, Description: "Developer team identifier"},
	{Name: InputAppPassword, Required: true, Secret: true, Description: "App-specific password for the Apple ID"},
	{Name: InputVerbose, Required: false, Description: "Relay notarytool output when set to true"},
}

func InputNames() []string {
	return lo.Map(Inputs, func(s InputSpec, _ int) string { return s.Name })
}

func RequiredInputs() []string {
	return lo.FilterMap(Inputs, func(s InputSpec, _ int) (string, bool) { return s.Name, s.Required })
}

// Source resolves a raw input value by input name.
type Source interface {
	Lookup(name string) (string, bool)
}

// InputEnvName maps an input name to the variable the Actions runner exports:
// INPUT_ plus the name uppercased with spaces replaced by underscores.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// EnvSource reads inputs from the process environment.
type EnvSource struct {
	LookupEnv func(string) (string, bool)
}

func (s EnvSource) Lookup(name string) (string, bool) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(InputEnvName(name))
}

// MapSource is a fixed set of input values.
type MapSource map[string]string

func (s MapSource) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// Layered consults sources in order; the first non-blank value wins.
type Layered []Source

func (l Layered) Lookup(name string) (string, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
