package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

var (
	ErrInputRequired  = errors.New("input required and not supplied")
	ErrProductMissing = errors.New("product path does not exist")
)

// Configuration is the validated input set for one run.
type Configuration struct {
	ProductPath string
	AppleID     string
	TeamID      string
	Password    string
	Verbose     bool
}

// Secrets returns the values that must never reach a log verbatim.
func (c Configuration) Secrets() []string {
	return lo.Compact([]string{c.Password})
}

// Parse resolves and validates every input. It fails before any side effect
// when a required input is blank or the product path does not exist.
func Parse(src Source) (Configuration, error) {
	values := make(map[string]string, len(Inputs))
	for _, spec := range Inputs {
		v, err := getInput(src, spec)
		if err != nil {
			return Configuration{}, err
		}
		values[spec.Name] = v
	}

	cfg := Configuration{
		ProductPath: values[InputProductPath],
		AppleID:     values[InputAppleID],
		TeamID:      values[InputTeamID],
		Password:    values[InputAppPassword],
		Verbose:     values[InputVerbose] == "true",
	}

	if _, err := os.Stat(cfg.ProductPath); err != nil {
		return Configuration{}, fmt.Errorf("%w: %s", ErrProductMissing, cfg.ProductPath)
	}
	return cfg, nil
}

func getInput(src Source, spec InputSpec) (string, error) {
	var v string
	if src != nil {
		v, _ = src.Lookup(spec.Name)
	}
	v = strings.TrimSpace(v)
	if spec.Required && v == "" {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, spec.Name)
	}
	return v, nil
}

type fileConfig struct {
	ProductPath string `toml:"product-path"`
	AppleID     string `toml:"apple-id"`
	TeamID      string `toml:"team-id"`
	AppPassword string `toml:"app-password"`
	Verbose     bool   `toml:"verbose"`
}

// LoadFile reads input defaults from a TOML file. Only keys present in the
// file are returned; unknown keys are rejected.
func LoadFile(path string) (MapSource, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	out := MapSource{}
	if meta.IsDefined(InputProductPath) {
		out[InputProductPath] = strings.TrimSpace(raw.ProductPath)
	}
	if meta.IsDefined(InputAppleID) {
		out[InputAppleID] = strings.TrimSpace(raw.AppleID)
	}
	if meta.IsDefined(InputTeamID) {
		out[InputTeamID] = strings.TrimSpace(raw.TeamID)
	}
	if meta.IsDefined(InputAppPassword) {
		out[InputAppPassword] = raw.AppPassword
	}
	if meta.IsDefined(InputVerbose) {
		out[InputVerbose] = fmt.Sprintf("%t", raw.Verbose)
	}
	return out, nil
}
