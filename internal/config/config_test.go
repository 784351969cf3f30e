package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validInputs(t *testing.T) MapSource {
	t.Helper()
	product := filepath.Join(t.TempDir(), "Example.app")
	if err := os.Mkdir(product, 0o755); err != nil {
		t.Fatalf("mkdir product: %v", err)
	}
	return MapSource{
		InputProductPath: product,
		InputAppleID:     "dev@example.com",
		InputAppPassword: "abcd-efgh-ijkl-mnop",
	}
}

func TestParseValid(t *testing.T) {
	src := validInputs(t)
	src[InputTeamID] = " TEAM123 "
	src[InputVerbose] = "true"

	cfg, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ProductPath != src[InputProductPath] {
		t.Fatalf("unexpected product path: %q", cfg.ProductPath)
	}
	if cfg.TeamID != "TEAM123" {
		t.Fatalf("team id should be trimmed: %q", cfg.TeamID)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose")
	}
	if got := cfg.Secrets(); len(got) != 1 || got[0] != "abcd-efgh-ijkl-mnop" {
		t.Fatalf("unexpected secrets: %v", got)
	}
}

func TestParseVerboseOnlyExactTrue(t *testing.T) {
	for _, raw := range []string{"", "TRUE", "1", "yes", "false"} {
		src := validInputs(t)
		src[InputVerbose] = raw
		cfg, err := Parse(src)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if cfg.Verbose {
			t.Fatalf("verbose=%q should not enable verbosity", raw)
		}
	}
}

func TestParseMissingRequired(t *testing.T) {
	for _, name := range RequiredInputs() {
		t.Run(name, func(t *testing.T) {
			src := validInputs(t)
			src[name] = "   "
			_, err := Parse(src)
			if !errors.Is(err, ErrInputRequired) {
				t.Fatalf("expected ErrInputRequired, got %v", err)
			}
			if !strings.Contains(err.Error(), name) {
				t.Fatalf("error should name %s: %v", name, err)
			}
		})
	}
}

func TestParseMissingProductPath(t *testing.T) {
	src := validInputs(t)
	missing := filepath.Join(t.TempDir(), "Gone.app")
	src[InputProductPath] = missing

	_, err := Parse(src)
	if !errors.Is(err, ErrProductMissing) {
		t.Fatalf("expected ErrProductMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestRequiredInputs(t *testing.T) {
	got := strings.Join(RequiredInputs(), ",")
	if got != "product-path,apple-id,app-password" {
		t.Fatalf("unexpected required inputs: %s", got)
	}
	if len(InputNames()) != 5 {
		t.Fatalf("unexpected input count: %v", InputNames())
	}
}

func TestInputEnvName(t *testing.T) {
	if got := InputEnvName("product-path"); got != "INPUT_PRODUCT-PATH" {
		t.Fatalf("unexpected env name: %s", got)
	}
	if got := InputEnvName("my input"); got != "INPUT_MY_INPUT" {
		t.Fatalf("unexpected env name: %s", got)
	}
}

func TestEnvSource(t *testing.T) {
	env := map[string]string{"INPUT_APPLE-ID": "dev@example.com"}
	src := EnvSource{LookupEnv: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
	if v, ok := src.Lookup(InputAppleID); !ok || v != "dev@example.com" {
		t.Fatalf("unexpected lookup: %q %v", v, ok)
	}
	if _, ok := src.Lookup(InputTeamID); ok {
		t.Fatalf("team-id should be absent")
	}
}

func TestEnvSourceDefaultsToProcessEnv(t *testing.T) {
	t.Setenv("INPUT_TEAM-ID", "TEAM9")
	if v, ok := (EnvSource{}).Lookup(InputTeamID); !ok || v != "TEAM9" {
		t.Fatalf("unexpected lookup: %q %v", v, ok)
	}
}

func TestLayeredPrecedence(t *testing.T) {
	flags := MapSource{InputAppleID: "flag@example.com", InputTeamID: "  "}
	env := MapSource{InputAppleID: "env@example.com", InputTeamID: "ENVTEAM"}
	file := MapSource{InputAppleID: "file@example.com", InputTeamID: "FILETEAM", InputVerbose: "true"}
	src := Layered{flags, nil, env, file}

	if v, _ := src.Lookup(InputAppleID); v != "flag@example.com" {
		t.Fatalf("flag should win: %q", v)
	}
	if v, _ := src.Lookup(InputTeamID); v != "ENVTEAM" {
		t.Fatalf("blank flag should fall through to env: %q", v)
	}
	if v, _ := src.Lookup(InputVerbose); v != "true" {
		t.Fatalf("file should supply verbose: %q", v)
	}
	if _, ok := src.Lookup(InputAppPassword); ok {
		t.Fatalf("password should be absent")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notarize.toml")
	content := `
apple-id = " dev@example.com "
verbose = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if src[InputAppleID] != "dev@example.com" {
		t.Fatalf("unexpected apple-id: %q", src[InputAppleID])
	}
	if src[InputVerbose] != "true" {
		t.Fatalf("unexpected verbose: %q", src[InputVerbose])
	}
	if _, ok := src[InputTeamID]; ok {
		t.Fatalf("undefined keys must not be set")
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notarize.toml")
	if err := os.WriteFile(path, []byte(`apple_id = "x"`+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notarize.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}

	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("template must load: %v", err)
	}
	if src[InputAppleID] != "developer@example.com" {
		t.Fatalf("unexpected template apple-id: %q", src[InputAppleID])
	}
	if src[InputVerbose] != "false" {
		t.Fatalf("unexpected template verbose: %q", src[InputVerbose])
	}
}
