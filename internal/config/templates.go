package config

import (
	"fmt"
	"os"
)

func Template() string {
	return fileTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(fileTemplate), 0o600)
}

// Values here are defaults; INPUT_* variables and CLI flags take precedence.
const fileTemplate = `product-path = "build/Release/Example.app"
apple-id = "developer@example.com"
team-id = ""
app-password = ""
verbose = false
`
