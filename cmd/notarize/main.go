package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/danmuck/notarize/internal/actions"
	"github.com/danmuck/notarize/internal/config"
	"github.com/danmuck/notarize/internal/logging"
	"github.com/danmuck/notarize/internal/observability"
	"github.com/danmuck/notarize/internal/step"
	"github.com/danmuck/notarize/internal/tools"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		app = kingpin.New("notarize", "Archive a macOS application bundle and submit it to Apple's notary service")

		// inputs; INPUT_* variables fill whatever is not given here
		productPath = app.Flag(config.InputProductPath, "Path to the application bundle").String()
		appleID     = app.Flag(config.InputAppleID, "Apple ID").String()
		teamID      = app.Flag(config.InputTeamID, "Developer team identifier").String()
		password    = app.Flag(config.InputAppPassword, "App-specific password").String()
		verbose     = app.Flag(config.InputVerbose, "Set to true to relay notarytool output").String()
		configPath  = app.Flag("config", "TOML file with input defaults").Envar("NOTARIZE_CONFIG").String()

		// logging
		logLevel = app.Flag("log-level", "Log level, one of [trace, debug, info, warn, error, off]").Envar(logging.EnvLogLevel).String()

		run         = app.Command("run", "Archive and submit the product for notarization").Default()
		metricsFile = run.Flag("metrics-file", "Write run metrics in Prometheus textfile format").Envar("NOTARIZE_METRICS_FILE").String()

		validate = app.Command("validate", "Resolve and validate inputs without launching any tool")

		template      = app.Command("template", "Write a config file template")
		templateOut   = template.Flag("output", "Destination path").Default("notarize.toml").String()
		templateForce = template.Flag("force", "Overwrite an existing file").Bool()
	)
	app.HelpFlag.Short('h')

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	logging.ConfigureRuntime()
	if *logLevel != "" && !logging.SetLevel(*logLevel) {
		log.Warn().Str("log_level", *logLevel).Msg("unknown log level, keeping default")
	}

	flags := config.MapSource{
		config.InputProductPath: *productPath,
		config.InputAppleID:     *appleID,
		config.InputTeamID:      *teamID,
		config.InputAppPassword: *password,
		config.InputVerbose:     *verbose,
	}

	switch cmd {
	case run.FullCommand():
		os.Exit(runStep(flags, *configPath, *metricsFile))
	case validate.FullCommand():
		source, err := buildSource(flags, *configPath)
		if err == nil {
			_, err = config.Parse(source)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "notarize: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("inputs valid")
	case template.FullCommand():
		if err := config.WriteTemplate(*templateOut, *templateForce); err != nil {
			log.Fatal().Err(err).Msg("write template")
		}
		log.Info().Str("path", *templateOut).Msg("wrote config template")
	}
}

func runStep(flags config.MapSource, configPath, metricsFile string) int {
	reporter := actions.NewWorkflow(os.Stdout, os.Stderr)

	source, err := buildSource(flags, configPath)
	if err != nil {
		reporter.SetFailed("Notarization failed with an unexpected error: " + err.Error())
		return 1
	}

	res := step.New(source, reporter, tools.ExecRunner{}, log.Logger).Run()

	if err := observability.WriteMetricsFile(metricsFile); err != nil {
		log.Warn().Err(err).Str("path", metricsFile).Msg("metrics file not written")
	}
	if res.Failed {
		return 1
	}
	return 0
}

func buildSource(flags config.MapSource, configPath string) (config.Source, error) {
	layers := config.Layered{flags, config.EnvSource{}}
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, file)
	}
	return layers, nil
}
