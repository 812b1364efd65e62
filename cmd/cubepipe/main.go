// Package main provides the cubepipe binary entry point.
// Cubepipe is the COVID-19 vaccine-usage data warehouse pipeline: it
// extracts the public source datasets, builds and loads the star
// schema, publishes the RDF Data Cube with its provenance and catalog
// documents, and validates cubes against the Data Cube integrity
// constraints.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opendata-cz/cubepipe/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cubepipe"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "COVID-19 vaccine usage data warehouse pipeline",
		Long: `Cubepipe builds a COVID-19 vaccine usage data warehouse from
public Czech health, statistical, and encyclopedia sources.

Stages:
- extract      download the seven source datasets
- transform    build the star-schema tables as CSVs
- load         load the tables into Postgres
- cube         build the RDF Data Cube from the loaded star
- validate     check RDF documents against the Data Cube integrity constraints
- provenance   build the PROV-O provenance document
- catalog      build the DCAT catalog document and run catalog reports

'pipeline run' executes all stages in dependency order; 'pipeline watch'
re-runs the downstream stages when the source datasets change.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	newApp := func() (*app, error) {
		logger := newLogger(logLevel)
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		return &app{cfg: cfg, logger: logger}, nil
	}

	cmd.AddCommand(
		newStageCommand(newApp, "extract", "Download the source datasets", (*app).runExtract),
		newStageCommand(newApp, "transform", "Build the star-schema tables", (*app).runTransform),
		newStageCommand(newApp, "load", "Load the star-schema tables into Postgres", (*app).runLoad),
		newStageCommand(newApp, "cube", "Build the RDF Data Cube", (*app).runCube),
		newValidateCommand(newApp),
		newStageCommand(newApp, "provenance", "Build the provenance document", (*app).runProvenance),
		newCatalogCommand(newApp),
		newPipelineCommand(newApp),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(configPath string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath == "" {
		cfg = config.DefaultConfig()
	} else if cfg, err = config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
