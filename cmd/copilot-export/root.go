package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/enterprise-insights/copilot-export/pkg/config"
	"github.com/enterprise-insights/copilot-export/pkg/copilot"
	"github.com/enterprise-insights/copilot-export/pkg/github"
	"github.com/enterprise-insights/copilot-export/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:           "copilot-export",
	Short:         "Export GitHub Copilot enterprise data to CSV reports",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// runEnv bundles everything a subcommand needs for one run.
type runEnv struct {
	cfg    *config.Config
	logger zerolog.Logger
	svc    *copilot.Service
}

// setup loads configuration and wires logging, the API client, and the
// Copilot service. A missing credential aborts here, before any network
// call, with the error already logged.
func setup() (*runEnv, error) {
	bootstrap := logging.Setup(logging.Config{Level: "info", Pretty: true, Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error().Err(err).Msg("Configuration is incomplete")
		return nil, err
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
		Output: os.Stderr,
	})
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()

	client, err := github.New(github.DefaultConfig(cfg.BaseURL, cfg.Token))
	if err != nil {
		logger.Error().Err(err).Msg("Cannot create API client")
		return nil, err
	}

	svc := copilot.NewService(client, copilot.Config{
		EnterpriseID:   cfg.EnterpriseID,
		EnterpriseSlug: cfg.EnterpriseSlug,
		Workers:        cfg.Workers,
		Retry:          github.DefaultPolicy(),
	})

	return &runEnv{cfg: cfg, logger: logger, svc: svc}, nil
}
