// Package cli defines Cobra command definitions for the vetta CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vetta-dev/vetta/internal/api"
	"github.com/vetta-dev/vetta/internal/config"
	"github.com/vetta-dev/vetta/internal/history"
	"github.com/vetta-dev/vetta/internal/log"
	"github.com/vetta-dev/vetta/internal/session"
	"github.com/vetta-dev/vetta/internal/tui"
	"github.com/vetta-dev/vetta/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "vetta",
	Short: "Terminal client for the Vetta AI interview platform",
	Long: `Vetta is the terminal front-end for an AI-driven interview platform.
Candidates take proctored live interviews; admins review transcripts,
evaluation reports and agent-vs-agent simulations.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		cfg := loadConfig(workDir)
		client := newClient(cfg)
		logger, err := log.NewLogger(workDir)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		var store *history.Store
		if cfg.History.Enabled {
			dbPath := filepath.Join(workDir, ".vetta", cfg.History.DBPath)
			if store, err = history.NewStore(dbPath); err != nil {
				// History is a convenience; run without it.
				store = nil
			} else {
				defer func() { _ = store.Close() }()
			}
		}

		camera := &session.FFmpegCamera{
			Path:    cfg.Proctoring.FFmpegPath,
			Device:  cfg.Proctoring.CameraDevice,
			Quality: cfg.Proctoring.JPEGQuality,
		}
		ctrl := session.NewController(
			client,
			camera,
			logger,
			time.Duration(cfg.Proctoring.FrameIntervalMS)*time.Millisecond,
		)
		defer ctrl.Teardown()

		model := tui.NewModel(cfg, workDir, client, ctrl, logger, store)
		return tui.Run(app.New(model))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the workspace config, falling back to defaults and
// applying the --server override.
func loadConfig(workDir string) *config.Config {
	cfg, err := config.ReadConfig(workDir)
	if err != nil {
		// Config not found or invalid, use defaults
		cfg = config.DefaultConfig()
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	return cfg
}

// newClient builds the API client from the effective config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutMS)*time.Millisecond)
}

// clientFromWorkDir is the common setup for non-interactive subcommands.
func clientFromWorkDir() (*api.Client, *config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("getting current directory: %w", err)
	}
	cfg := loadConfig(workDir)
	return newClient(cfg), cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Override the interview server base URL")

	rootCmd.AddCommand(interviewsCmd)
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(simulateCmd)
}
