// Package cli implements the portfolio command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/seed"
	"portfolio/internal/storage"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // startup or seeding failed
	ExitCommandError = 2 // bad flags or arguments
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Format     string // "json" | "text"

	// OpenStore installs the storage backend. Defaults to storage.Init.
	OpenStore func(cfg config.DatabaseConfig, logger *slog.Logger) *storage.Facade
}

// NewRootCommand creates the root command for the portfolio CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenStore: storage.Init})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio site API",
		Long:  "Serves portfolio content (skills, projects, experience, education) and stores contact messages.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvConfigPath+" or ./"+config.ConfigFileName+")")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// app is what every command needs once configuration is resolved
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     *storage.Facade
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
	a.logCloser.Close()
}

// bootstrap loads configuration, builds the logger on the command's error
// stream, and selects storage
func bootstrap(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, path, err := config.LoadWithPath(opts.ConfigPath)
	if err != nil {
		return nil, &ExitError{Code: ExitFailure, Message: "load config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	logger, closer, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, &ExitError{Code: ExitFailure, Message: "init logging", Err: err}
	}
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "file", path, "summary", cfg.Summary())

	open := opts.OpenStore
	if open == nil {
		open = storage.Init
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
		store:     open(cfg.Database, logger),
	}, nil
}

// dataset returns the seed file contents when one is configured, otherwise
// the built-in dataset
func (a *app) dataset() (*domain.Dataset, error) {
	if a.cfg.Database.SeedFile != "" {
		return seed.LoadFile(a.cfg.Database.SeedFile)
	}
	return seed.Canonical()
}

// seedStore runs the seeder and logs the outcome
func (a *app) seedStore(cmd *cobra.Command) (seed.Result, error) {
	ds, err := a.dataset()
	if err != nil {
		return seed.Result{}, &ExitError{Code: ExitFailure, Message: "load seed data", Err: err}
	}

	res, err := a.store.SeedIfEmpty(cmd.Context(), ds)
	if err != nil {
		return seed.Result{}, &ExitError{Code: ExitFailure, Message: "seed store", Err: err}
	}

	if res.Seeded {
		a.logger.Info("store seeded",
			"backend", a.store.Kind(),
			"skills", res.Counts.Skills,
			"projects", res.Counts.Projects,
			"experience", res.Counts.Experience,
			"education", res.Counts.Education)
	} else {
		a.logger.Info("store already seeded, skipping", "backend", a.store.Kind())
	}
	return res, nil
}
