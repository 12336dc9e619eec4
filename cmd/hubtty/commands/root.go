// Package commands implements the CLI commands for hubtty.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hubtty/hubtty/internal/config"
	hubttyerrors "github.com/hubtty/hubtty/internal/errors"
	"github.com/hubtty/hubtty/internal/logging"
)

// Flag values bound at init. Selection flags (server, palette, keymap)
// are read back through viper so HUBTTY_* environment variables can
// supply them too.
var (
	configFlag string
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "",
		"configuration file (default: ~/.config/hubtty/hubtty.yaml, then ~/.hubtty.yaml)")
	pf.String("server", "",
		"server profile to use (default: first entry)")
	pf.StringP("palette", "p", "",
		"color palette to use")
	pf.StringP("keymap", "k", "",
		"keymap to use")
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	viper.SetEnvPrefix("HUBTTY")
	viper.AutomaticEnv()
	for _, name := range []string{"server", "palette", "keymap"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("hubtty version {{.Version}}\n")

	// Silence errors and usage so Execute controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "hubtty",
	Short: "Terminal interface for GitHub code review",
	Long: `Hubtty is a terminal-based interface for GitHub code review.

It reads its configuration from a YAML file describing the servers to
talk to, plus optional palettes, keymaps, comment link rules, dashboards,
and review shortcuts. API tokens are cached separately with owner-only
permissions and acquired interactively when missing.`,
	Example: `  # Validate the configuration and show what would be used
  hubtty check

  # Diagnose environment problems
  hubtty doctor

  # Acquire and cache an API token for the first server
  hubtty auth login

  # Pick a server profile and palette
  hubtty check --server corp --palette light`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return setupLogging(c)
	},
	RunE: func(c *cobra.Command, args []string) error {
		return c.Help()
	},
}

// resolveOptions builds the resolver options shared by the subcommands.
// Selection values come from viper so both flags and HUBTTY_* variables
// feed them.
func resolveOptions() config.Options {
	return config.Options{
		Path:        configFlag,
		ServerName:  viper.GetString("server"),
		PaletteName: viper.GetString("palette"),
		KeymapName:  viper.GetString("keymap"),
	}
}

// setupLogging configures the default logger from the verbosity flags.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return hubttyerrors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = slog.NewJSONHandler(c.ErrOrStderr(), opts)
	default:
		primary = logging.NewHandler(c.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primary}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return hubttyerrors.NewUserError(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command and maps the error chain to an exit
// code. A missing configuration file gets the full setup advice instead
// of a bare error line.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return hubttyerrors.ExitSuccess
	}

	errOut := color.Error
	if errors.Is(err, hubttyerrors.ErrNoConfigFile) {
		fmt.Fprintln(errOut, config.MissingFileAdvice())
		return hubttyerrors.ExitUser
	}

	color.New(color.FgRed).Fprintf(errOut, "Error: %v\n", err)

	var exitErr *hubttyerrors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(errOut, exitErr.Suggestion)
		}
		return exitErr.Code
	}
	return hubttyerrors.ExitUser
}
