package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vango-dev/quicktip/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	logLevel string
	noColor  bool
)

var stdout = termenv.NewOutput(os.Stdout)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quicktip",
		Short: "Server-driven tooltips",
		Long: `quicktip serves pages whose tooltips are decided on the server.

A thin browser client reports pointer movement over a WebSocket; the
server resolves which element carries a tip, runs the show and hide
delays, and tells the client where to draw the hint panel.

Tips come from three places:

  • data-qtip markup attributes on the page
  • native title attributes, when title interception is on
  • a YAML, JSON or TOML catalog on disk or in S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor || termenv.NewOutput(os.Stderr).Profile == termenv.Ascii {
				noColor = true
				errors.DisableColors()
			}
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(),
		catalogCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, errors.Newf(errors.CategoryCLI, "unknown log level %q", s).
			WithSuggestion("Use one of debug, info, warn or error")
	}
	return level, nil
}

// success prints a success message.
func success(format string, args ...any) {
	mark := "✓"
	if !noColor {
		mark = stdout.String(mark).Foreground(stdout.Color("2")).String()
	}
	fmt.Fprintf(stdout, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(stdout, "  %s\n", fmt.Sprintf(format, args...))
}
