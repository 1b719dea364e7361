// Package cli wires the sift commands together.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
	flagLogFile  string
)

// logFile is the --log-file handle, closed once the command returns.
var logFile *os.File

// errNoMatch makes the process exit with status 1 without printing.
var errNoMatch = errors.New("no match")

var rootCmd = &cobra.Command{
	Use:          "sift [dir]",
	Short:        "Fuzzy search for notes and tables of contents",
	SilenceUsage: true,
	Long: `sift indexes a directory of markdown notes (titles, paths, tags and
headings) and searches it as you type. Without a subcommand it starts the
interactive search.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentPreRunE = setupLogging
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/sift/config.toml)")
	pf.StringVar(&flagDB, "db", "", "History database (default $XDG_DATA_HOME/sift/sift.db)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
}

// Execute is called by main.go.
func Execute() {
	if err := execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(flagLogLevel))); err != nil {
		return fmt.Errorf("invalid log level %q", flagLogLevel)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		closeLogFile()
		logFile = f
		w = f
	case !cmd.HasParent() || cmd.Name() == "tui" || interactiveTOC(cmd):
		// the alternate screen owns the terminal
		w = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}
