package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
	dirFlag string
	debug   bool
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Terminal intake-form runner",
	Long: `intake - Run structured intake forms in the terminal.

Forms are JSON definitions rendered as a keyboard- and mouse-driven TUI.
Partially filled forms are drafted locally and restored on the next run.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "workspace directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to .intake/debug.log")
	cobra.OnInitialize(initBaseDir, initLogging)
}

func initBaseDir() {
	if dirFlag != "" {
		abs, err := filepath.Abs(dirFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --dir: %v\n", err)
			os.Exit(1)
		}
		baseDir = abs
		return
	}
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// initLogging routes slog away from the terminal so log lines never
// corrupt the TUI. Without --debug, logs are discarded.
func initLogging() {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}

	logDir := filepath.Join(baseDir, ".intake")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create log directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open debug log: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// getBaseDir returns the base directory for the workspace
func getBaseDir() string {
	return baseDir
}
