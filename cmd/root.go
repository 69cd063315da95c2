// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/naka-gawa/pr-insights/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dotEnvFile is read from the working directory before any command runs.
const dotEnvFile = ".env"

var rootCmd = &cobra.Command{
	Use:   "pr-insights",
	Short: "A CLI tool to analyze a GitHub user's pull requests.",
	Long: `pr-insights classifies every pull request authored by a GitHub user by
type and authoring tool, aggregates merge/pending/closed/stale counts and
time histograms, and scores productivity over time.

Data is fetched from the GitHub API (GITHUB_TOKEN is required) or read from a
JSON export with --input.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./.pr-insights.yaml or $HOME/.pr-insights.yaml)")
}

// loadViper resolves flags, environment, .env and the config file for cmd.
func loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	v := viper.New()
	config.SetDefaults(v)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := config.ReadFile(v); err != nil {
		return nil, err
	}
	return v, nil
}

// newLogger discards all logs unless verbose is set.
func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}
