package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/parsco/check"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile  string
	logLevel string
	timeout  time.Duration

	logger *zap.Logger
	config check.Config
)

var rootCmd = &cobra.Command{
	Use:               "parsco [paths...]",
	Short:             "parsco - check files against parser combinator grammars",
	TraverseChildren:  true, // Prioritize subcommands
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: parsco [path1 path2 ...] => behaves like the parse subcommand
		return parseCmd.RunE(parseCmd, args)
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errParseFailed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default "+check.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides the configuration)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for a parse run")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(grammarsCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	config, err = loadConfiguration(cfgFile)
	if err != nil {
		return err
	}

	level := config.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, err = newLogger(level)
	return err
}

// loadConfiguration reads path, or the default file when path is empty.
// A missing default file is not an error.
func loadConfiguration(path string) (check.Config, error) {
	if path == "" {
		if _, err := os.Stat(check.DefaultConfigFile); err != nil {
			return check.DefaultConfig(), nil
		}
		path = check.DefaultConfigFile
	}
	cfg, err := check.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}
