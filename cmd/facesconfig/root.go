package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/telemetry/logging"
)

// app is the state shared by subcommands once the root command has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	config *config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "facesconfig",
		Short: "Load and inspect faces configuration documents",
		Long: `facesconfig parses an ordered list of faces configuration documents into
one merged configuration graph.

Documents are read in order. Later documents override earlier ones field by
field, and a single broken document fails the whole load.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: json, text, console")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "shorthand for --log-level debug")

	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newLintCommand(a))
	rootCmd.AddCommand(newWatchCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// setup loads the configuration and builds the logger. Flags override the
// file and the environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(a.configPath)
	if err != nil {
		return err
	}

	logCfg := &cfg.Telemetry.Logging
	if a.logLevel != "" {
		logCfg.Level = a.logLevel
	}
	if a.verbose {
		logCfg.Level = "debug"
	}
	if a.logFormat != "" {
		logCfg.Format = a.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:     logCfg.Level,
		Format:    logCfg.Format,
		AddSource: logCfg.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger.Slog()
	slog.SetDefault(a.logger)
	return nil
}

// documentsConfig returns the document settings, with positional arguments
// replacing the configured paths.
func (a *app) documentsConfig(args []string) config.DocumentsConfig {
	docs := a.config.Documents
	if len(args) > 0 {
		docs.Paths = args
	}
	return docs
}

func (a *app) requirePaths(docs config.DocumentsConfig) error {
	if len(docs.Paths) == 0 {
		return fmt.Errorf("no documents: pass paths as arguments or set documents.paths")
	}
	for _, p := range docs.Paths {
		if _, err := os.Stat(p); err != nil {
			return err
		}
	}
	return nil
}
