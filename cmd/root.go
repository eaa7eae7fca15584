// Package cmd implements the scout command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scout/internal/bootstrap"
	"github.com/jonesrussell/scout/internal/config"
	"github.com/jonesrussell/scout/internal/logger"
)

const envPrefix = "SCOUT"

// Global flag keys.
const (
	keyConfig    = "config"
	keyDebug     = "debug"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

// Execute runs the root command until it returns or the process receives
// SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Each call gets its own viper
// instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "scout",
		Short:         "Audit small-business websites and draft outreach",
		Long:          `scout audits a list of business websites against an industry profile, scores them, and drafts personalized outreach for the weakest sites.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (default is $CONFIG_PATH or ./config.yml)")
	flags.Bool(keyDebug, false, "enable debug logging")
	flags.String(keyLogLevel, "", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "", "log format (json, console)")
	_ = v.BindPFlags(flags)

	root.AddCommand(
		newAdviseCommand(v),
		newAuditCommand(v),
		newIndustriesCommand(v),
		newServeCommand(v),
		newVersionCommand(),
	)
	return root
}

// deps is what a command needs after configuration is resolved.
type deps struct {
	cfg *config.Config
	log logger.Logger
}

// loadDeps reads the config file and applies global flag and SCOUT_* env
// overrides. consoleDefault selects console logs unless --log-format or
// LOG_FORMAT asks otherwise.
func loadDeps(v *viper.Viper, consoleDefault bool) (*deps, error) {
	cfg, err := bootstrap.LoadConfig(v.GetString(keyConfig))
	if err != nil {
		return nil, err
	}

	if level := v.GetString(keyLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if v.GetBool(keyDebug) {
		cfg.Logging.Level = "debug"
		cfg.Server.Debug = true
	}
	switch format := v.GetString(keyLogFormat); {
	case format != "":
		cfg.Logging.Format = format
	case consoleDefault && os.Getenv("LOG_FORMAT") == "":
		cfg.Logging.Format = logger.FormatConsole
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &deps{cfg: cfg, log: log}, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scout version %s\n", bootstrap.Version)
		},
	}
}
