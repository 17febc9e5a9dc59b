package yalc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"

	"github.com/openledger/yalc/internal/client"
	"github.com/openledger/yalc/internal/config"
	"github.com/openledger/yalc/internal/core"
	"github.com/openledger/yalc/internal/metrics"
	"github.com/openledger/yalc/internal/store"
)

var (
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	validLogLevelsStr = strings.Join(func() []string {
		keys := maps.Keys(validLogLevels)
		slices.Sort(keys)
		return keys
	}(), "|")
)

var RootCmd = &cobra.Command{
	Use:   "yalc",
	Short: "Interact with a remote ledger service",
	Long:  `yalc talks to a ledger service over HTTP: it fetches the chain, submits transactions and triggers block production.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := viper.GetString("logLevel")
		if err := setLogLevel(logLevel); err != nil {
			return err
		}
		slog.Debug("Application started", "version", Version)
		return nil
	},
}

// setLogLevel sets the log level
func setLogLevel(logLevel string) error {
	level, exists := validLogLevels[logLevel]
	if !exists {
		return fmt.Errorf("invalid log level: %s. Valid log levels are: %s", logLevel, validLogLevelsStr)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// runCore wires the snapshot store, HTTP client and event loop for the
// service at address, and starts the loop on its own goroutine.
func runCore(ctx context.Context, address string) (*core.Core, *metrics.Ops, error) {
	clientCfg := config.LoadClientConfigFromCLI()
	if err := clientCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	ops := metrics.NewOps()
	c := core.New(store.New(), client.New(address, clientCfg.Timeout), ops)
	go c.Run(ctx)

	return c, ops, nil
}

func init() {
	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", fmt.Sprintf("set log level (%s)", validLogLevelsStr))
	RootCmd.PersistentFlags().Duration("timeout", 0, "request timeout (0 means no timeout)")
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind rootCmd flags", "error", err)
	}

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.yalc")
	viper.AddConfigPath("/etc/yalc")

	viper.SetEnvPrefix("yalc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(chainCmd)
	RootCmd.AddCommand(submitCmd)
	RootCmd.AddCommand(mineCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(nodesCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := viper.ReadInConfig(); err == nil {
		slog.Info("Using config file", "file", viper.ConfigFileUsed())
	} else {
		slog.Info("No config file found")
	}

	if err := RootCmd.Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}
