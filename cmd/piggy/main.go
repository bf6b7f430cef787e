package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/piggy/internal/cli"
	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "piggy",
		Short: cli.PiggyIcon + " Savings goal tracker",
		Long: `piggy keeps track of savings goals: how much you want to save, how much
is already put aside, and how close every goal is to being done.

Every change is written to the goal store immediately.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/piggy/config.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("store", "", "goal store path (default: goals.json)")
	flags.String("backend", "", "goal store backend (json, sqlite)")

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyStoragePath, flags.Lookup("store"))
	_ = viper.BindPFlag(config.KeyStorageBackend, flags.Lookup("backend"))

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(importOFXCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		slog.Debug("command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir := config.DefaultConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PIGGY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "piggy %s\n", version)
		},
	}
}
