package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/unroll/internal/cli"
	"github.com/Veraticus/unroll/internal/common"
	"github.com/Veraticus/unroll/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "unroll",
		Short: "💳 Track and trim your subscriptions",
		Long: `unroll keeps a local list of the services you pay for, totals what they cost
each month, and lets you simulate what cutting some of them would save.

Run 'unroll dashboard' for the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/unroll/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "database path (default: $HOME/.local/share/unroll/unroll.db)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json, text)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyDatabasePath, rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(cancelCmd())
	rootCmd.AddCommand(savingsCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(checkpointCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background())

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(userMessage(err)))
		os.Exit(1)
	}
}

// userMessage prefers the friendly text of a UserError.
func userMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

func initConfig(cfgFile string) error {
	// A missing .env is fine; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/unroll", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Defaults and UNROLL_* environment variables
	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	// Set up logging
	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(cfg *config.Config) error {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.LogFormat)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "unroll %s\n", version)
		},
	}
}
