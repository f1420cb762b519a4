// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lunch-menu CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lunch-menu CLI.
var rootCmd = &cobra.Command{
	Use:   "lunch-menu",
	Short: "Fetch the daily lunch menu and save it as JSON",
	Long: `lunch-menu downloads a restaurant's daily lunch menu page, rebuilds the
dish and price records from its loosely structured text blocks, and writes
them to a JSON file. Menus can also be archived in a local SQLite history.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lunch-menu.yaml or ~/.config/lunch-menu/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lunch-menu")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lunch-menu"))
		}
	}

	viper.SetEnvPrefix("LUNCH_MENU")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a setting: an explicit flag wins, then the config
// file or environment under key, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

// durationSetting is stringSetting for durations.
func durationSetting(cmd *cobra.Command, flag, key string) time.Duration {
	v, _ := cmd.Flags().GetDuration(flag)
	if cmd.Flags().Changed(flag) {
		return v
	}
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return v
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
