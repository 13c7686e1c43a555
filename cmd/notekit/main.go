// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notekit CLI: convert exported
// notes to Markdown and group Markdown files by year.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/notekit/internal/logging"
	"github.com/pdiddy/notekit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logs is the logger provider built before any subcommand runs.
var logs *logging.Provider

// rootCmd is the base command for the notekit CLI.
var rootCmd = &cobra.Command{
	Use:   "notekit",
	Short: "Convert note exports to Markdown and organize Markdown by year",
	Long: `notekit converts exported note JSON files (Google Keep Takeout) into
Markdown files with YAML front matter, and groups Markdown files into
per-year directories based on a YYYY-MM-DD filename prefix.

Each tool is a subcommand: convert and group. Runs can optionally be
recorded in a SQLite ledger and listed with the runs subcommand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		p, err := logging.NewProvider(types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})
		if err != nil {
			return err
		}
		logs = p
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// --input_dir and --input-dir name the same flag.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notekit.yaml or ~/.config/notekit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console, json, pretty")
	rootCmd.PersistentFlags().String("ledger", "", "SQLite run ledger path (empty disables recording)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("ledger.path", rootCmd.PersistentFlags().Lookup("ledger"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notekit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notekit"))
		}
	}

	viper.SetEnvPrefix("NOTEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// execute runs the root command with args and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
