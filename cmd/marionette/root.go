package main

import (
	"fmt"
	"os"

	"github.com/aretw0/marionette/internal/config"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "marionette",
	Short:         "Marionette plays keyboard and mouse automation scripts",
	Long:          `Marionette loads line-oriented automation scripts and plays their macros against an input surface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if code, ok := domain.IsExit(err); ok {
		os.Exit(code)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to load scripts from instead of the filesystem")
	rootCmd.PersistentFlags().Int("recursion-limit", 0, "Maximum nesting depth of macro calls")
}

// loadConfig reads the config file, if any, and applies the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		cfg.Redis.Addr, _ = flags.GetString("redis")
	}
	if flags.Changed("recursion-limit") {
		cfg.RecursionLimit, _ = flags.GetInt("recursion-limit")
	}
	if flags.Lookup("log-level") != nil && flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Lookup("log-format") != nil && flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Lookup("screen") != nil && flags.Changed("screen") {
		cfg.Screen, _ = flags.GetString("screen")
	}
	if flags.Lookup("wait-interval") != nil && flags.Changed("wait-interval") {
		cfg.WaitInterval, _ = flags.GetDuration("wait-interval")
	}
	return cfg, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
