// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cms-seeder CLI. It parses markdown
// seed documents and publishes them to a CMS REST API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cms-seeder/internal/logging"
	"github.com/pdiddy/cms-seeder/internal/publish"
	"github.com/pdiddy/cms-seeder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the cms-seeder CLI.
var rootCmd = &cobra.Command{
	Use:   "cms-seeder",
	Short: "Seed a CMS from a markdown document",
	Long: `cms-seeder reads a markdown seed document describing an application, its
pages, and their content blocks, and creates them through the CMS REST API.

Use parse to inspect what a seed document contains, publish (optionally with
--dry-run) to create the records, and journal to review past runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, logging.NewConsole(os.Stderr))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cms-seeder.yaml or ~/.config/cms-seeder/cms-seeder.yaml)")
	rootCmd.PersistentFlags().String("log-format", "text", "log output: text, json, console, or pretty")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for structured formats")

	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cms-seeder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cms-seeder"))
		}
	}

	viper.SetDefault("timeout", publish.DefaultTimeout)
	viper.SetDefault("user_agent", publish.DefaultUserAgent)
	viper.SetDefault("retries", 0)

	viper.SetEnvPrefix("CMS_SEEDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

// newLogger builds the logger selected by log.format. The text format is the
// symbol-prefixed console; the others are go-logger outputs.
func newLogger(name string) (logging.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString("log.format")))
	if format == "" || format == "text" {
		return logging.NewConsole(os.Stdout), nil
	}
	return logging.NewGoLogger(logging.GoLoggerConfig{
		Level:  viper.GetString("log.level"),
		Format: format,
		Name:   name,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
