// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the enex-convert CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE from --verbose and --json-log.
var logger = zerolog.New(os.Stderr)

// rootCmd is the base command for the enex-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "enex-convert",
	Short: "Convert Evernote export archives into JSON and dated PDF folders",
	Long: `enex-convert reads Evernote export archives (.enex) from a source
directory and writes, per archive, a JSON dump of all notes plus every PDF
attachment under <dest>/<notebook>/<YYYY>/<MM>/, named after the note date,
its cleaned title, and a short content hash.

Use "convert" to run the pipeline and "catalog" to query what was extracted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, viper.GetBool("verbose"), viper.GetBool("json_log"))
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("config", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./enex-convert.yaml or ~/.config/enex-convert/config.yaml)")
	rootCmd.PersistentFlags().String("dest-dir", "dist", "destination root for JSON dumps and extracted PDFs")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().Bool("json-log", false, "log JSON lines instead of console output")

	viper.SetDefault("dest_dir", "dist")
	_ = viper.BindPFlag("dest_dir", rootCmd.PersistentFlags().Lookup("dest-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json_log", rootCmd.PersistentFlags().Lookup("json-log"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("enex-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "enex-convert"))
		}
	}

	viper.SetEnvPrefix("ENEX_CONVERT")
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()
}

// newLogger returns a console logger on w, or a JSON-lines logger when
// jsonLog is set.
func newLogger(w io.Writer, verbose, jsonLog bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if !jsonLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
