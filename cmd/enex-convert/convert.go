// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/enex-convert/internal/catalog"
	"github.com/pdiddy/enex-convert/internal/convert"
	"github.com/pdiddy/enex-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source-dir]",
	Short: "Convert .enex archives to JSON and extract PDF attachments",
	Long: `Convert parses every .enex archive in the source directory, writes one
JSON dump per archive, and extracts PDF attachments into
<dest>/<notebook>/<YYYY>/<MM>/<YYYY-MM-DD> <title> <hash>.pdf.

The destination is deleted and recreated first unless --reset=false is
given; existing attachments are never overwritten, so a run without reset
only fills gaps. Use --dry-run to print the planned writes as YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("source-dir", "data", "directory containing .enex archives")
	convertCmd.Flags().Bool("reset", true, "delete and recreate the destination before converting")
	convertCmd.Flags().Bool("catalog", true, "record results in <dest>/catalog.db")
	convertCmd.Flags().Bool("dry-run", false, "plan writes and print them as YAML without touching the filesystem")

	viper.SetDefault("source_dir", "data")
	viper.SetDefault("reset", true)
	viper.SetDefault("catalog", true)
	_ = viper.BindPFlag("source_dir", convertCmd.Flags().Lookup("source-dir"))
	_ = viper.BindPFlag("reset", convertCmd.Flags().Lookup("reset"))
	_ = viper.BindPFlag("catalog", convertCmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("dry_run", convertCmd.Flags().Lookup("dry-run"))

	rootCmd.AddCommand(convertCmd)
}

// convertConfig builds the stage config from viper; a positional argument
// overrides the source directory.
func convertConfig(args []string) types.ConvertConfig {
	cfg := types.ConvertConfig{
		SourceDir: viper.GetString("source_dir"),
		DestDir:   viper.GetString("dest_dir"),
		Reset:     viper.GetBool("reset"),
		Catalog:   viper.GetBool("catalog"),
		DryRun:    viper.GetBool("dry_run"),
	}
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	return cfg
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(args)
	logger.Info().Str("source", cfg.SourceDir).Str("dest", cfg.DestDir).
		Bool("reset", cfg.Reset).Bool("dry_run", cfg.DryRun).Msg("starting conversion")

	files, err := convert.Prepare(cfg, logger)
	if err != nil {
		return err
	}

	var rec convert.Recorder
	if cfg.Catalog && !cfg.DryRun {
		store, err := catalog.NewStore(types.CatalogConfig{DestDir: cfg.DestDir})
		if err != nil {
			logger.Warn().Err(err).Msg("catalog unavailable, continuing without it")
		} else {
			defer store.Close()
			rec = store
		}
	}

	result, err := convert.ConvertBatch(cmd.Context(), cfg, files, rec, logger)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(result.Plans); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d archive(s) and %d attachment(s) failed", result.Failed, result.ResourceFailures)
	}
	return nil
}
