// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notekit/internal/convert"
	"github.com/pdiddy/notekit/pkg/types"
)

const defaultOutputDir = "data/markdown"

var convertCmd = &cobra.Command{
	Use:   "convert --input_dir <dir>",
	Short: "Convert exported note JSON files to Markdown",
	Long: `Convert reads every .json note export in the input directory and writes
one Markdown file per note into the output directory. The output directory is
cleared first, so it only ever holds the results of the latest run.

Each file is named <YYYY-MM-DD-HH-MM>-<title>.md after the note's creation
time and sanitized title, and starts with YAML front matter holding the title
and the created and modified dates. Notes that cannot be read are logged and
skipped.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("input-dir", "", "directory containing exported .json notes (also --input_dir)")
	convertCmd.Flags().String("output-dir", defaultOutputDir, "directory for generated Markdown; cleared on every run")
	convertCmd.Flags().String("day-format", string(types.DayOfMonth), "day shown in dates: day-of-month or weekday-index")
	convertCmd.Flags().Bool("strict", false, "exit non-zero when any note fails to convert")
	convertCmd.MarkFlagRequired("input-dir")

	viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("convert.day_format", convertCmd.Flags().Lookup("day-format"))
	viper.BindPFlag("convert.strict", convertCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	cfg := types.ConvertConfig{
		InputDir:  inputDir,
		OutputDir: viper.GetString("convert.output_dir"),
		DayFormat: types.DayFormat(viper.GetString("convert.day_format")),
		Strict:    viper.GetBool("convert.strict"),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}

	log := logs.Logger("convert")
	ctx := cmd.Context()

	rec := startRecording(ctx, log, types.Run{Tool: "convert", InputDir: cfg.InputDir, OutputDir: cfg.OutputDir})
	conv, err := convert.New(cfg, convert.WithLogger(log), convert.WithRecorder(rec.recorder()))
	if err != nil {
		log.Error("invalid configuration", "error", err)
		rec.finish(ctx, types.BatchResult{})
		return err
	}

	result, err := conv.Run(ctx, os.Stdout)
	rec.finish(ctx, result)
	if err != nil {
		return err
	}
	if cfg.Strict && result.HasFailures() {
		return fmt.Errorf("%d note(s) failed conversion", result.Failed)
	}
	return nil
}
