// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notekit/internal/group"
	"github.com/pdiddy/notekit/pkg/types"
)

var groupCmd = &cobra.Command{
	Use:   "group --input-dir <dir>",
	Short: "Move dated Markdown files into per-year directories",
	Long: `Group walks the input directory for .md files whose names start with a
YYYY-MM-DD date and moves each one into <input-dir>/<YYYY>/. Files without a
date prefix are left where they are. A file that cannot be moved is logged and
the remaining files are still processed.`,
	Args: cobra.NoArgs,
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().String("input-dir", "", "directory to scan for Markdown files")
	groupCmd.Flags().Bool("dry-run", false, "log planned moves without changing anything")
	groupCmd.MarkFlagRequired("input-dir")

	rootCmd.AddCommand(groupCmd)
}

func runGroup(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	cfg := types.GroupConfig{InputDir: inputDir, DryRun: dryRun}

	log := logs.Logger("group")
	ctx := cmd.Context()

	rec := startRecording(ctx, log, types.Run{Tool: "group", InputDir: cfg.InputDir})
	g, err := group.New(cfg, group.WithLogger(log), group.WithRecorder(rec.recorder()))
	if err != nil {
		log.Error("invalid configuration", "error", err)
		rec.finish(ctx, types.BatchResult{})
		return err
	}

	result, err := g.Run(ctx, os.Stdout)
	rec.finish(ctx, result)
	return err
}
