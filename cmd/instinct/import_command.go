package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"instinct/internal/api"
	"instinct/internal/instinct"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var force bool
	var minConfidence float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import instincts from a file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			req := api.ImportRequest{
				Config: cfg,
				Logger: logger,
				Source: args[0],
				DryRun: dryRun,
			}
			if cmd.Flags().Changed("min-confidence") {
				if minConfidence < 0 || minConfidence > 1 {
					return fmt.Errorf("--min-confidence must be between 0 and 1")
				}
				req.MinConfidence = &minConfidence
			}
			if !force && !jsonOutput {
				stdin := bufio.NewReader(cmd.InOrStdin())
				req.Confirm = func(count int) (bool, error) {
					return promptYesNo(stdin, out, fmt.Sprintf("Import %d instincts?", count))
				}
			}

			if !jsonOutput {
				fmt.Fprintf(out, "Importing instincts from: %s\n", req.Source)
			}
			result, err := api.ImportInstincts(cmd.Context(), req)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), result.Warnings)
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			fmt.Fprintf(out, "Found %d instincts\n", result.Parsed)
			if result.Message != "" && result.Parsed == 0 {
				fmt.Fprintln(out, result.Message)
				return nil
			}
			writeImportPlan(out, result)
			switch {
			case result.Status == api.StatusEmpty:
				fmt.Fprintln(out, result.Message)
			case result.DryRun:
				fmt.Fprintln(out, "\n[DRY RUN] No changes made.")
			case result.Declined:
				fmt.Fprintln(out, "Import cancelled.")
			default:
				fmt.Fprintf(out, "\nImported %d instincts to %s\n", result.Written, result.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Only import instincts at or above this confidence")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON (implies --force)")
	return cmd
}

func writeImportPlan(w io.Writer, result api.ImportResult) {
	plan := result.Plan
	writeGroup := func(title, marker string, records []instinct.Instinct, withConfidence bool) {
		if len(records) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s (%d):\n", title, len(records))
		for _, inst := range records {
			if withConfidence {
				fmt.Fprintf(w, "  %s %s (confidence: %s)\n", marker, inst.ID, instinct.FormatConfidence(inst.EffectiveConfidence()))
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", marker, inst.ID)
		}
	}
	writeGroup("NEW", "+", plan.ToAdd, true)
	writeGroup("UPDATE", "~", plan.ToUpdate, true)
	writeGroup("SKIP (already present with equal or higher confidence)", "-", plan.Duplicates, false)
}

// promptYesNo asks a y/N question; anything other than y or yes declines.
func promptYesNo(r *bufio.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "\n%s [y/N] ", question)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
