package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"instinct/internal/api"
	"instinct/internal/instinct"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var domain string
	var minConfidence float64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export instincts in the frontmatter format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd)
			if err != nil {
				return err
			}

			filter := instinct.Filter{Domain: strings.TrimSpace(domain)}
			if cmd.Flags().Changed("min-confidence") {
				filter.MinConfidence = &minConfidence
			}
			result, err := api.ExportInstincts(cmd.Context(), api.ExportRequest{
				Config:     cfg,
				Logger:     logger,
				Filter:     filter,
				OutputPath: outputPath,
			})
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), result.Warnings)

			out := cmd.OutOrStdout()
			switch {
			case result.Status == api.StatusEmpty:
				fmt.Fprintln(out, result.Message)
			case result.OutputPath != "":
				fmt.Fprintf(out, "Exported %d instincts to %s\n", result.Count, result.OutputPath)
			default:
				fmt.Fprint(out, result.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Only export instincts in this domain")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Only export instincts at or above this confidence")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
