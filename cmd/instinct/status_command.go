package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"instinct/internal/api"
	"instinct/internal/textutil"
)

const (
	triggerWidth = 40
	actionWidth  = 60
)

var statusColumns = []tableColumn{
	{Header: "Confidence"},
	{Header: "%", Align: text.AlignRight},
	{Header: "ID"},
	{Header: "Trigger"},
	{Header: "Action", MaxWidth: actionWidth},
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show loaded instincts grouped by domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd)
			if err != nil {
				return err
			}
			result, err := api.InstinctStatus(cmd.Context(), api.StatusRequest{Config: cfg, Logger: logger})
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), result.Warnings)
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(result, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderStatus(result api.StatusResult, colorize bool) string {
	var b strings.Builder
	if result.Status == api.StatusEmpty {
		b.WriteString("No instincts found.\n\n")
		for _, role := range result.Roles {
			fmt.Fprintf(&b, "%s%s: %s\n", statusIndent, role.Role, role.Dir)
		}
		writeObservations(&b, result)
		return b.String()
	}

	fmt.Fprintf(&b, "Instinct Status (%d total)\n", result.Total)
	for _, role := range result.Roles {
		fmt.Fprintf(&b, "%s%-10s %d\n", statusIndent, role.Role+":", role.Count)
	}

	title := cases.Title(language.Und)
	for _, group := range result.Domains {
		b.WriteString("\n")
		for _, line := range renderSectionHeader(fmt.Sprintf("%s (%d)", title.String(group.Domain), len(group.Instincts)), colorize) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		rows := make([][]string, 0, len(group.Instincts))
		for _, inst := range group.Instincts {
			confidence := inst.EffectiveConfidence()
			bar := colorizeConfidence(confidence, textutil.ConfidenceBar(confidence), colorize)
			action := textutil.ActionLine(inst.Content)
			rows = append(rows, []string{
				bar,
				fmt.Sprintf("%.0f%%", confidence*100),
				inst.ID,
				textutil.Truncate(inst.EffectiveTrigger(), triggerWidth),
				textutil.Ternary(action == "", "-", action),
			})
		}
		b.WriteString(renderTable(statusColumns, rows))
		b.WriteString("\n")
	}
	writeObservations(&b, result)
	return b.String()
}

func writeObservations(b *strings.Builder, result api.StatusResult) {
	if !result.ObservationsFound {
		return
	}
	fmt.Fprintf(b, "\nObservations: %d events logged\n%sFile: %s\n", result.Observations, statusIndent, result.ObservationsPath)
}
