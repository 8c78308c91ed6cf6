package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"instinct/internal/collection"
	"instinct/internal/config"
	"instinct/internal/fileutil"
	"instinct/internal/instinct"
	"instinct/internal/logging"
)

// ExportRequest describes an export run. An empty OutputPath returns the
// rendered text without writing it.
type ExportRequest struct {
	Config     *config.Config
	Logger     *slog.Logger
	Filter     instinct.Filter
	OutputPath string
	Now        func() time.Time
}

// ExportResult carries the rendered collection.
type ExportResult struct {
	Status     Status
	Message    string
	Count      int
	Content    string
	OutputPath string
	Warnings   []collection.Warning
}

// ExportInstincts loads, filters, and renders the collection.
func ExportInstincts(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if req.Config == nil {
		return ExportResult{}, errors.New("export requires config")
	}
	logger := logging.NewComponentLogger(ensureLogger(req.Logger), "export")

	coll, err := collection.NewLoader(req.Logger).Load(ctx, StorageRoots(req.Config))
	if err != nil {
		return ExportResult{}, fmt.Errorf("load instincts: %w", err)
	}
	result := ExportResult{Warnings: coll.Warnings}

	selected := req.Filter.Apply(coll.Instincts)
	if len(selected) == 0 {
		result.Status = StatusEmpty
		result.Message = "No instincts to export."
		return result, nil
	}
	result.Status = StatusOK
	result.Count = len(selected)

	var b strings.Builder
	b.WriteString("# Instincts export\n")
	fmt.Fprintf(&b, "# Date: %s\n", nowFunc(req.Now).Format(time.RFC3339))
	fmt.Fprintf(&b, "# Total: %d\n\n", len(selected))
	b.WriteString(instinct.Render(selected))
	result.Content = b.String()

	if path := strings.TrimSpace(req.OutputPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return result, fmt.Errorf("resolve output path: %w", err)
		}
		if err := fileutil.WriteFileAtomic(expanded, []byte(result.Content), 0o644); err != nil {
			return result, fmt.Errorf("write export: %w", err)
		}
		result.OutputPath = expanded
		logger.Info("instincts exported",
			logging.String("path", expanded),
			logging.Int("count", len(selected)))
	}
	return result, nil
}
