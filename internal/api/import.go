package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"instinct/internal/collection"
	"instinct/internal/config"
	"instinct/internal/fileutil"
	"instinct/internal/instinct"
	"instinct/internal/logging"
	"instinct/internal/merge"
	"instinct/internal/source"
	"instinct/internal/textutil"
)

// ImportRequest describes an import run.
type ImportRequest struct {
	Config *config.Config
	Logger *slog.Logger
	// Source is a local path or an http(s) URL.
	Source string
	// Reader fetches Source; nil builds one from config.
	Reader *source.Reader
	// MinConfidence overrides config.Import.MinConfidence when non-nil.
	MinConfidence *float64
	DryRun        bool
	// Confirm is asked before writing; nil means proceed.
	Confirm func(count int) (bool, error)
	Now     func() time.Time
}

// ImportResult summarises an import run.
type ImportResult struct {
	Status        Status               `json:"status"`
	Message       string               `json:"message,omitempty"`
	Source        string               `json:"source"`
	Parsed        int                  `json:"parsed"`
	MinConfidence float64              `json:"min_confidence"`
	Plan          merge.Result         `json:"plan"`
	Warnings      []collection.Warning `json:"-"`
	DryRun        bool                 `json:"dry_run"`
	Declined      bool                 `json:"declined"`
	OutputPath    string               `json:"output_path,omitempty"`
	Written       int                  `json:"written"`
}

// ImportInstincts reads, parses, and merges an import source into the
// configured import root.
func ImportInstincts(ctx context.Context, req ImportRequest) (ImportResult, error) {
	if req.Config == nil {
		return ImportResult{}, errors.New("import requires config")
	}
	logger := logging.NewComponentLogger(ensureLogger(req.Logger), "import")
	cfg := req.Config

	result := ImportResult{Source: strings.TrimSpace(req.Source), DryRun: req.DryRun}
	result.MinConfidence = cfg.Import.MinConfidence
	if req.MinConfidence != nil {
		result.MinConfidence = *req.MinConfidence
	}

	reader := req.Reader
	if reader == nil {
		reader = source.New(source.WithTimeout(cfg.ImportTimeout()), source.WithUserAgent(cfg.Import.UserAgent))
	}
	payload, err := reader.Read(ctx, result.Source)
	if err != nil {
		return result, err
	}

	candidates, err := instinct.Parse(payload)
	if err != nil {
		return result, fmt.Errorf("parse %s: %w", result.Source, err)
	}
	result.Parsed = len(candidates)
	if len(candidates) == 0 {
		result.Status = StatusEmpty
		result.Message = "No valid instincts found in source."
		return result, nil
	}

	existing, err := collection.NewLoader(req.Logger).Load(ctx, StorageRoots(cfg))
	if err != nil {
		return result, fmt.Errorf("load existing instincts: %w", err)
	}
	result.Warnings = existing.Warnings

	result.Plan = merge.Plan(candidates, existing.Instincts, result.MinConfidence)
	logger.Info("import planned",
		logging.String("source", result.Source),
		logging.Int("parsed", result.Parsed),
		logging.Float64("min_confidence", result.MinConfidence),
		logging.Int("to_add", len(result.Plan.ToAdd)),
		logging.Int("to_update", len(result.Plan.ToUpdate)),
		logging.Int("duplicates", len(result.Plan.Duplicates)))

	if result.Plan.Empty() {
		result.Status = StatusEmpty
		result.Message = "Nothing to import."
		return result, nil
	}
	result.Status = StatusOK

	if req.DryRun {
		return result, nil
	}

	records := importRecords(result.Plan, result.Source)
	if req.Confirm != nil {
		ok, err := req.Confirm(len(records))
		if err != nil {
			return result, fmt.Errorf("confirm import: %w", err)
		}
		if !ok {
			result.Declined = true
			return result, nil
		}
	}

	root, ok := cfg.Root(cfg.Storage.ImportRoot)
	if !ok {
		return result, fmt.Errorf("import root %q is not configured", cfg.Storage.ImportRoot)
	}
	now := nowFunc(req.Now)
	name := fmt.Sprintf("%s-%s.yaml", textutil.SanitizeToken(source.Name(result.Source)), now.Format("20060102-150405"))
	outputPath := filepath.Join(root.Dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "# Imported from %s\n", result.Source)
	fmt.Fprintf(&b, "# Date: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Instincts: %d\n\n", len(records))
	b.WriteString(instinct.RenderWith(records, instinct.KeyImportedFrom))

	if err := fileutil.WriteFileAtomic(outputPath, []byte(b.String()), 0o644); err != nil {
		logging.ErrorWithContext(logger, "import write failed", "import_write_failed",
			logging.String("path", outputPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the import root"))
		return result, fmt.Errorf("write import file: %w", err)
	}
	result.OutputPath = outputPath
	result.Written = len(records)
	logger.Info("instincts imported",
		logging.String("path", outputPath),
		logging.Int("written", len(records)))
	return result, nil
}

// importRecords stamps provenance on the adds and updates that will be
// written. source_repo is left as the record carried it; the import
// location goes to imported_from.
func importRecords(plan merge.Result, location string) []instinct.Instinct {
	records := make([]instinct.Instinct, 0, len(plan.ToAdd)+len(plan.ToUpdate))
	for _, group := range [][]instinct.Instinct{plan.ToAdd, plan.ToUpdate} {
		for _, inst := range group {
			inst.Source = SourceInherited
			extra := make(map[string]string, len(inst.Extra)+1)
			maps.Copy(extra, inst.Extra)
			extra[instinct.KeyImportedFrom] = location
			inst.Extra = extra
			inst.SourceFile = ""
			inst.SourceType = ""
			records = append(records, inst)
		}
	}
	return records
}
