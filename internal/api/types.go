package api

import (
	"log/slog"
	"time"

	"instinct/internal/collection"
	"instinct/internal/config"
	"instinct/internal/logging"
)

// Status reports whether a workflow had anything to act on.
type Status string

const (
	StatusOK    Status = "ok"
	StatusEmpty Status = "empty"
)

// SourceInherited is the provenance label written on imported records.
const SourceInherited = "inherited"

// StorageRoots converts configured roots into loader roots, in config order.
func StorageRoots(cfg *config.Config) []collection.Root {
	if cfg == nil {
		return nil
	}
	roots := make([]collection.Root, 0, len(cfg.Storage.Roots))
	for _, root := range cfg.Storage.Roots {
		roots = append(roots, collection.Root{
			Name:     root.Name,
			Dir:      root.Dir,
			Patterns: append([]string(nil), root.Patterns...),
		})
	}
	return roots
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.NewNop()
	}
	return logger
}

func nowFunc(fn func() time.Time) time.Time {
	if fn == nil {
		return time.Now()
	}
	return fn()
}
