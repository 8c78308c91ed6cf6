package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"instinct/internal/collection"
	"instinct/internal/config"
	"instinct/internal/fileutil"
	"instinct/internal/instinct"
	"instinct/internal/logging"
)

// StatusRequest describes a status run.
type StatusRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

// RoleCount is the number of instincts loaded from one storage root.
type RoleCount struct {
	Role  string `json:"role"`
	Dir   string `json:"dir"`
	Count int    `json:"count"`
}

// DomainGroup holds the instincts of one domain, highest confidence first.
type DomainGroup struct {
	Domain    string              `json:"domain"`
	Instincts []instinct.Instinct `json:"instincts"`
}

// StatusResult summarises the loaded collection.
type StatusResult struct {
	Status            Status               `json:"status"`
	Total             int                  `json:"total"`
	Roles             []RoleCount          `json:"roles"`
	Domains           []DomainGroup        `json:"domains"`
	ObservationsPath  string               `json:"observations_path"`
	ObservationsFound bool                 `json:"observations_found"`
	Observations      int                  `json:"observations"`
	Warnings          []collection.Warning `json:"-"`
}

// InstinctStatus loads every root and groups the result by domain.
func InstinctStatus(ctx context.Context, req StatusRequest) (StatusResult, error) {
	if req.Config == nil {
		return StatusResult{}, errors.New("status requires config")
	}
	logger := logging.NewComponentLogger(ensureLogger(req.Logger), "status")
	cfg := req.Config

	coll, err := collection.NewLoader(req.Logger).Load(ctx, StorageRoots(cfg))
	if err != nil {
		return StatusResult{}, fmt.Errorf("load instincts: %w", err)
	}

	result := StatusResult{
		Status:           StatusOK,
		Total:            len(coll.Instincts),
		Warnings:         coll.Warnings,
		ObservationsPath: cfg.Paths.ObservationsFile,
	}
	counts := coll.CountByRole()
	for _, root := range cfg.Storage.Roots {
		result.Roles = append(result.Roles, RoleCount{Role: root.Name, Dir: root.Dir, Count: counts[root.Name]})
	}
	result.Domains = groupByDomain(coll.Instincts)

	if result.Total == 0 {
		result.Status = StatusEmpty
	}

	count, found, err := fileutil.CountLines(cfg.Paths.ObservationsFile)
	if err != nil {
		logging.WarnWithContext(logger, "observations file unreadable", "observations_read_failed",
			logging.String("path", cfg.Paths.ObservationsFile),
			logging.Error(err),
			logging.String(logging.FieldImpact, "observation count omitted from status"))
	} else {
		result.ObservationsFound = found
		result.Observations = count
	}
	return result, nil
}

func groupByDomain(instincts []instinct.Instinct) []DomainGroup {
	byDomain := make(map[string][]instinct.Instinct)
	for _, inst := range instincts {
		domain := inst.EffectiveDomain()
		byDomain[domain] = append(byDomain[domain], inst)
	}
	domains := make([]string, 0, len(byDomain))
	for domain := range byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	groups := make([]DomainGroup, 0, len(domains))
	for _, domain := range domains {
		members := byDomain[domain]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].EffectiveConfidence() > members[j].EffectiveConfidence()
		})
		groups = append(groups, DomainGroup{Domain: domain, Instincts: members})
	}
	return groups
}
