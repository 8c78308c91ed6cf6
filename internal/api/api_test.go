package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"instinct/internal/config"
	"instinct/internal/instinct"
	"instinct/internal/source"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

type testEnv struct {
	cfg       *config.Config
	personal  string
	inherited string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.HomeDir = base
	cfg.Paths.ObservationsFile = filepath.Join(base, "observations.jsonl")
	cfg.Storage.Roots = []config.Root{
		{Name: "personal", Dir: filepath.Join(base, "personal"), Patterns: []string{"*.yaml"}},
		{Name: "inherited", Dir: filepath.Join(base, "inherited"), Patterns: []string{"*.yaml"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	return &testEnv{cfg: &cfg, personal: cfg.Storage.Roots[0].Dir, inherited: cfg.Storage.Roots[1].Dir}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func rec(id, domain, confidence, body string) string {
	return "---\nid: " + id + "\ntrigger: \"when " + id + "\"\nconfidence: " + confidence + "\ndomain: " + domain + "\n---\n\n" + body + "\n\n"
}

func TestImportWritesAddsAndUpdates(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.personal, "mine.yaml"),
		rec("existing-low", "git", "0.4", "old")+rec("existing-high", "git", "0.9", "keep"))

	src := filepath.Join(t.TempDir(), "Team Pack.yaml")
	writeFile(t, src,
		rec("existing-low", "git", "0.8", "better")+
			rec("existing-high", "git", "0.9", "same")+
			rec("brand-new", "testing", "0.6", "## Action\nDo it")+
			rec("too-weak", "testing", "0.1", "weak"))

	floor := 0.3
	result, err := ImportInstincts(context.Background(), ImportRequest{
		Config:        env.cfg,
		Source:        src,
		MinConfidence: &floor,
		Now:           func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("ImportInstincts: %v", err)
	}
	if result.Status != StatusOK {
		t.Fatalf("status = %s (%s)", result.Status, result.Message)
	}
	if result.Parsed != 4 {
		t.Fatalf("parsed = %d", result.Parsed)
	}
	if len(result.Plan.ToAdd) != 1 || result.Plan.ToAdd[0].ID != "brand-new" {
		t.Fatalf("unexpected adds: %+v", result.Plan.ToAdd)
	}
	if len(result.Plan.ToUpdate) != 1 || result.Plan.ToUpdate[0].ID != "existing-low" {
		t.Fatalf("unexpected updates: %+v", result.Plan.ToUpdate)
	}
	if len(result.Plan.Duplicates) != 1 || result.Plan.Duplicates[0].ID != "existing-high" {
		t.Fatalf("unexpected duplicates: %+v", result.Plan.Duplicates)
	}

	wantPath := filepath.Join(env.inherited, "team_pack-20260304-050607.yaml")
	if result.OutputPath != wantPath || result.Written != 2 {
		t.Fatalf("output = %s written=%d", result.OutputPath, result.Written)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Imported from "+src+"\n") {
		t.Fatalf("missing header: %q", data)
	}

	written, err := instinct.Parse(string(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(written) != 2 || written[0].ID != "brand-new" || written[1].ID != "existing-low" {
		t.Fatalf("unexpected written records: %+v", written)
	}
	for _, inst := range written {
		if inst.Source != SourceInherited || inst.Extra[instinct.KeyImportedFrom] != src {
			t.Fatalf("provenance not stamped: %+v", inst)
		}
		if inst.SourceRepo != "" {
			t.Fatalf("source_repo invented for %s: %q", inst.ID, inst.SourceRepo)
		}
	}
	if written[0].Content != "## Action\nDo it" || written[0].Trigger != "when brand-new" {
		t.Fatalf("content not preserved: %+v", written[0])
	}
}

func TestImportKeepsSourceRepoAndRecordsLocation(t *testing.T) {
	env := newTestEnv(t)
	src := filepath.Join(t.TempDir(), "pack.yaml")
	writeFile(t, src,
		"---\nid: r\nsource_repo: github.com/team/repo\nimported_from: \"old/place.yaml\"\n---\n\nwith repo\n\n"+
			"---\nid: s\n---\n\nwithout repo\n\n")

	result, err := ImportInstincts(context.Background(), ImportRequest{
		Config: env.cfg,
		Source: src,
		Now:    func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("ImportInstincts: %v", err)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if strings.Count(content, "imported_from: \""+src+"\"\n") != 2 {
		t.Fatalf("expected imported_from on both records:\n%s", content)
	}
	if strings.Count(content, "source_repo:") != 1 || !strings.Contains(content, "source_repo: github.com/team/repo\n") {
		t.Fatalf("source_repo not preserved as-is:\n%s", content)
	}

	written, err := instinct.Parse(content)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 records, got %+v", written)
	}
	if written[0].SourceRepo != "github.com/team/repo" || written[1].SourceRepo != "" {
		t.Fatalf("unexpected source_repo values: %q, %q", written[0].SourceRepo, written[1].SourceRepo)
	}
	for _, inst := range written {
		if inst.Extra[instinct.KeyImportedFrom] != src {
			t.Fatalf("imported_from = %q for %s", inst.Extra[instinct.KeyImportedFrom], inst.ID)
		}
	}
}

func TestImportDryRunAndDecline(t *testing.T) {
	env := newTestEnv(t)
	src := filepath.Join(t.TempDir(), "pack.yaml")
	writeFile(t, src, rec("a", "git", "0.7", "x"))

	result, err := ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: src, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !result.DryRun || result.OutputPath != "" || len(result.Plan.ToAdd) != 1 {
		t.Fatalf("unexpected dry run result: %+v", result)
	}

	var asked int
	result, err = ImportInstincts(context.Background(), ImportRequest{
		Config: env.cfg,
		Source: src,
		Confirm: func(n int) (bool, error) {
			asked = n
			return false, nil
		},
	})
	if err != nil {
		t.Fatalf("declined import: %v", err)
	}
	if asked != 1 || !result.Declined || result.OutputPath != "" {
		t.Fatalf("unexpected declined result: asked=%d %+v", asked, result)
	}

	entries, err := os.ReadDir(env.inherited)
	if err != nil {
		t.Fatalf("read inherited: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected nothing written, found %d files", len(entries))
	}
}

func TestImportEmptyOutcomes(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.personal, "mine.yaml"), rec("a", "git", "0.9", "x"))

	noRecords := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, noRecords, "# nothing here\n---\ntrigger: no id\n---\n")
	result, err := ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: noRecords})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Status != StatusEmpty || !strings.Contains(result.Message, "No valid instincts") {
		t.Fatalf("unexpected result: %+v", result)
	}

	dupOnly := filepath.Join(t.TempDir(), "dup.yaml")
	writeFile(t, dupOnly, rec("a", "git", "0.9", "x"))
	result, err = ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: dupOnly})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Status != StatusEmpty || result.Message != "Nothing to import." || len(result.Plan.Duplicates) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestImportErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: filepath.Join(t.TempDir(), "nope.yaml")})
	if !errors.Is(err, source.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "---\nid: a\nconfidence: lots\n---\n")
	_, err = ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: bad})
	if !errors.Is(err, instinct.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestImportFromURL(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rec("remote", "web", "0.7", "from the web")))
	}))
	defer srv.Close()

	result, err := ImportInstincts(context.Background(), ImportRequest{
		Config: env.cfg,
		Source: srv.URL + "/pack.yaml",
		Reader: source.New(source.WithHTTPClient(srv.Client())),
		Now:    func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("ImportInstincts: %v", err)
	}
	if filepath.Base(result.OutputPath) != "web-import-20260304-050607.yaml" {
		t.Fatalf("unexpected output path %s", result.OutputPath)
	}
}

func TestImportSkipsMalformedExistingFile(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.personal, "broken.yaml"), "---\nid: x\nconfidence: ?\n---\n")
	src := filepath.Join(t.TempDir(), "pack.yaml")
	writeFile(t, src, rec("x", "git", "0.7", "x"))

	result, err := ImportInstincts(context.Background(), ImportRequest{Config: env.cfg, Source: src, DryRun: true})
	if err != nil {
		t.Fatalf("ImportInstincts: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one load warning, got %v", result.Warnings)
	}
	if len(result.Plan.ToAdd) != 1 {
		t.Fatalf("record from broken file should not count as existing: %+v", result.Plan)
	}
}

func TestExportFiltersAndWrites(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.personal, "a.yaml"), rec("a", "git", "0.9", "A")+rec("b", "testing", "0.8", "B"))
	writeFile(t, filepath.Join(env.inherited, "c.yaml"), rec("c", "git", "0.2", "C"))

	floor := 0.5
	out := filepath.Join(t.TempDir(), "export.yaml")
	result, err := ExportInstincts(context.Background(), ExportRequest{
		Config:     env.cfg,
		Filter:     instinct.Filter{Domain: "git", MinConfidence: &floor},
		OutputPath: out,
		Now:        func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("ExportInstincts: %v", err)
	}
	if result.Status != StatusOK || result.Count != 1 || result.OutputPath != out {
		t.Fatalf("unexpected result: %+v", result)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	wantHeader := "# Instincts export\n# Date: 2026-03-04T05:06:07Z\n# Total: 1\n\n"
	if !strings.HasPrefix(string(data), wantHeader) {
		t.Fatalf("unexpected header: %q", data)
	}
	records, err := instinct.Parse(string(data))
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" || records[0].Content != "A" {
		t.Fatalf("unexpected exported records: %+v", records)
	}
}

func TestExportEmpty(t *testing.T) {
	env := newTestEnv(t)
	result, err := ExportInstincts(context.Background(), ExportRequest{Config: env.cfg})
	if err != nil {
		t.Fatalf("ExportInstincts: %v", err)
	}
	if result.Status != StatusEmpty || result.Content != "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestInstinctStatusGroupsByDomain(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.personal, "a.yaml"),
		rec("low", "testing", "0.3", "x")+rec("high", "testing", "0.9", "x")+"---\nid: nodomain\n---\n")
	writeFile(t, filepath.Join(env.inherited, "b.yaml"), rec("git-one", "git", "0.5", "x"))
	writeFile(t, env.cfg.Paths.ObservationsFile, "{}\n{}\n")

	result, err := InstinctStatus(context.Background(), StatusRequest{Config: env.cfg})
	if err != nil {
		t.Fatalf("InstinctStatus: %v", err)
	}
	if result.Status != StatusOK || result.Total != 4 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if len(result.Roles) != 2 || result.Roles[0].Count != 3 || result.Roles[1].Count != 1 {
		t.Fatalf("unexpected role counts: %+v", result.Roles)
	}
	var domains []string
	for _, g := range result.Domains {
		domains = append(domains, g.Domain)
	}
	if strings.Join(domains, ",") != "general,git,testing" {
		t.Fatalf("unexpected domains: %v", domains)
	}
	testingGroup := result.Domains[2].Instincts
	if testingGroup[0].ID != "high" || testingGroup[1].ID != "low" {
		t.Fatalf("expected confidence ordering, got %s, %s", testingGroup[0].ID, testingGroup[1].ID)
	}
	if !result.ObservationsFound || result.Observations != 2 {
		t.Fatalf("unexpected observations: found=%v count=%d", result.ObservationsFound, result.Observations)
	}
}

func TestInstinctStatusEmpty(t *testing.T) {
	env := newTestEnv(t)
	result, err := InstinctStatus(context.Background(), StatusRequest{Config: env.cfg})
	if err != nil {
		t.Fatalf("InstinctStatus: %v", err)
	}
	if result.Status != StatusEmpty || result.ObservationsFound {
		t.Fatalf("unexpected result: %+v", result)
	}
}
