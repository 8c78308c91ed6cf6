package collection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"instinct/internal/instinct"
	"instinct/internal/logging"
)

// Role labels used by the default storage layout.
const (
	RolePersonal  = "personal"
	RoleInherited = "inherited"
)

// DefaultPatterns select the files loaded from a root without its own patterns.
var DefaultPatterns = []string{"*.yaml"}

// Root is one storage location.
type Root struct {
	// Name is the role label attached to records as SourceType.
	Name string
	Dir  string
	// Patterns are doublestar globs relative to Dir. Empty means DefaultPatterns.
	Patterns []string
	// FS overrides the filesystem rooted at Dir, mainly for tests.
	FS fs.FS
}

// Warning describes a file skipped during a load.
type Warning struct {
	File string
	Root string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("failed to parse %s: %v", w.File, w.Err)
}

// Collection is the flat result of loading every root.
type Collection struct {
	Instincts []instinct.Instinct
	Warnings  []Warning
}

// CountByRole returns the number of records per SourceType.
func (c *Collection) CountByRole() map[string]int {
	counts := make(map[string]int)
	if c == nil {
		return counts
	}
	for _, inst := range c.Instincts {
		counts[inst.SourceType]++
	}
	return counts
}

// Loader reads storage roots into a Collection.
type Loader struct {
	logger *slog.Logger
}

// NewLoader constructs a loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logging.NewComponentLogger(logger, "collection")}
}

// Load reads every matching file in every root, in root order then sorted
// file order then in-file order. Records are tagged with SourceFile and
// SourceType. Missing directories contribute nothing.
func (l *Loader) Load(ctx context.Context, roots []Root) (*Collection, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := &Collection{}
	for _, root := range roots {
		fsys, ok, err := root.filesystem()
		if err != nil {
			return nil, err
		}
		if !ok {
			l.logger.Debug("storage root missing",
				logging.String("root", root.Name),
				logging.String("dir", root.Dir))
			continue
		}
		files, err := root.match(fsys)
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path := root.path(name)
			records, err := readFile(fsys, name)
			if err != nil {
				warning := Warning{File: path, Root: root.Name, Err: err}
				out.Warnings = append(out.Warnings, warning)
				logging.WarnWithContext(l.logger, "instinct file skipped", "instinct_file_skipped",
					logging.String("file", path),
					logging.String("root", root.Name),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "fix or remove the file"),
					logging.String(logging.FieldImpact, "records in this file are ignored"))
				continue
			}
			for i := range records {
				records[i].SourceFile = path
				records[i].SourceType = root.Name
			}
			out.Instincts = append(out.Instincts, records...)
		}
	}
	l.logger.Debug("collection loaded",
		logging.Int("instincts", len(out.Instincts)),
		logging.Int("warnings", len(out.Warnings)))
	return out, nil
}

func (r Root) filesystem() (fs.FS, bool, error) {
	if r.FS != nil {
		return r.FS, true, nil
	}
	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		return nil, false, fmt.Errorf("storage root %q has no directory", r.Name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat storage root %q: %w", r.Name, err)
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("storage root %q: %s is not a directory", r.Name, dir)
	}
	return os.DirFS(dir), true, nil
}

func (r Root) match(fsys fs.FS) ([]string, error) {
	patterns := r.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("storage root %q pattern %q: %w", r.Name, pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r Root) path(name string) string {
	if r.Dir == "" {
		return name
	}
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}

func readFile(fsys fs.FS, name string) ([]instinct.Instinct, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return instinct.Parse(string(data))
}
