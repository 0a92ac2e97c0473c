package registry

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/autoloader/internal/extract"
	"github.com/leapstack-labs/autoloader/internal/scan"
)

// Path markers and conventions of the consuming framework.
const (
	SourceExt    = ".ts"
	srcDir       = "src/"
	viewDir      = "src/view/"
	modelDir     = "src/model/"
	modulePrefix = "@/"
)

// Config configures a Builder.
type Config struct {
	// ProjectDir is the directory containing src/.
	ProjectDir string
	// ReadFile reads a source file (optional, defaults to os.ReadFile).
	ReadFile func(path string) ([]byte, error)
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Builder turns scanned file paths into a Registry.
type Builder struct {
	projectDir string
	readFile   func(path string) ([]byte, error)
	logger     *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config) *Builder {
	readFile := cfg.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		projectDir: cfg.ProjectDir,
		readFile:   readFile,
		logger:     logger,
	}
}

// Build registers the first exported class of every TypeScript file under
// src/view or src/model, preserving the order of files. Files elsewhere and
// files without an exported class are ignored. A file that cannot be read
// aborts the build with a *scan.AccessError.
func (b *Builder) Build(files []string) (*Registry, error) {
	reg := New()

	for _, file := range files {
		if !strings.HasSuffix(file, SourceExt) {
			continue
		}

		rel := b.relative(file)
		role, ok := Classify(rel)
		if !ok {
			continue
		}

		content, err := b.readFile(file)
		if err != nil {
			return nil, &scan.AccessError{Path: file, Err: err}
		}

		name, ok := extract.ExportedClass(string(content))
		if !ok {
			b.logger.Debug("no exported class", "path", rel)
			continue
		}

		entry := NewEntry(role, name, rel)
		if prev, dup := reg.Lookup(entry.Key); dup {
			b.logger.Debug("registry key overwritten", "key", entry.Key, "previous", prev.Path, "path", rel)
		}
		reg.Register(entry)
		b.logger.Debug("registered class", "role", role, "key", entry.Key, "path", rel)
	}

	return reg, nil
}

// relative returns file relative to the project directory in slash form.
func (b *Builder) relative(file string) string {
	if b.projectDir != "" {
		if rel, err := filepath.Rel(b.projectDir, file); err == nil {
			file = rel
		}
	}
	return filepath.ToSlash(file)
}

// Classify returns the role of a slash-separated, project-relative path.
// View directories take precedence over model directories.
func Classify(rel string) (Role, bool) {
	switch {
	case strings.Contains(rel, viewDir):
		return RoleView, true
	case strings.Contains(rel, modelDir):
		return RoleModel, true
	default:
		return "", false
	}
}

// NewEntry derives the registry entry for class name declared at rel.
func NewEntry(role Role, name, rel string) Entry {
	e := Entry{
		Role:   role,
		Name:   name,
		Module: ModulePath(rel),
		Path:   rel,
	}

	switch role {
	case RoleModel:
		sub := strings.TrimSuffix(after(rel, modelDir), SourceExt)
		e.Key = strings.ReplaceAll(sub, "/", ".")
		e.Alias = strings.ReplaceAll(sub, "/", "_")
	default:
		e.Key = name
		e.Alias = name
	}
	return e
}

// ModulePath maps "src/view/top/Top.ts" to "@/view/top/Top".
func ModulePath(rel string) string {
	return modulePrefix + strings.TrimSuffix(after(rel, srcDir), SourceExt)
}

// after returns the part of s following the first occurrence of sep, or s
// when sep does not occur.
func after(s, sep string) string {
	if idx := strings.Index(s, sep); idx >= 0 {
		return s[idx+len(sep):]
	}
	return s
}
