package loader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"policyver-hq/nomos/pkg/graph"
)

// Config controls how a rule-base directory is read.
type Config struct {
	// AllowedExtensions are the rule file extensions to load.
	AllowedExtensions []string

	// MaxFileSize is the per-file size ceiling in bytes.
	MaxFileSize int64

	// SkipHidden controls whether dotfiles and dot-directories are skipped.
	SkipHidden bool
}

// DefaultConfig returns the default loader configuration.
func DefaultConfig() *Config {
	return &Config{
		AllowedExtensions: []string{".yaml", ".yml"},
		MaxFileSize:       5 * 1024 * 1024, // 5MB
		SkipHidden:        true,
	}
}

// Loader reads a directory of structured rule-base files and builds the
// policy graph. A file that fails to parse is logged and skipped; loading
// continues with the remaining files.
type Loader struct {
	config *Config
	logger *slog.Logger
}

// New creates a loader. A nil config or logger selects defaults.
func New(config *Config, logger *slog.Logger) *Loader {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{config: config, logger: logger}
}

// LoadDirectory reads every rule-base file under dir and returns the
// populated graph. A missing directory is not an error: it is created and
// treated as an empty rule base. Unresolved IDs referenced by depends_on,
// superseded_by, or parent_doc_id are accepted silently; graph.Validate
// reports them on demand.
func (l *Loader) LoadDirectory(dir string) (*graph.Graph, error) {
	g := graph.New()

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create rule base directory %q: %w", dir, mkErr)
		}
		l.logger.Info("rule base directory created, starting empty", "dir", dir)
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access rule base directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rule base path %q is not a directory", dir)
	}

	files, err := l.collectFiles(dir)
	if err != nil {
		return nil, err
	}

	loaded, skipped := 0, 0
	for _, path := range files {
		if err := l.loadFile(g, path); err != nil {
			l.logger.Warn("skipping rule file", "file", path, "error", err)
			skipped++
			continue
		}
		loaded++
	}

	stats := g.Stats()
	l.logger.Info("rule base loaded",
		"dir", dir,
		"files_loaded", loaded,
		"files_skipped", skipped,
		"documents", stats.Documents,
		"clauses", stats.Clauses,
		"unresolved_refs", stats.Unresolved,
	)

	return g, nil
}

// loadFile parses one rule-base file and registers its records. Nothing is
// registered if any part of the file is malformed.
func (l *Loader) loadFile(g *graph.Graph, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ParseError{FilePath: path, Message: "failed to access file", Cause: err}
	}
	if info.Size() > l.config.MaxFileSize {
		return &ParseError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{FilePath: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return &ParseError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}

	docs, clauses, err := decodeUnit(data)
	if err != nil {
		return &ParseError{FilePath: path, Message: "invalid rule unit", Cause: err}
	}

	for _, doc := range docs {
		if err := g.AddDocument(doc); err != nil {
			return &ParseError{FilePath: path, Message: "invalid document record", Cause: err}
		}
	}
	for _, clause := range clauses {
		if err := g.AddClause(clause); err != nil {
			return &ParseError{FilePath: path, Message: "invalid clause record", Cause: err}
		}
	}

	return nil
}

// collectFiles walks the directory and gathers rule files by extension.
func (l *Loader) collectFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if l.hasValidExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk rule base directory %q: %w", dir, err)
	}

	return files, nil
}

// hasValidExtension checks the file against the configured extensions.
func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range l.config.AllowedExtensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
