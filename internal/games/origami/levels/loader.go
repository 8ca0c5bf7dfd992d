// Package levels provides puzzle loading for the origami game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-origami/internal/games/origami/core"
	"github.com/vovakirdan/tui-origami/internal/games/origami/levels/formats"
)

// Level is a validated puzzle together with the file it came from.
type Level struct {
	*core.Puzzle
	FilePath string
}

// NewSession starts a fold session on this level.
func (l Level) NewSession(opts ...core.SessionOption) (*core.Session, error) {
	return core.NewSession(l.Puzzle, opts...)
}

// Loader handles loading puzzles from a directory tree.
type Loader struct {
	Root   string
	FS     fs.FS
	Logger *log.Logger
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, FS: os.DirFS(root), Logger: discardLogger()}
}

// NewFSLoader creates a loader over an arbitrary file system, such as the
// bundled puzzles.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{Root: ".", FS: fsys, Logger: discardLogger()}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// WithLogger sets the logger used to report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	if logger != nil {
		l.Logger = logger
	}
	return l
}

// SkippedFile is a puzzle file LoadAll left out.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadAll recursively scans and loads all puzzle files.
// Invalid files are skipped with a warning.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.LoadAllReport()
	return levels, err
}

// LoadAllReport is LoadAll that also returns the skipped files in walk order.
func (l *Loader) LoadAllReport() ([]Level, []SkippedFile, error) {
	if l.FS == nil {
		return nil, nil, fmt.Errorf("levels: no file system for %s", l.Root)
	}

	var levels []Level
	var skipped []SkippedFile
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(l.FS, p)
		if err != nil {
			return err
		}

		display := filepath.Join(l.Root, filepath.FromSlash(p))
		level, err := parseLevel(data, ext, display)
		if err != nil {
			l.Logger.Warn("skipping puzzle", "file", display, "err", err)
			skipped = append(skipped, SkippedFile{Path: display, Err: err})
			return nil
		}
		if prev, dup := seen[level.ID]; dup {
			l.Logger.Warn("skipping duplicate puzzle id", "id", level.ID, "file", display, "first", prev)
			skipped = append(skipped, SkippedFile{
				Path: display,
				Err:  fmt.Errorf("duplicate puzzle id %s, first defined in %s", level.ID, prev),
			})
			return nil
		}
		seen[level.ID] = display

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	l.Logger.Debug("loaded puzzles", "root", l.Root, "count", len(levels), "skipped", len(skipped))
	return levels, skipped, nil
}

// LoadFile loads and validates a single puzzle file from disk.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, strings.ToLower(filepath.Ext(p)), p)
}

// LoadByID loads a specific puzzle by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("puzzle not found: %s", id)
}

// Resolve loads ref as a file path when it names an existing file,
// otherwise as a puzzle ID.
func (l *Loader) Resolve(ref string) (Level, error) {
	if isSupportedExtension(strings.ToLower(filepath.Ext(ref))) {
		if _, err := os.Stat(ref); err == nil {
			return l.LoadFile(ref)
		}
	}
	return l.LoadByID(ref)
}

// ListIDs returns all puzzle IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// parseLevel parses and validates one puzzle. A missing ID falls back to the
// file name without extension.
func parseLevel(data []byte, ext, file string) (Level, error) {
	p, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", file, err)
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if err := p.Validate(); err != nil {
		return Level{}, fmt.Errorf("puzzle %s: %w", p.ID, err)
	}
	return Level{Puzzle: p, FilePath: file}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
