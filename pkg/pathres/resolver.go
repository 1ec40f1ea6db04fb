// Package pathres maps logical save-file paths to absolute storage paths.
//
// Logical paths are slash-separated, relative identifiers like
// "saves/slot1.json". The resolver anchors them under a base directory and
// rejects anything that would escape it. Resolution happens before any cache
// or storage access; an invalid path is a terminal failure.
package pathres

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps logical paths to absolute storage paths under a base
// directory.
type Resolver struct {
	baseDir string
	dirMode os.FileMode
}

// Config holds configuration for the path resolver.
type Config struct {
	// BaseDir is the root directory for all resolved paths.
	BaseDir string

	// CreateDir creates the base directory if it doesn't exist.
	// Default: true
	CreateDir bool

	// DirMode is the permission mode for created directories.
	// Default: 0755
	DirMode os.FileMode
}

// DefaultConfig returns the default configuration for a base directory.
func DefaultConfig(baseDir string) Config {
	return Config{
		BaseDir:   baseDir,
		CreateDir: true,
		DirMode:   0755,
	}
}

// New creates a resolver rooted at the configured base directory.
func New(cfg Config) (*Resolver, error) {
	if cfg.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}

	abs, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	if cfg.CreateDir {
		if err := os.MkdirAll(abs, cfg.DirMode); err != nil {
			return nil, err
		}
	}

	return &Resolver{
		baseDir: abs,
		dirMode: cfg.DirMode,
	}, nil
}

// NewWithDir creates a resolver with default configuration.
func NewWithDir(baseDir string) (*Resolver, error) {
	return New(DefaultConfig(baseDir))
}

// BaseDir returns the resolver's absolute base directory.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}

// Resolve maps a logical path to an absolute storage path.
//
// Returns the absolute path and whether the logical path is valid. Empty
// paths, absolute paths, and paths traversing outside the base directory are
// invalid.
func (r *Resolver) Resolve(logical string) (string, bool) {
	if strings.TrimSpace(logical) == "" {
		return "", false
	}
	if filepath.IsAbs(logical) || strings.HasPrefix(logical, "/") {
		return "", false
	}

	abs := filepath.Join(r.baseDir, filepath.FromSlash(logical))

	// Join cleans the path; anything still outside the base escaped via "..".
	if abs != r.baseDir && !strings.HasPrefix(abs, r.baseDir+string(filepath.Separator)) {
		return "", false
	}
	if abs == r.baseDir {
		// The logical path collapsed to the base directory itself.
		return "", false
	}

	return abs, true
}

// ResolveDir maps a logical path to an absolute storage path and ensures the
// containing directory exists.
//
// Returns the absolute path, the containing directory, and validity. Directory
// creation failure makes the path invalid.
func (r *Resolver) ResolveDir(logical string) (string, string, bool) {
	abs, ok := r.Resolve(logical)
	if !ok {
		return "", "", false
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, r.dirMode); err != nil {
		return "", "", false
	}

	return abs, dir, true
}
