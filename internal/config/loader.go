package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/fsutil"
)

// Loader reads the blocks of one configuration file.
type Loader interface {
	LoadFile(ctx context.Context, path string) ([]*Block, error)
}

// loaders maps a file extension to the loader for it.
var loaders = map[string]Loader{
	".hcl":  NewHCLLoader(),
	".yaml": NewYAMLLoader(),
	".yml":  NewYAMLLoader(),
}

// loaderFor returns the loader for path's extension, ignoring case.
func loaderFor(path string) (Loader, bool) {
	l, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Load reads every configuration file found under paths and returns their
// blocks in file order, then document order.
func Load(ctx context.Context, paths ...string) ([]*Block, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := ResolvePaths(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "no configuration files found in %v", paths)
	}

	var blocks []*Block
	for _, file := range files {
		l, _ := loaderFor(file)
		fileBlocks, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, fileBlocks...)
	}
	logger.Debug("Configuration loaded.", "files", len(files), "blocks", len(blocks))
	return blocks, nil
}

// ResolvePaths expands paths into the configuration files they name. A file
// must have a supported extension; a directory is searched recursively and
// its files are returned sorted. Each file is returned once.
func ResolvePaths(ctx context.Context, paths ...string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, path := range paths {
		logger.Debug("Resolving configuration path.", "path", path)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "configuration path not found: %s", path)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "accessing path %s", path)
		}

		if !info.IsDir() {
			if _, ok := loaderFor(path); !ok {
				return nil, errors.WithHint(
					errors.Wrapf(errors.ErrInvalidConfig, "unsupported configuration file: %s", path),
					"use a .hcl, .yaml or .yml file")
			}
			add(path)
			continue
		}

		exts := make([]string, 0, len(loaders))
		for ext := range loaders {
			exts = append(exts, ext)
		}
		found, err := fsutil.FindFiles(path, exts...)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", path)
		}
		logger.Debug("Scanned configuration directory.", "directory", path, "files", len(found))
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}
