package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/chaincfg/internal/compiler"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// SourceExt is the extension of contract sources
const SourceExt = ".sol"

// SourceScannerAdapter walks the sources directory and reads version pragmas
type SourceScannerAdapter struct {
	projectRoot string
	log         *slog.Logger
}

// NewSourceScannerAdapter creates a new source scanner
func NewSourceScannerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *SourceScannerAdapter {
	return &SourceScannerAdapter{
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "SourceScanner"),
	}
}

// Scan returns every source file under sourcesDir in lexical order.
// A missing directory yields no files.
func (s *SourceScannerAdapter) Scan(ctx context.Context, sourcesDir string) ([]usecase.SourceFile, error) {
	if _, err := os.Stat(sourcesDir); errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("sources directory does not exist", "dir", sourcesDir)
		return nil, nil
	}

	var files []usecase.SourceFile
	err := filepath.WalkDir(sourcesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != sourcesDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != SourceExt {
			return nil
		}

		files = append(files, s.readSource(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("scanned sources", "dir", sourcesDir, "files", len(files))
	return files, nil
}

func (s *SourceScannerAdapter) readSource(path string) usecase.SourceFile {
	file := usecase.SourceFile{Path: s.relative(path), Constraint: compiler.Any}

	data, err := os.ReadFile(path)
	if err != nil {
		file.Err = fmt.Errorf("failed to read %s: %w", file.Path, err)
		return file
	}

	constraint, err := compiler.SourceConstraint(string(data))
	if err != nil {
		file.Err = fmt.Errorf("%s: %w", file.Path, err)
		return file
	}
	file.Constraint = constraint
	return file
}

// relative returns path relative to the project root, slash separated
func (s *SourceScannerAdapter) relative(path string) string {
	rel, err := filepath.Rel(s.projectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

var _ usecase.SourceScanner = (*SourceScannerAdapter)(nil)
