package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/chaincfg/internal/compiler"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// ResolveCompilersParams contains parameters for resolving compilers
type ResolveCompilersParams struct {
	Query string // optional fuzzy filter on source paths
}

// CompilerAssignment is the outcome for one source file
type CompilerAssignment struct {
	SourcePath string
	Constraint string
	Profile    *config.CompilerProfile // nil on error
	Overridden bool
	Error      error
}

// ResolveCompilersResult contains the result of resolving compilers
type ResolveCompilersResult struct {
	SourcesDir  string
	Compilers   []config.CompilerProfile
	Assignments []CompilerAssignment
	Usage       map[string]int // compiler version -> files
}

// Err joins every per-file failure
func (r *ResolveCompilersResult) Err() error {
	var errs []error
	for _, a := range r.Assignments {
		if a.Error != nil {
			errs = append(errs, a.Error)
		}
	}
	return errors.Join(errs...)
}

// ResolveCompilers assigns a declared compiler to every source file
type ResolveCompilers struct {
	cfg     *config.RuntimeConfig
	scanner SourceScanner
}

// NewResolveCompilers creates a new ResolveCompilers use case
func NewResolveCompilers(cfg *config.RuntimeConfig, scanner SourceScanner) *ResolveCompilers {
	return &ResolveCompilers{
		cfg:     cfg,
		scanner: scanner,
	}
}

// Run executes the use case
func (uc *ResolveCompilers) Run(ctx context.Context, params ResolveCompilersParams) (*ResolveCompilersResult, error) {
	sourcesDir := uc.cfg.ResolvedPaths().Sources

	files, err := uc.scanner.Scan(ctx, sourcesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	if params.Query != "" {
		files = filterSources(files, params.Query)
	}

	project := uc.cfg.Project
	result := &ResolveCompilersResult{
		SourcesDir:  sourcesDir,
		Compilers:   project.CompilerList(),
		Assignments: make([]CompilerAssignment, 0, len(files)),
		Usage:       make(map[string]int),
	}

	for _, f := range files {
		assignment := CompilerAssignment{
			SourcePath: f.Path,
			Constraint: f.Constraint.String(),
		}
		if f.Err != nil {
			assignment.Error = f.Err
			result.Assignments = append(result.Assignments, assignment)
			continue
		}

		sel, err := compiler.Select(project.Compilers, project.Overrides, f.Path, f.Constraint)
		if err != nil {
			assignment.Error = err
		} else {
			profile := sel.Profile
			assignment.Profile = &profile
			assignment.Overridden = sel.Overridden
			result.Usage[profile.Version]++
		}
		result.Assignments = append(result.Assignments, assignment)
	}

	return result, nil
}

// filterSources keeps files whose path fuzzy-matches query, in scan order
func filterSources(files []SourceFile, query string) []SourceFile {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	keep := make(map[int]bool)
	for _, m := range fuzzy.Find(query, paths) {
		keep[m.Index] = true
	}

	filtered := make([]SourceFile, 0, len(keep))
	for i, f := range files {
		if keep[i] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
