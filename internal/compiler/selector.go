package compiler

import (
	"path/filepath"

	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"golang.org/x/mod/semver"
)

// Selection is the compiler chosen for one source file
type Selection struct {
	SourcePath string
	Constraint Constraint
	Profile    config.CompilerProfile
	Overridden bool
}

// Select picks the compiler for a source file. A matching override wins
// when it satisfies the file's constraint; otherwise the newest declared
// compiler that satisfies it is used.
func Select(
	compilers []config.CompilerProfile,
	overrides []config.CompilerOverride,
	sourcePath string,
	constraint Constraint,
) (*Selection, error) {
	declared := make([]string, 0, len(compilers))
	for _, c := range compilers {
		declared = append(declared, c.Version)
	}

	if override, ok := findOverride(overrides, sourcePath); ok {
		if !constraint.Check(override.Profile.Version) {
			return nil, &domain.VersionMismatchError{
				SourcePath: sourcePath,
				Constraint: constraint.String(),
				Declared:   []string{override.Profile.Version + " (override)"},
			}
		}
		return &Selection{
			SourcePath: sourcePath,
			Constraint: constraint,
			Profile:    override.Profile,
			Overridden: true,
		}, nil
	}

	var best *config.CompilerProfile
	for i := range compilers {
		c := &compilers[i]
		if !constraint.Check(c.Version) {
			continue
		}
		if best == nil || semver.Compare("v"+c.Version, "v"+best.Version) > 0 {
			best = c
		}
	}
	if best == nil {
		return nil, &domain.VersionMismatchError{
			SourcePath: sourcePath,
			Constraint: constraint.String(),
			Declared:   declared,
		}
	}

	return &Selection{
		SourcePath: sourcePath,
		Constraint: constraint,
		Profile:    *best,
	}, nil
}

func findOverride(overrides []config.CompilerOverride, sourcePath string) (config.CompilerOverride, bool) {
	want := normalize(sourcePath)
	for _, o := range overrides {
		if normalize(o.SourcePath) == want {
			return o, true
		}
	}
	return config.CompilerOverride{}, false
}

func normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
