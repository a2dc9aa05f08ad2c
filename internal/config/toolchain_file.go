package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// ToolchainFileName is the optional declaration file at the project root
const ToolchainFileName = "toolchain.toml"

// LoadDeclaration returns the declaration for a project: toolchain.toml
// layered over DefaultDeclaration when the file exists, the defaults
// otherwise. The second return value names the source.
func LoadDeclaration(projectRoot string) (config.Declaration, string, error) {
	path := filepath.Join(projectRoot, ToolchainFileName)
	data, err := os.ReadFile(path) //nolint:gosec // project-local path
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultDeclaration(), "defaults", nil
	}
	if err != nil {
		return config.Declaration{}, "", fmt.Errorf("failed to read %s: %w", ToolchainFileName, err)
	}

	decl, err := ParseDeclaration(string(data))
	if err != nil {
		return config.Declaration{}, "", fmt.Errorf("failed to parse %s: %w", ToolchainFileName, err)
	}
	return decl, ToolchainFileName, nil
}

// ParseDeclaration decodes TOML and fills every key the document leaves
// undefined from DefaultDeclaration. Array sections replace the defaults
// wholesale.
func ParseDeclaration(doc string) (config.Declaration, error) {
	var file config.Declaration
	md, err := toml.Decode(doc, &file)
	if err != nil {
		return config.Declaration{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config.Declaration{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	decl := DefaultDeclaration()
	if md.IsDefined("default_network") {
		decl.DefaultNetwork = file.DefaultNetwork
	}
	if md.IsDefined("networks") {
		decl.Networks = file.Networks
	}
	if md.IsDefined("compilers") {
		decl.Compilers = file.Compilers
	}
	if md.IsDefined("overrides") {
		decl.Overrides = file.Overrides
	}
	if md.IsDefined("paths", "sources") {
		decl.Paths.Sources = file.Paths.Sources
	}
	if md.IsDefined("paths", "tests") {
		decl.Paths.Tests = file.Paths.Tests
	}
	if md.IsDefined("paths", "cache") {
		decl.Paths.Cache = file.Paths.Cache
	}
	if md.IsDefined("paths", "artifacts") {
		decl.Paths.Artifacts = file.Paths.Artifacts
	}
	if md.IsDefined("verification", "api_key") {
		decl.Verification.APIKey = file.Verification.APIKey
	}
	if md.IsDefined("test_runner", "timeout") {
		decl.TestRunner.TimeoutMs = file.TestRunner.TimeoutMs
	}
	return decl, nil
}
