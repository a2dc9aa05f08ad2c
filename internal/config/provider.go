package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// EnvPrefix prefixes the process settings read from the environment
const EnvPrefix = "CHAINCFG"

// Provider creates RuntimeConfig for Wire dependency injection. It is the
// single place that touches the process environment and the filesystem
// before handing a fixed declaration to Load.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	loadEnvFiles(projectRoot)

	decl, source, err := LoadDeclaration(projectRoot)
	if err != nil {
		return nil, err
	}

	project, err := Load(decl, OSEnv{}, v.GetString("network"))
	if err != nil {
		return nil, err
	}

	return &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		NetworkName:    project.Selected.Name,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		ConfigSource:   source,
		Project:        project,
	}, nil
}

// loadEnvFiles loads .env.local then .env. godotenv never overrides a
// variable that is already set, so the process environment wins over both
// and .env.local wins over .env.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env.local", ".env"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("failed to load env file", "file", envFile, "error", err)
		}
	}
}

// FindProjectRoot walks up from the current directory to find toolchain.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ToolchainFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	if projectRoot != "" {
		v.SetDefault("project_root", projectRoot)
	}

	if cmd != nil {
		bindFlags(v, cmd.Flags())
		bindFlags(v, cmd.InheritedFlags())
	}

	return v
}

// bindFlags binds flags that were set explicitly so env and defaults still
// apply to everything else
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})
}
