package app

import (
	"log/slog"

	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	ShowConfig       *usecase.ShowConfig
	ListNetworks     *usecase.ListNetworks
	ResolveCompilers *usecase.ResolveCompilers
	ListAccounts     *usecase.ListAccounts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	showConfig *usecase.ShowConfig,
	listNetworks *usecase.ListNetworks,
	resolveCompilers *usecase.ResolveCompilers,
	listAccounts *usecase.ListAccounts,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		ShowConfig:       showConfig,
		ListNetworks:     listNetworks,
		ResolveCompilers: resolveCompilers,
		ListAccounts:     listAccounts,
	}, nil
}
