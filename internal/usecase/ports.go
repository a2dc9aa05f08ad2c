package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/chaincfg/internal/compiler"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// SourceFile is one source file found under the sources directory
type SourceFile struct {
	Path       string // relative to the project root, slash separated
	Constraint compiler.Constraint
	Err        error // set when the file's pragma could not be read
}

// SourceScanner lists source files with their version constraints
type SourceScanner interface {
	Scan(ctx context.Context, sourcesDir string) ([]SourceFile, error)
}

// NetworkProber checks that a network endpoint answers
type NetworkProber interface {
	// Probe returns the chain id reported by the profile's endpoint
	Probe(ctx context.Context, network config.NetworkProfile) (uint64, error)
}

// AddressDeriver turns a signing credential into its account address
type AddressDeriver interface {
	Derive(credential string) (common.Address, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
	Done()
}
