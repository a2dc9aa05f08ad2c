package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/chaincfg/internal/adapters/blockchain"
	"github.com/trebuchet-org/chaincfg/internal/adapters/fs"
	"github.com/trebuchet-org/chaincfg/internal/adapters/progress"
	"github.com/trebuchet-org/chaincfg/internal/adapters/senders"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// ProvideProgressSink picks a spinner for interactive text output and a
// no-op sink otherwise
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewSourceScannerAdapter,
	wire.Bind(new(usecase.SourceScanner), new(*fs.SourceScannerAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewProberAdapter,
	wire.Bind(new(usecase.NetworkProber), new(*blockchain.ProberAdapter)),
)

// SendersSet provides signing credential implementations
var SendersSet = wire.NewSet(
	senders.NewKeyDeriver,
	wire.Bind(new(usecase.AddressDeriver), new(*senders.KeyDeriver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideProgressSink,

	FSSet,
	BlockchainSet,
	SendersSet,
)
