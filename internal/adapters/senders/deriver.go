package senders

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// KeyDeriver derives account addresses from hex private keys
type KeyDeriver struct{}

// NewKeyDeriver creates a new key deriver
func NewKeyDeriver() *KeyDeriver {
	return &KeyDeriver{}
}

// Derive returns the address controlled by a hex private key.
// The key never appears in returned errors.
func (d *KeyDeriver) Derive(credential string) (common.Address, error) {
	// Remove 0x prefix if present
	privateKeyHex := strings.TrimPrefix(strings.TrimSpace(credential), "0x")

	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return common.Address{}, &domain.InvalidValueError{
			Field:  "private key",
			Reason: "expected 32 bytes of hex",
		}
	}

	return crypto.PubkeyToAddress(key.PublicKey), nil
}

var _ usecase.AddressDeriver = (*KeyDeriver)(nil)
