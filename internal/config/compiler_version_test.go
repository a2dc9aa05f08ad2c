package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/chaincfg/internal/domain"
)

func TestParseCompilerVersion(t *testing.T) {
	valid := []string{"0.8.10", "0.7.0", "0.4.11", "0.8.28", " 0.6.12 "}
	for _, v := range valid {
		t.Run("valid "+v, func(t *testing.T) {
			got, err := ParseCompilerVersion(v)
			require.NoError(t, err)
			assert.NotContains(t, got, " ")
		})
	}

	invalid := []string{"", "0.8", "8", "v0.8.10", "0.8.10+commit.fc410830", "0.8.10-rc1", "0.08.1", "^0.8.0", "0.4.10", "a.b.c"}
	for _, v := range invalid {
		t.Run("invalid "+v, func(t *testing.T) {
			_, err := ParseCompilerVersion(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidVersion)
		})
	}
}
