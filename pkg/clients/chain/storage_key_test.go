package chain_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/clients/chain/chaintest"
)

func TestStoragePrefix(t *testing.T) {
	// Well-known prefix of System.Account on every Substrate chain.
	assert.Equal(t,
		"26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9",
		hex.EncodeToString(chain.StoragePrefix("System", "Account")))
}

func TestIdentity(t *testing.T) {
	var want [32]byte
	for i := range want {
		want[i] = byte(i + 1)
	}

	key := chain.StorageKey(chaintest.MapKey("Programs", "Programs", want))

	got, err := key.Identity()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := key.Identity()
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestIdentityShortKey(t *testing.T) {
	for _, n := range []int{0, 1, 31, 32} {
		_, err := chain.StorageKey(make([]byte, n)).Identity()
		require.ErrorIs(t, err, chain.ErrShortKey)
	}

	_, err := chain.StorageKey(make([]byte, 33)).Identity()
	require.NoError(t, err)
}
