package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stable-wallet/pkg/types"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	store, err := NewStore(path)
	require.NoError(t, err)

	handle := types.WalletHandle{WalletID: "w-1", Address: "0xabc", NetworkKey: "base-sepolia"}
	require.NoError(t, store.Put("alice", handle))

	got, ok := store.Get("alice", "base-sepolia")
	require.True(t, ok)
	assert.Equal(t, handle, got)

	_, ok = store.Get("alice", "ethereum-sepolia")
	assert.False(t, ok)
	_, ok = store.Get("bob", "base-sepolia")
	assert.False(t, ok)
}

func TestStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("alice", types.WalletHandle{WalletID: "w-1", Address: "0xabc", NetworkKey: "base-sepolia"}))
	require.NoError(t, store.Put("alice", types.WalletHandle{WalletID: "w-2", Address: "0xdef", NetworkKey: "ethereum-sepolia"}))

	reloaded, err := NewStore(path)
	require.NoError(t, err)

	got, ok := reloaded.Get("alice", "ethereum-sepolia")
	require.True(t, ok)
	assert.Equal(t, "w-2", got.WalletID)
	assert.Len(t, reloaded.List("alice"), 2)
}

func TestStorePutSupersedesExistingHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("alice", types.WalletHandle{WalletID: "w-old", NetworkKey: "base-sepolia"}))
	require.NoError(t, store.Put("alice", types.WalletHandle{WalletID: "w-new", NetworkKey: "base-sepolia"}))

	got, ok := store.Get("alice", "base-sepolia")
	require.True(t, ok)
	assert.Equal(t, "w-new", got.WalletID)
	assert.Len(t, store.List("alice"), 1)
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Empty(t, store.List("anyone"))
}
