package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetNormalizesKey(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	d, err := registry.Get("  Base-Sepolia ")
	require.NoError(t, err)
	assert.Equal(t, "base-sepolia", d.Key)
	assert.Equal(t, FamilyEVM, d.ChainFamily)
	assert.True(t, d.Testnet)
}

func TestRegistryGetUnknownKey(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	_, err := registry.Get("dogecoin")
	require.Error(t, err)

	var unknownErr *UnknownNetworkError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "dogecoin", unknownErr.Key)
}

func TestRegistryFallsBackToDefaultNetwork(t *testing.T) {
	registry := NewRegistry("not-a-network")
	assert.Equal(t, "ethereum-sepolia", registry.Current().Key)

	registry = NewRegistry("")
	assert.Equal(t, "ethereum-sepolia", registry.Current().Key)
}

func TestRegistrySelect(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	require.NoError(t, registry.Select("base-sepolia"))
	assert.Equal(t, "base-sepolia", registry.Current().Key)

	err := registry.Select("unknown-chain")
	require.Error(t, err)
	assert.Equal(t, "base-sepolia", registry.Current().Key, "failed select must not change the current network")
}

func TestRegistryKeysSorted(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	keys := registry.Keys()
	require.NotEmpty(t, keys)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "ethereum")
	assert.Contains(t, keys, "solana-devnet")
}

func TestSupportsBridge(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	d, err := registry.Get("base-sepolia")
	require.NoError(t, err)
	assert.True(t, d.SupportsBridge())

	assert.False(t, Descriptor{Key: "bare"}.SupportsBridge())
}

func TestSwapAssetSymbolsSorted(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	d, err := registry.Get("ethereum")
	require.NoError(t, err)
	assert.Equal(t, []string{"DAI", "UNI", "WETH"}, d.SwapAssetSymbols())
}

func TestRegisterOverridesDescriptor(t *testing.T) {
	registry := NewRegistry("ethereum-sepolia")

	registry.Register(Descriptor{Key: "ethereum-sepolia", ChainFamily: FamilyEVM, RouterAddress: "0xoverride"})

	d, err := registry.Get("ethereum-sepolia")
	require.NoError(t, err)
	assert.Equal(t, "0xoverride", d.RouterAddress)
}
