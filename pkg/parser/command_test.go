package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stable-wallet/pkg/types"
)

func TestParseSend(t *testing.T) {
	intent, err := ParseCommand("send 10.5 to 0x1234567890AbcdEF1234567890aBcdef12345678")
	require.NoError(t, err)

	assert.Equal(t, types.IntentSimpleTransfer, intent.Kind)
	assert.Equal(t, "10.5", intent.Amount)
	assert.Equal(t, "0x1234567890AbcdEF1234567890aBcdef12345678", intent.DestAddress,
		"address keeps its original casing")
	assert.True(t, intent.IsSensitive())
}

func TestParseSendWithAssetWord(t *testing.T) {
	intent, err := ParseCommand("send 25 USDC to 0x1234567890AbcdEF1234567890aBcdef12345678")
	require.NoError(t, err)

	assert.Equal(t, types.IntentSimpleTransfer, intent.Kind)
	assert.Equal(t, "25", intent.Amount)
}

func TestParseBridge(t *testing.T) {
	intent, err := ParseCommand("bridge 25 to 0x1234567890AbcdEF1234567890aBcdef12345678 on Base-Sepolia")
	require.NoError(t, err)

	assert.Equal(t, types.IntentCrossChainTransfer, intent.Kind)
	assert.Equal(t, "25", intent.Amount)
	assert.Equal(t, "0x1234567890AbcdEF1234567890aBcdef12345678", intent.DestAddress)
	assert.Equal(t, "base-sepolia", intent.DestNetworkKey)
	assert.True(t, intent.IsSensitive())
}

func TestParseMoveAliasesBridge(t *testing.T) {
	intent, err := ParseCommand("move 5 to 0xabcDEF1234567890AbcdEF1234567890aBcdef12 on ethereum")
	require.NoError(t, err)
	assert.Equal(t, types.IntentCrossChainTransfer, intent.Kind)
}

func TestParseSwap(t *testing.T) {
	intent, err := ParseCommand("swap 100 for 0.05 WETH")
	require.NoError(t, err)

	assert.Equal(t, types.IntentSwap, intent.Kind)
	assert.Equal(t, "100", intent.MaxInput)
	assert.Equal(t, "0.05", intent.ExactOutput)
	assert.Equal(t, "WETH", intent.OutputAsset)
	assert.Equal(t, DefaultSlippageBps, intent.SlippageBps)
	assert.Equal(t, DefaultDeadlineMinutes, intent.DeadlineMinutes)
	assert.True(t, intent.IsSensitive())
}

func TestParseBalance(t *testing.T) {
	for _, command := range []string{"balance", "BALANCE", "saldo", " balance "} {
		intent, err := ParseCommand(command)
		require.NoError(t, err, "command %q", command)
		assert.Equal(t, types.IntentQuery, intent.Kind, "command %q", command)
		assert.False(t, intent.IsSensitive(), "command %q", command)
	}
}

func TestParseKeepsRawText(t *testing.T) {
	intent, err := ParseCommand("  send 1 to 0x1234567890AbcdEF1234567890aBcdef12345678  ")
	require.NoError(t, err)
	assert.Equal(t, "send 1 to 0x1234567890AbcdEF1234567890aBcdef12345678", intent.RawText)
}

func TestParseUnknownCommand(t *testing.T) {
	for _, command := range []string{"", "hello", "send to 0xabc", "swap 100 WETH", "bridge 5 to 0xabc"} {
		_, err := ParseCommand(command)
		require.Error(t, err, "command %q", command)
		assert.Contains(t, err.Error(), "could not understand", "command %q", command)
	}
}
