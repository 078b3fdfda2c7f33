package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stable-wallet/pkg/network"
	"stable-wallet/pkg/types"
)

const (
	goodEVMAddress    = "0x1234567890AbcdEF1234567890aBcdef12345678"
	goodSolanaAddress = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
)

func newValidator(t *testing.T) (*Validator, network.Descriptor) {
	t.Helper()

	registry := network.NewRegistry("ethereum-sepolia")
	v, err := New(registry, "1000")
	require.NoError(t, err)

	return v, registry.Current()
}

func requireViolation(t *testing.T, err error, kind ViolationKind) {
	t.Helper()

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, kind, valErr.Kind)
}

func TestValidateTransferAccepted(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:        types.IntentSimpleTransfer,
		Amount:      "10.5",
		DestAddress: goodEVMAddress,
	}, desc)
	assert.NoError(t, err)
}

func TestValidateTransferRejectsBadAddress(t *testing.T) {
	v, desc := newValidator(t)

	for _, address := range []string{"0x123", "not-an-address", "0xZZ34567890AbcdEF1234567890aBcdef12345678"} {
		err := v.Validate(types.Intent{
			Kind:        types.IntentSimpleTransfer,
			Amount:      "10",
			DestAddress: address,
		}, desc)
		requireViolation(t, err, KindBadAddress)
	}
}

func TestValidateTransferRejectsBadAmount(t *testing.T) {
	v, desc := newValidator(t)

	for _, amount := range []string{"-5", "abc", "1.2.3", "0"} {
		err := v.Validate(types.Intent{
			Kind:        types.IntentSimpleTransfer,
			Amount:      amount,
			DestAddress: goodEVMAddress,
		}, desc)

		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr, "amount %q", amount)
		assert.Equal(t, KindBadAmount, valErr.Kind, "amount %q", amount)
	}
}

func TestValidateTransferEnforcesCeiling(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:        types.IntentSimpleTransfer,
		Amount:      "1000.000001",
		DestAddress: goodEVMAddress,
	}, desc)
	requireViolation(t, err, KindAmountTooLarge)

	// Exactly at the ceiling is allowed
	err = v.Validate(types.Intent{
		Kind:        types.IntentSimpleTransfer,
		Amount:      "1000",
		DestAddress: goodEVMAddress,
	}, desc)
	assert.NoError(t, err)
}

func TestValidateTransferRequiresFields(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{Kind: types.IntentSimpleTransfer, DestAddress: goodEVMAddress}, desc)
	requireViolation(t, err, KindMissingField)

	err = v.Validate(types.Intent{Kind: types.IntentSimpleTransfer, Amount: "10"}, desc)
	requireViolation(t, err, KindMissingField)
}

func TestValidateBridgeRejectsUnknownDestination(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:           types.IntentCrossChainTransfer,
		Amount:         "10",
		DestAddress:    goodEVMAddress,
		DestNetworkKey: "polygon",
	}, desc)
	requireViolation(t, err, KindUnknownNetwork)
}

func TestValidateBridgeChecksAddressAgainstDestinationFamily(t *testing.T) {
	v, desc := newValidator(t)

	// An EVM address is invalid when the destination chain is Solana
	err := v.Validate(types.Intent{
		Kind:           types.IntentCrossChainTransfer,
		Amount:         "10",
		DestAddress:    goodEVMAddress,
		DestNetworkKey: "solana-devnet",
	}, desc)
	requireViolation(t, err, KindBadAddress)

	err = v.Validate(types.Intent{
		Kind:           types.IntentCrossChainTransfer,
		Amount:         "10",
		DestAddress:    goodSolanaAddress,
		DestNetworkKey: "solana-devnet",
	}, desc)
	assert.NoError(t, err)
}

func TestValidateSwap(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:        types.IntentSwap,
		MaxInput:    "100",
		ExactOutput: "0.05",
		OutputAsset: "WETH",
	}, desc)
	assert.NoError(t, err)
}

func TestValidateSwapRejectsUnsupportedAsset(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:        types.IntentSwap,
		MaxInput:    "100",
		ExactOutput: "0.05",
		OutputAsset: "PEPE",
	}, desc)
	requireViolation(t, err, KindUnsupportedAsset)
}

func TestValidateSwapRejectsBadOutputAmount(t *testing.T) {
	v, desc := newValidator(t)

	err := v.Validate(types.Intent{
		Kind:        types.IntentSwap,
		MaxInput:    "100",
		ExactOutput: "lots",
		OutputAsset: "WETH",
	}, desc)
	requireViolation(t, err, KindBadAmount)
}

func TestValidateQueryAlwaysPasses(t *testing.T) {
	v, desc := newValidator(t)
	assert.NoError(t, v.Validate(types.Intent{Kind: types.IntentQuery}, desc))
}

func TestNewRejectsInvalidCeiling(t *testing.T) {
	registry := network.NewRegistry("ethereum-sepolia")
	_, err := New(registry, "not-a-number")
	assert.Error(t, err)
}
