package validator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"stable-wallet/pkg/network"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

// ViolationKind identifies which validation rule an intent broke
type ViolationKind string

const (
	KindBadAddress       ViolationKind = "bad_address"
	KindBadAmount        ViolationKind = "bad_amount"
	KindAmountTooLarge   ViolationKind = "amount_too_large"
	KindUnknownNetwork   ViolationKind = "unknown_network"
	KindUnsupportedAsset ViolationKind = "unsupported_asset"
	KindMissingField     ViolationKind = "missing_field"
)

// ValidationError is rejected before any chain interaction and
// surfaced verbatim to the user; never retried.
type ValidationError struct {
	Kind    ViolationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator enforces structural and bounds checks on parsed intents.
// Orchestrators assume validated input and do not re-check these
// invariants.
type Validator struct {
	registry *network.Registry
	ceiling  *big.Int // Per-transaction ceiling in base units of the default precision
}

// New creates a validator. maxTransactionAmount is the per-transaction
// ceiling as a decimal string in asset units.
func New(registry *network.Registry, maxTransactionAmount string) (*Validator, error) {
	ceiling, err := wallet.ToBaseUnits(maxTransactionAmount, wallet.DefaultDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ceiling: %w", err)
	}
	return &Validator{registry: registry, ceiling: ceiling}, nil
}

// Validate checks an intent against the network it will execute on.
// It fails fast with a specific violation kind per rule.
func (v *Validator) Validate(intent types.Intent, current network.Descriptor) error {
	switch intent.Kind {
	case types.IntentSimpleTransfer:
		if err := v.checkAmount(intent.Amount, current); err != nil {
			return err
		}
		return v.checkAddress(intent.DestAddress, current)

	case types.IntentCrossChainTransfer:
		if err := v.checkAmount(intent.Amount, current); err != nil {
			return err
		}
		dest, err := v.registry.Get(intent.DestNetworkKey)
		if err != nil {
			return &ValidationError{
				Kind:    KindUnknownNetwork,
				Message: fmt.Sprintf("unknown destination network %q", intent.DestNetworkKey),
			}
		}
		// The recipient lives on the destination chain
		return v.checkAddress(intent.DestAddress, dest)

	case types.IntentSwap:
		if err := v.checkAmount(intent.MaxInput, current); err != nil {
			return err
		}
		// Output assets are 18-decimal ERC20s, not the stable asset
		if _, err := wallet.ToBaseUnits(intent.ExactOutput, 18); err != nil {
			return &ValidationError{
				Kind:    KindBadAmount,
				Message: fmt.Sprintf("invalid output amount %q", intent.ExactOutput),
			}
		}
		asset := strings.ToUpper(intent.OutputAsset)
		if _, ok := current.SwapAssets[asset]; !ok {
			return &ValidationError{
				Kind: KindUnsupportedAsset,
				Message: fmt.Sprintf("asset %s is not supported on %s (supported: %s)",
					intent.OutputAsset, current.Key, strings.Join(current.SwapAssetSymbols(), ", ")),
			}
		}
		return nil

	case types.IntentQuery:
		return nil

	default:
		return &ValidationError{
			Kind:    KindMissingField,
			Message: fmt.Sprintf("unrecognized intent kind %q", intent.Kind),
		}
	}
}

func (v *Validator) checkAmount(amount string, desc network.Descriptor) error {
	if amount == "" {
		return &ValidationError{Kind: KindMissingField, Message: "amount is required"}
	}

	base, err := wallet.ToBaseUnits(amount, desc.StableTokenDecimals)
	if err != nil {
		return &ValidationError{
			Kind:    KindBadAmount,
			Message: fmt.Sprintf("invalid amount %q: must be a positive decimal number", amount),
		}
	}
	if base.Sign() <= 0 {
		return &ValidationError{
			Kind:    KindBadAmount,
			Message: fmt.Sprintf("amount %q must be greater than 0", amount),
		}
	}
	if base.Cmp(v.ceiling) > 0 {
		return &ValidationError{
			Kind: KindAmountTooLarge,
			Message: fmt.Sprintf("amount %s exceeds the per-transaction limit of %s",
				amount, wallet.FromBaseUnits(v.ceiling, desc.StableTokenDecimals)),
		}
	}
	return nil
}

func (v *Validator) checkAddress(address string, desc network.Descriptor) error {
	if address == "" {
		return &ValidationError{Kind: KindMissingField, Message: "destination address is required"}
	}

	switch desc.ChainFamily {
	case network.FamilyEVM:
		if !common.IsHexAddress(address) {
			return &ValidationError{
				Kind:    KindBadAddress,
				Message: fmt.Sprintf("%s is not a valid %s address", address, desc.Key),
			}
		}
	case network.FamilySolana:
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return &ValidationError{
				Kind:    KindBadAddress,
				Message: fmt.Sprintf("%s is not a valid %s address", address, desc.Key),
			}
		}
	default:
		return &ValidationError{
			Kind:    KindBadAddress,
			Message: fmt.Sprintf("no address format known for chain family %q", desc.ChainFamily),
		}
	}
	return nil
}
