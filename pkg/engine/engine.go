package engine

import (
	"context"
	"fmt"

	"stable-wallet/pkg/bridge"
	"stable-wallet/pkg/network"
	"stable-wallet/pkg/swap"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

// DestinationWalletMissingError means a cross-chain transfer was
// requested before a wallet exists on the destination network.
// Creating it is the caller's responsibility.
type DestinationWalletMissingError struct {
	NetworkKey string
}

func (e *DestinationWalletMissingError) Error() string {
	return fmt.Sprintf("no wallet exists on destination network %s; create one first", e.NetworkKey)
}

// Provider is the slice of the wallet client the engine calls directly
type Provider interface {
	CreateWallet(ctx context.Context, networkKey string) (types.WalletHandle, error)
	GetBalance(ctx context.Context, handle types.WalletHandle, tokenID string) (string, error)
	SubmitTransfer(ctx context.Context, handle types.WalletHandle, tokenID, destination, amount string) (types.TransactionRecord, error)
}

// Confirmer awaits a terminal transaction state
type Confirmer interface {
	AwaitConfirmed(ctx context.Context, providerTxID string, cfg wallet.PollConfig) (types.TransactionRecord, error)
}

// Reporter delivers execution results for intents dispatched
// asynchronously (from the confirmation gate)
type Reporter func(userID, message string)

// Outcome is the terminal result of one intent execution
type Outcome struct {
	Kind    types.IntentKind
	Message string // Human-readable summary

	TransferTx *types.TransactionRecord
	Bridge     *bridge.Result
	Swap       *swap.Result
	Balance    string
}

// Engine turns validated, confirmed intents into orchestrator runs.
// Each intent executes independently; the wallet handle store is the
// only shared state.
type Engine struct {
	provider  Provider
	confirmer Confirmer
	store     *wallet.Store
	registry  *network.Registry
	bridger   *bridge.Orchestrator
	swapper   *swap.Orchestrator

	PollConfig wallet.PollConfig
	Report     Reporter
	Progress   func(stage string) // Per-step progress for UI display
}

// New creates the orchestration engine
func New(provider Provider, confirmer Confirmer, store *wallet.Store, registry *network.Registry, bridger *bridge.Orchestrator, swapper *swap.Orchestrator) *Engine {
	return &Engine{
		provider:   provider,
		confirmer:  confirmer,
		store:      store,
		registry:   registry,
		bridger:    bridger,
		swapper:    swapper,
		PollConfig: wallet.DefaultPollConfig(),
	}
}

func (e *Engine) progress(format string, args ...any) {
	if e.Progress != nil {
		e.Progress(fmt.Sprintf(format, args...))
	}
}

// EnsureWallet returns the user's wallet on a network, creating it on
// first use and recording the handle for later lookups.
func (e *Engine) EnsureWallet(ctx context.Context, userID string, desc network.Descriptor) (types.WalletHandle, error) {
	if handle, ok := e.store.Get(userID, desc.Key); ok {
		return handle, nil
	}

	handle, err := e.provider.CreateWallet(ctx, desc.Key)
	if err != nil {
		return types.WalletHandle{}, err
	}
	if err := e.store.Put(userID, handle); err != nil {
		return types.WalletHandle{}, fmt.Errorf("failed to record wallet handle: %w", err)
	}
	return handle, nil
}

// Execute runs one validated intent to its terminal outcome. The
// intent's network is resolved here and threaded explicitly into the
// orchestrators; nothing below this reads the registry's current
// selection.
func (e *Engine) Execute(ctx context.Context, userID string, intent types.Intent) (*Outcome, error) {
	desc, err := e.registry.Get(intent.NetworkKey)
	if err != nil {
		return nil, err
	}

	switch intent.Kind {
	case types.IntentQuery:
		return e.executeQuery(ctx, userID, desc)
	case types.IntentSimpleTransfer:
		return e.executeTransfer(ctx, userID, intent, desc)
	case types.IntentCrossChainTransfer:
		return e.executeBridge(ctx, userID, intent, desc)
	case types.IntentSwap:
		return e.executeSwap(ctx, userID, intent, desc)
	default:
		return nil, fmt.Errorf("no orchestrator for intent kind %q", intent.Kind)
	}
}

// Dispatch implements the confirmation gate's dispatcher contract:
// execute the confirmed intent and deliver the result out of band.
func (e *Engine) Dispatch(ctx context.Context, userID string, intent types.Intent) error {
	outcome, err := e.Execute(ctx, userID, intent)
	if err != nil {
		if e.Report != nil {
			e.Report(userID, fmt.Sprintf("Action failed: %v", err))
		}
		return err
	}
	if e.Report != nil {
		e.Report(userID, outcome.Message)
	}
	return nil
}

func (e *Engine) executeQuery(ctx context.Context, userID string, desc network.Descriptor) (*Outcome, error) {
	handle, err := e.EnsureWallet(ctx, userID, desc)
	if err != nil {
		return nil, err
	}

	balance, err := e.provider.GetBalance(ctx, handle, desc.StableTokenID)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Kind:    types.IntentQuery,
		Balance: balance,
		Message: fmt.Sprintf("Balance on %s: %s", desc.Key, balance),
	}, nil
}

func (e *Engine) executeTransfer(ctx context.Context, userID string, intent types.Intent, desc network.Descriptor) (*Outcome, error) {
	handle, err := e.EnsureWallet(ctx, userID, desc)
	if err != nil {
		return nil, err
	}

	baseUnits, err := wallet.ToBaseUnits(intent.Amount, desc.StableTokenDecimals)
	if err != nil {
		return nil, err
	}

	e.progress("Submitting transfer of %s on %s", intent.Amount, desc.Key)
	record, err := e.provider.SubmitTransfer(ctx, handle, desc.StableTokenID, intent.DestAddress, baseUnits.String())
	if err != nil {
		return nil, err
	}

	e.progress("Waiting for confirmation of %s", record.ID)
	confirmed, err := e.confirmer.AwaitConfirmed(ctx, record.ID, e.PollConfig)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Kind:       types.IntentSimpleTransfer,
		TransferTx: &confirmed,
		Message:    fmt.Sprintf("Sent %s to %s on %s (tx %s)", intent.Amount, intent.DestAddress, desc.Key, confirmed.ID),
	}, nil
}

func (e *Engine) executeBridge(ctx context.Context, userID string, intent types.Intent, source network.Descriptor) (*Outcome, error) {
	dest, err := e.registry.Get(intent.DestNetworkKey)
	if err != nil {
		return nil, err
	}

	sourceHandle, err := e.EnsureWallet(ctx, userID, source)
	if err != nil {
		return nil, err
	}

	// Destination wallet creation is the caller's responsibility; a
	// bridge never implicitly provisions the receiving side.
	destHandle, ok := e.store.Get(userID, dest.Key)
	if !ok {
		return nil, &DestinationWalletMissingError{NetworkKey: dest.Key}
	}

	amount, err := wallet.ToBaseUnits(intent.Amount, source.StableTokenDecimals)
	if err != nil {
		return nil, err
	}

	req := bridge.Request{
		SourceHandle:       sourceHandle,
		DestinationHandle:  destHandle,
		Source:             source,
		Destination:        dest,
		DestinationAddress: intent.DestAddress,
		Amount:             amount,
	}

	result, err := e.bridger.Execute(ctx, req, func(phase bridge.Phase, completed bool) {
		if completed {
			e.progress("Bridge phase %s complete", phase)
		} else {
			e.progress("Bridge phase %s started", phase)
		}
	})
	if err != nil {
		// Approve and burn are irreversible; surface what completed
		return &Outcome{
			Kind:    types.IntentCrossChainTransfer,
			Bridge:  &result,
			Message: fmt.Sprintf("Bridge incomplete after phases %v: %v", result.Completed, err),
		}, err
	}

	return &Outcome{
		Kind:   types.IntentCrossChainTransfer,
		Bridge: &result,
		Message: fmt.Sprintf("Bridged %s from %s to %s on %s (receive tx %s)",
			intent.Amount, source.Key, intent.DestAddress, dest.Key, result.ReceiveTxID),
	}, nil
}

func (e *Engine) executeSwap(ctx context.Context, userID string, intent types.Intent, desc network.Descriptor) (*Outcome, error) {
	handle, err := e.EnsureWallet(ctx, userID, desc)
	if err != nil {
		return nil, err
	}

	req := swap.Request{
		Handle:          handle,
		Network:         desc,
		OutputAsset:     intent.OutputAsset,
		ExactOutput:     intent.ExactOutput,
		MaxInput:        intent.MaxInput,
		SlippageBps:     intent.SlippageBps,
		DeadlineMinutes: intent.DeadlineMinutes,
	}

	result, err := e.swapper.Execute(ctx, req, func(phase swap.Phase, completed bool) {
		if completed {
			e.progress("Swap phase %s complete", phase)
		} else {
			e.progress("Swap phase %s started", phase)
		}
	})
	if err != nil {
		return &Outcome{
			Kind:    types.IntentSwap,
			Swap:    &result,
			Message: fmt.Sprintf("Swap incomplete after phases %v: %v", result.Completed, err),
		}, err
	}

	return &Outcome{
		Kind: types.IntentSwap,
		Swap: &result,
		Message: fmt.Sprintf("Swapped for %s %s on %s (tx %s)",
			intent.ExactOutput, intent.OutputAsset, desc.Key, result.ExecuteTxID),
	}, nil
}
