package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stable-wallet/pkg/bridge"
	"stable-wallet/pkg/network"
	"stable-wallet/pkg/swap"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

type transferCall struct {
	walletID    string
	tokenID     string
	destination string
	amount      string
}

// fakeProvider implements the engine's provider and confirmer slices
// plus the orchestrators' submitter slice.
type fakeProvider struct {
	wallets   int
	transfers []transferCall
	balance   string
}

func (f *fakeProvider) CreateWallet(_ context.Context, networkKey string) (types.WalletHandle, error) {
	f.wallets++
	return types.WalletHandle{WalletID: "w-1", Address: "0xwallet", NetworkKey: networkKey}, nil
}

func (f *fakeProvider) GetBalance(_ context.Context, _ types.WalletHandle, _ string) (string, error) {
	return f.balance, nil
}

func (f *fakeProvider) SubmitTransfer(_ context.Context, handle types.WalletHandle, tokenID, destination, amount string) (types.TransactionRecord, error) {
	f.transfers = append(f.transfers, transferCall{
		walletID:    handle.WalletID,
		tokenID:     tokenID,
		destination: destination,
		amount:      amount,
	})
	return types.TransactionRecord{ID: "tx-transfer", State: types.TxSubmitted}, nil
}

func (f *fakeProvider) SubmitContractCall(_ context.Context, _ types.WalletHandle, _, _ string, _ []string) (types.TransactionRecord, error) {
	return types.TransactionRecord{ID: "tx-call", State: types.TxSubmitted}, nil
}

func (f *fakeProvider) AwaitConfirmed(_ context.Context, providerTxID string, _ wallet.PollConfig) (types.TransactionRecord, error) {
	return types.TransactionRecord{ID: providerTxID, State: types.TxConfirmed, TxHash: "0xhash"}, nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeProvider, *wallet.Store) {
	t.Helper()

	provider := &fakeProvider{balance: "100.5"}
	store, err := wallet.NewStore(filepath.Join(t.TempDir(), "wallets.json"))
	require.NoError(t, err)

	registry := network.NewRegistry("ethereum-sepolia")
	bridger := bridge.NewOrchestrator(provider, provider, nil)
	swapper := swap.NewOrchestrator(provider, provider)

	return New(provider, provider, store, registry, bridger, swapper), provider, store
}

func TestExecuteTransferSubmitsExactBaseUnits(t *testing.T) {
	eng, provider, _ := newTestEngine(t)

	outcome, err := eng.Execute(context.Background(), "alice", types.Intent{
		Kind:        types.IntentSimpleTransfer,
		NetworkKey:  "ethereum-sepolia",
		Amount:      "10.5",
		DestAddress: "0x1234567890AbcdEF1234567890aBcdef12345678",
	})
	require.NoError(t, err)

	require.Len(t, provider.transfers, 1, "exactly one transfer submission")
	assert.Equal(t, "10500000", provider.transfers[0].amount, "decimal amount converted exactly to base units")
	assert.Equal(t, "0x1234567890AbcdEF1234567890aBcdef12345678", provider.transfers[0].destination)

	require.NotNil(t, outcome.TransferTx)
	assert.Equal(t, types.TxConfirmed, outcome.TransferTx.State)
	assert.True(t, outcome.TransferTx.State.IsTerminal())
	assert.Contains(t, outcome.Message, "tx-transfer")
}

func TestExecuteQueryReportsBalance(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	outcome, err := eng.Execute(context.Background(), "alice", types.Intent{
		Kind:       types.IntentQuery,
		NetworkKey: "ethereum-sepolia",
	})
	require.NoError(t, err)

	assert.Equal(t, "100.5", outcome.Balance)
	assert.Contains(t, outcome.Message, "ethereum-sepolia")
}

func TestExecuteRejectsUnknownNetwork(t *testing.T) {
	eng, provider, _ := newTestEngine(t)

	_, err := eng.Execute(context.Background(), "alice", types.Intent{
		Kind:       types.IntentQuery,
		NetworkKey: "dogecoin",
	})
	require.Error(t, err)

	var unknownErr *network.UnknownNetworkError
	assert.ErrorAs(t, err, &unknownErr)
	assert.Zero(t, provider.wallets, "no provider interaction for an unknown network")
}

func TestEnsureWalletCreatesOnce(t *testing.T) {
	eng, provider, store := newTestEngine(t)

	registry := network.NewRegistry("ethereum-sepolia")
	desc := registry.Current()

	first, err := eng.EnsureWallet(context.Background(), "alice", desc)
	require.NoError(t, err)

	second, err := eng.EnsureWallet(context.Background(), "alice", desc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.wallets, "second call reuses the stored handle")

	stored, ok := store.Get("alice", desc.Key)
	require.True(t, ok)
	assert.Equal(t, first, stored)
}

func TestExecuteBridgeRequiresDestinationWallet(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.Execute(context.Background(), "alice", types.Intent{
		Kind:           types.IntentCrossChainTransfer,
		NetworkKey:     "ethereum-sepolia",
		Amount:         "25",
		DestAddress:    "0x1234567890AbcdEF1234567890aBcdef12345678",
		DestNetworkKey: "base-sepolia",
	})
	require.Error(t, err)

	var missingErr *DestinationWalletMissingError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "base-sepolia", missingErr.NetworkKey)
}

func TestDispatchReportsOutcome(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	var reportedUser, reportedMessage string
	eng.Report = func(userID, message string) {
		reportedUser = userID
		reportedMessage = message
	}

	err := eng.Dispatch(context.Background(), "alice", types.Intent{
		Kind:        types.IntentSimpleTransfer,
		NetworkKey:  "ethereum-sepolia",
		Amount:      "1",
		DestAddress: "0x1234567890AbcdEF1234567890aBcdef12345678",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", reportedUser)
	assert.Contains(t, reportedMessage, "Sent 1")
}

func TestDispatchReportsFailure(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	var reportedMessage string
	eng.Report = func(_, message string) {
		reportedMessage = message
	}

	err := eng.Dispatch(context.Background(), "alice", types.Intent{
		Kind:       types.IntentQuery,
		NetworkKey: "dogecoin",
	})
	require.Error(t, err)
	assert.Contains(t, reportedMessage, "Action failed")
}
