package types

// IntentKind identifies which variant of the Intent union is populated
type IntentKind string

const (
	IntentSimpleTransfer     IntentKind = "simple_transfer"      // Same-chain send
	IntentCrossChainTransfer IntentKind = "cross_chain_transfer" // Burn-and-mint bridge
	IntentSwap               IntentKind = "swap"                 // DEX swap
	IntentQuery              IntentKind = "query"                // Balance lookup, read-only
)

// Intent is a typed request to move or exchange value, produced by an
// intent parser (UI action or conversational command) and read-only to
// the orchestration engine.
type Intent struct {
	Kind       IntentKind `json:"kind"`
	Confidence float64    `json:"confidence"` // Parser confidence, 0..1
	RawText    string     `json:"raw_text"`   // Original user input

	// Network the intent executes on, set by the producer. Threaded
	// explicitly so nothing below the UI reads process-wide selection.
	NetworkKey string `json:"network_key,omitempty"`

	// Simple and cross-chain transfers
	Amount         string `json:"amount,omitempty"`           // Decimal string, e.g. "10.5"
	DestAddress    string `json:"dest_address,omitempty"`     // Recipient address
	DestNetworkKey string `json:"dest_network_key,omitempty"` // Cross-chain destination

	// Swaps
	OutputAsset     string `json:"output_asset,omitempty"`     // Asset symbol to receive
	ExactOutput     string `json:"exact_output,omitempty"`     // Exact output amount wanted
	MaxInput        string `json:"max_input,omitempty"`        // Max input to spend
	SlippageBps     int    `json:"slippage_bps,omitempty"`     // Slippage tolerance in basis points
	DeadlineMinutes int    `json:"deadline_minutes,omitempty"` // Swap deadline window
}

// IsSensitive returns true for intents that move value and therefore
// require explicit human confirmation before execution.
func (i *Intent) IsSensitive() bool {
	switch i.Kind {
	case IntentSimpleTransfer, IntentCrossChainTransfer, IntentSwap:
		return true
	default:
		return false
	}
}

// TxState is the lifecycle state of a submitted on-chain operation
type TxState string

const (
	TxSubmitted TxState = "SUBMITTED" // Accepted by the provider, not yet final
	TxConfirmed TxState = "CONFIRMED" // Confirmed on chain
	TxFailed    TxState = "FAILED"    // Chain reported failure
)

// IsTerminal returns true once the provider will no longer change the state
func (s TxState) IsTerminal() bool {
	return s == TxConfirmed || s == TxFailed
}

// TransactionRecord is one submitted on-chain operation as reported by
// the wallet provider. Records are immutable history; callers poll
// until the state is terminal.
type TransactionRecord struct {
	ID     string  `json:"id"`                // Provider transaction id
	State  TxState `json:"state"`             // Current lifecycle state
	TxHash string  `json:"tx_hash,omitempty"` // On-chain hash, set once mined
}

// WalletHandle identifies a provider-held wallet on one network.
// One handle exists per (user, network) pair; handles are never
// mutated, only superseded.
type WalletHandle struct {
	WalletID   string `json:"wallet_id"`
	Address    string `json:"address"`
	NetworkKey string `json:"network_key"`
}
