package swap

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"stable-wallet/pkg/network"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

// Phase identifies one step of the swap protocol
type Phase string

const (
	PhaseApprove Phase = "approve"
	PhaseExecute Phase = "execute"
)

// ProgressFunc receives phase start/completion events for UI display
type ProgressFunc func(phase Phase, completed bool)

const (
	approveSignature = "approve(address,uint256)"
	// Exact-output swap: spend at most maxIn of the input asset to
	// receive exactly amountOut of the output asset.
	swapSignature = "swapTokensForExactTokens(uint256,uint256,address[],address,uint256)"
)

// Allow-listed swap assets are standard 18-decimal ERC20s; the stable
// input asset's precision comes from the network descriptor.
const swapAssetDecimals = 18

// UnsupportedAssetError reports a swap output asset outside the
// network's allow-list, including the supported set for the user.
type UnsupportedAssetError struct {
	Asset     string
	Network   string
	Supported []string
}

func (e *UnsupportedAssetError) Error() string {
	return fmt.Sprintf("asset %s is not supported on %s (supported: %s)",
		e.Asset, e.Network, strings.Join(e.Supported, ", "))
}

// Request is one exact-output swap
type Request struct {
	Handle          types.WalletHandle
	Network         network.Descriptor
	OutputAsset     string // Symbol, checked against the allow-list
	ExactOutput     string // Decimal string, output asset units
	MaxInput        string // Decimal string, stable asset units
	SlippageBps     int
	DeadlineMinutes int
}

// Result reports both phases' transaction ids plus the computed
// execution parameters. On failure the completed phases are still
// reported since the approve has an irreversible on-chain effect.
type Result struct {
	ApproveTxID          string    `json:"approve_tx_id,omitempty"`
	ExecuteTxID          string    `json:"execute_tx_id,omitempty"`
	MaxInputWithSlippage *big.Int  `json:"-"`
	Deadline             time.Time `json:"deadline"`
	Completed            []Phase   `json:"completed"`
}

// Submitter is the slice of the wallet client the orchestrator needs
type Submitter interface {
	SubmitContractCall(ctx context.Context, handle types.WalletHandle, contract, functionSignature string, args []string) (types.TransactionRecord, error)
}

// Confirmer awaits a terminal transaction state
type Confirmer interface {
	AwaitConfirmed(ctx context.Context, providerTxID string, cfg wallet.PollConfig) (types.TransactionRecord, error)
}

// Orchestrator drives the two-phase approve/execute swap against the
// network's DEX router.
type Orchestrator struct {
	submitter Submitter
	confirmer Confirmer

	PollConfig wallet.PollConfig
}

// NewOrchestrator creates a swap orchestrator
func NewOrchestrator(submitter Submitter, confirmer Confirmer) *Orchestrator {
	return &Orchestrator{
		submitter:  submitter,
		confirmer:  confirmer,
		PollConfig: wallet.DefaultPollConfig(),
	}
}

// WithSlippage widens a max input by a slippage tolerance in basis
// points: maxIn * (10000 + bps) / 10000. Always >= maxIn and linear in
// bps.
func WithSlippage(maxInput *big.Int, bps int) *big.Int {
	widened := new(big.Int).Mul(maxInput, big.NewInt(int64(10000+bps)))
	return widened.Div(widened, big.NewInt(10000))
}

// Execute runs the swap. The output asset must be allow-listed for the
// network; the execute phase never submits without a confirmed
// approve.
func (o *Orchestrator) Execute(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	var res Result
	report := func(phase Phase, completed bool) {
		if progress != nil {
			progress(phase, completed)
		}
	}

	outputToken, ok := req.Network.SwapAssets[strings.ToUpper(req.OutputAsset)]
	if !ok {
		return res, &UnsupportedAssetError{
			Asset:     req.OutputAsset,
			Network:   req.Network.Key,
			Supported: req.Network.SwapAssetSymbols(),
		}
	}
	if req.Network.RouterAddress == "" {
		return res, fmt.Errorf("network %s has no swap router configured", req.Network.Key)
	}

	exactOut, err := wallet.ToBaseUnits(req.ExactOutput, swapAssetDecimals)
	if err != nil {
		return res, err
	}
	maxIn, err := wallet.ToBaseUnits(req.MaxInput, req.Network.StableTokenDecimals)
	if err != nil {
		return res, err
	}

	res.MaxInputWithSlippage = WithSlippage(maxIn, req.SlippageBps)
	res.Deadline = time.Now().Add(time.Duration(req.DeadlineMinutes) * time.Minute)

	// Phase 1: approve the router for the slippage-widened input.
	// The execute phase can spend up to the widened amount, so an
	// approval for only the raw max input would revert there.
	report(PhaseApprove, false)
	approveTx, err := o.submitter.SubmitContractCall(ctx, req.Handle,
		req.Network.StableTokenAddress, approveSignature,
		[]string{req.Network.RouterAddress, res.MaxInputWithSlippage.String()})
	if err != nil {
		return res, fmt.Errorf("approve phase: %w", err)
	}
	res.ApproveTxID = approveTx.ID
	if _, err := o.confirmer.AwaitConfirmed(ctx, approveTx.ID, o.PollConfig); err != nil {
		return res, fmt.Errorf("approve phase: %w", err)
	}
	res.Completed = append(res.Completed, PhaseApprove)
	report(PhaseApprove, true)

	// Phase 2: exact-output swap through the router
	report(PhaseExecute, false)
	path := fmt.Sprintf("[%s,%s]", req.Network.StableTokenAddress, outputToken)
	executeTx, err := o.submitter.SubmitContractCall(ctx, req.Handle,
		req.Network.RouterAddress, swapSignature,
		[]string{
			exactOut.String(),
			res.MaxInputWithSlippage.String(),
			path,
			req.Handle.Address,
			fmt.Sprintf("%d", res.Deadline.Unix()),
		})
	if err != nil {
		return res, Classify(err)
	}
	res.ExecuteTxID = executeTx.ID
	if _, err := o.confirmer.AwaitConfirmed(ctx, executeTx.ID, o.PollConfig); err != nil {
		return res, Classify(err)
	}
	res.Completed = append(res.Completed, PhaseExecute)
	report(PhaseExecute, true)

	return res, nil
}
