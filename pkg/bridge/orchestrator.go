package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"stable-wallet/pkg/network"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

// Phase identifies one step of the burn-and-mint protocol
type Phase string

const (
	PhaseApprove     Phase = "approve"
	PhaseBurn        Phase = "burn"
	PhaseAttestation Phase = "attestation"
	PhaseReceive     Phase = "receive"
)

// ProgressFunc receives phase start/completion events for UI display
type ProgressFunc func(phase Phase, completed bool)

// Contract call signatures for the bridge protocol
const (
	approveSignature = "approve(address,uint256)"
	burnSignature    = "depositForBurn(uint256,uint32,bytes32,address,bytes32,uint256,uint32)"
	receiveSignature = "receiveMessage(bytes,bytes)"
)

// Blocks of source-chain finality required before the burn is attested
const finalityThreshold = 2000

// No destination caller restriction on the minted message
const zeroBytes32 = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Request is one cross-chain transfer. Both wallet handles must
// already exist; destination wallet creation is the caller's job.
type Request struct {
	SourceHandle       types.WalletHandle
	DestinationHandle  types.WalletHandle
	Source             network.Descriptor
	Destination        network.Descriptor
	DestinationAddress string
	Amount             *big.Int // Base units
}

// Result reports the transaction ids of each executed phase. On
// failure it still carries the ids of the phases that completed, since
// approve and burn have irreversible on-chain effects.
type Result struct {
	ApproveTxID string  `json:"approve_tx_id,omitempty"`
	BurnTxID    string  `json:"burn_tx_id,omitempty"`
	BurnTxHash  string  `json:"burn_tx_hash,omitempty"`
	ReceiveTxID string  `json:"receive_tx_id,omitempty"`
	Completed   []Phase `json:"completed"`
}

// Submitter is the slice of the wallet client the orchestrator needs
type Submitter interface {
	SubmitContractCall(ctx context.Context, handle types.WalletHandle, contract, functionSignature string, args []string) (types.TransactionRecord, error)
}

// Confirmer awaits a terminal transaction state
type Confirmer interface {
	AwaitConfirmed(ctx context.Context, providerTxID string, cfg wallet.PollConfig) (types.TransactionRecord, error)
}

// Attestor fetches the signed burn proof
type Attestor interface {
	AwaitAttestation(ctx context.Context, sourceDomain uint32, txHash string) (AttestationResult, error)
}

// Orchestrator drives the four-phase burn-and-mint protocol:
// approve, burn (hash captured), attestation, receive. Phases run
// strictly sequentially; phase N+1 never starts before phase N
// confirms.
type Orchestrator struct {
	submitter Submitter
	confirmer Confirmer
	attestor  Attestor

	// maxFee = amount / MaxFeeDivisor, floor, min 1 base unit.
	// A tunable default, not a quoted relay fee.
	MaxFeeDivisor int64
	PollConfig    wallet.PollConfig
}

// NewOrchestrator creates a cross-chain transfer orchestrator
func NewOrchestrator(submitter Submitter, confirmer Confirmer, attestor Attestor) *Orchestrator {
	return &Orchestrator{
		submitter:     submitter,
		confirmer:     confirmer,
		attestor:      attestor,
		MaxFeeDivisor: 5000,
		PollConfig:    wallet.DefaultPollConfig(),
	}
}

// Execute runs the transfer to completion. Any phase failure aborts
// forward progress; the returned Result reports which phases already
// completed. An attestation timeout leaves the transfer resumable
// against the same burn.
func (o *Orchestrator) Execute(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	var res Result
	report := func(phase Phase, completed bool) {
		if progress != nil {
			progress(phase, completed)
		}
	}

	// Phase 1: approve the burn contract to spend the stable asset
	report(PhaseApprove, false)
	approveTx, err := o.submitter.SubmitContractCall(ctx, req.SourceHandle,
		req.Source.StableTokenAddress, approveSignature,
		[]string{req.Source.TokenMessenger, req.Amount.String()})
	if err != nil {
		return res, fmt.Errorf("approve phase: %w", err)
	}
	res.ApproveTxID = approveTx.ID
	if _, err := o.confirmer.AwaitConfirmed(ctx, approveTx.ID, o.PollConfig); err != nil {
		return res, fmt.Errorf("approve phase: %w", err)
	}
	res.Completed = append(res.Completed, PhaseApprove)
	report(PhaseApprove, true)

	// Phase 2: burn on the source chain, capturing the tx hash the
	// attestor will be asked about
	report(PhaseBurn, false)
	burnTx, err := o.submitter.SubmitContractCall(ctx, req.SourceHandle,
		req.Source.TokenMessenger, burnSignature, o.burnArgs(req))
	if err != nil {
		return res, fmt.Errorf("burn phase: %w", err)
	}
	res.BurnTxID = burnTx.ID

	burnPoll := o.PollConfig
	burnPoll.CaptureTxHash = true
	burnRecord, err := o.confirmer.AwaitConfirmed(ctx, burnTx.ID, burnPoll)
	if err != nil {
		return res, fmt.Errorf("burn phase: %w", err)
	}
	res.BurnTxHash = burnRecord.TxHash
	res.Completed = append(res.Completed, PhaseBurn)
	report(PhaseBurn, true)

	// Phase 3: wait for the attestor to sign off on the burn. There is
	// no compensating action here: on timeout the transfer is pending,
	// not failed, and must be resumed against this burn.
	report(PhaseAttestation, false)
	attestation, err := o.attestor.AwaitAttestation(ctx, req.Source.BridgeDomain, burnRecord.TxHash)
	if err != nil {
		return res, fmt.Errorf("attestation phase: %w", err)
	}
	if !attestation.Complete() {
		return res, fmt.Errorf("attestation phase: attestor returned incomplete attestation for %s", burnRecord.TxHash)
	}
	res.Completed = append(res.Completed, PhaseAttestation)
	report(PhaseAttestation, true)

	// Phase 4: mint on the destination chain with the destination wallet
	report(PhaseReceive, false)
	receiveTx, err := o.submitter.SubmitContractCall(ctx, req.DestinationHandle,
		req.Destination.MessageTransmitter, receiveSignature,
		[]string{attestation.Message, attestation.Attestation})
	if err != nil {
		return res, fmt.Errorf("receive phase: %w", err)
	}
	res.ReceiveTxID = receiveTx.ID
	if _, err := o.confirmer.AwaitConfirmed(ctx, receiveTx.ID, o.PollConfig); err != nil {
		return res, fmt.Errorf("receive phase: %w", err)
	}
	res.Completed = append(res.Completed, PhaseReceive)
	report(PhaseReceive, true)

	return res, nil
}

func (o *Orchestrator) burnArgs(req Request) []string {
	return []string{
		req.Amount.String(),
		fmt.Sprintf("%d", req.Destination.BridgeDomain),
		addressToBytes32(req.DestinationAddress),
		req.Source.StableTokenAddress,
		zeroBytes32,
		o.maxFee(req.Amount).String(),
		fmt.Sprintf("%d", finalityThreshold),
	}
}

func (o *Orchestrator) maxFee(amount *big.Int) *big.Int {
	fee := new(big.Int).Div(amount, big.NewInt(o.MaxFeeDivisor))
	if fee.Sign() == 0 {
		fee.SetInt64(1)
	}
	return fee
}

// addressToBytes32 left-pads a 20-byte EVM address into the bytes32
// recipient form the burn contract expects.
func addressToBytes32(address string) string {
	addr := common.HexToAddress(address)
	return hexutil.Encode(common.LeftPadBytes(addr.Bytes(), 32))
}
