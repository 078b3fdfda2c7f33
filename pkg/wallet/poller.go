package wallet

import (
	"context"
	"fmt"
	"time"

	"stable-wallet/pkg/types"
)

// TransactionFailedError means the chain reported failure for the
// transaction. Fatal for the run; on-chain state changed, so callers
// must never silently retry.
type TransactionFailedError struct {
	TxID string
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed on chain", e.TxID)
}

// ConfirmationTimeoutError means the bounded wait was exhausted while
// the transaction was still pending. The transaction may yet confirm;
// callers should let the user re-check status rather than re-submit.
type ConfirmationTimeoutError struct {
	TxID     string
	Attempts int
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed after %d attempts", e.TxID, e.Attempts)
}

// StatusReader is the slice of the wallet client the poller needs
type StatusReader interface {
	GetStatus(ctx context.Context, providerTxID string) (types.TransactionRecord, error)
}

// PollConfig bounds one confirmation wait
type PollConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	CaptureTxHash bool // Keep polling a confirmed record until its hash is known
}

// Additive backoff step between attempts
const delayStep = 500 * time.Millisecond

// DefaultPollConfig suits ordinary transfer confirmation waits
func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxAttempts:  30,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
	}
}

// Poller turns an async provider transaction id into a terminal state.
// This is the single place that encodes what waiting for an on-chain
// effect looks like; every orchestrator shares it.
type Poller struct {
	reader StatusReader
}

// NewPoller creates a poller over the given status reader
func NewPoller(reader StatusReader) *Poller {
	return &Poller{reader: reader}
}

// AwaitConfirmed polls until the transaction is Confirmed. A Failed
// state aborts immediately; exhausting the attempt budget returns a
// ConfirmationTimeoutError. Transient status-read errors consume an
// attempt and are retried.
func (p *Poller) AwaitConfirmed(ctx context.Context, providerTxID string, cfg PollConfig) (types.TransactionRecord, error) {
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		record, err := p.reader.GetStatus(ctx, providerTxID)
		if err == nil {
			switch record.State {
			case types.TxFailed:
				return record, &TransactionFailedError{TxID: providerTxID}
			case types.TxConfirmed:
				if cfg.CaptureTxHash && record.TxHash == "" {
					// Confirmed but the hash isn't indexed yet; keep polling
					break
				}
				return record, nil
			}
		}

		// No sleep after the final attempt
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return types.TransactionRecord{}, ctx.Err()
		case <-time.After(delay):
		}

		delay += delayStep
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return types.TransactionRecord{}, &ConfirmationTimeoutError{TxID: providerTxID, Attempts: cfg.MaxAttempts}
}
