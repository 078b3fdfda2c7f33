package swap

import (
	"fmt"
	"strings"
)

// FailureKind is a best-effort classification of an execute-phase
// failure. The chain returns opaque revert reasons, so this is pattern
// matching on the provider's error text, not a guaranteed taxonomy.
type FailureKind string

const (
	KindInsufficientBalance FailureKind = "insufficient_balance"
	KindDeadlineExpired     FailureKind = "deadline_expired"
	KindSlippageExceeded    FailureKind = "slippage_exceeded"
	KindReverted            FailureKind = "reverted"
	KindUnclassified        FailureKind = "unclassified"
)

// ExecutionError wraps an execute-phase failure with a classification
// and a corrective suggestion for the user.
type ExecutionError struct {
	Kind       FailureKind
	Suggestion string
	Cause      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("swap failed (%s): %v. %s", e.Kind, e.Cause, e.Suggestion)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Prioritized pattern list; first match wins. Fragile against provider
// wording changes, so keep KindUnclassified as the fallback.
var failurePatterns = []struct {
	kind       FailureKind
	suggestion string
	patterns   []string
}{
	{
		kind:       KindInsufficientBalance,
		suggestion: "Try a smaller amount or top up the wallet.",
		patterns:   []string{"insufficient balance", "insufficient funds", "exceeds balance"},
	},
	{
		kind:       KindDeadlineExpired,
		suggestion: "Retry the swap; the deadline passed before execution.",
		patterns:   []string{"expired", "deadline"},
	},
	{
		kind:       KindSlippageExceeded,
		suggestion: "Increase the max input or slippage tolerance and retry.",
		patterns:   []string{"excessive_input_amount", "insufficient_output_amount", "slippage"},
	},
	{
		kind:       KindReverted,
		suggestion: "The swap was rejected on chain. Check amounts and retry.",
		patterns:   []string{"revert"},
	},
}

// Classify maps an execute-phase error to an ExecutionError with a
// corrective suggestion, defaulting to an unclassified provider error.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	text := strings.ToLower(err.Error())
	for _, entry := range failurePatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(text, pattern) {
				return &ExecutionError{Kind: entry.kind, Suggestion: entry.suggestion, Cause: err}
			}
		}
	}

	return &ExecutionError{
		Kind:       KindUnclassified,
		Suggestion: "Check the provider message and retry if appropriate.",
		Cause:      err,
	}
}
