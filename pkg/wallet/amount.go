package wallet

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// DefaultDecimals is the base-unit precision assumed when a network
// descriptor does not say otherwise (6-decimal stable asset).
const DefaultDecimals = 6

// InvalidAmountError reports a decimal amount string that cannot be
// converted to base units.
type InvalidAmountError struct {
	Value  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Value, e.Reason)
}

// Unsigned decimal with optional fraction, e.g. "10", "10.5", "0.25"
var amountPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)

// ToBaseUnits converts a decimal amount string to fixed-point base
// units. Conversion is exact: no floats, and inputs with more
// fractional digits than the asset supports are rejected rather than
// truncated.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, &InvalidAmountError{Value: amount, Reason: "empty"}
	}
	if strings.HasPrefix(amount, "-") {
		return nil, &InvalidAmountError{Value: amount, Reason: "must not be negative"}
	}

	matches := amountPattern.FindStringSubmatch(amount)
	if matches == nil {
		return nil, &InvalidAmountError{Value: amount, Reason: "not a decimal number"}
	}

	whole, frac := matches[1], matches[2]
	if len(frac) > decimals {
		return nil, &InvalidAmountError{
			Value:  amount,
			Reason: fmt.Sprintf("more than %d decimal places", decimals),
		}
	}

	// Pad the fraction out to the full precision and join
	frac += strings.Repeat("0", decimals-len(frac))
	base, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, &InvalidAmountError{Value: amount, Reason: "not a decimal number"}
	}
	return base, nil
}

// FromBaseUnits converts base units back to a decimal string. The
// inverse of ToBaseUnits: round-trips exactly for all valid inputs.
func FromBaseUnits(base *big.Int, decimals int) string {
	digits := base.String()
	if decimals == 0 {
		return digits
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
