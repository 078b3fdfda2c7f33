package parser

import (
	"fmt"
	"regexp"
	"strings"

	"stable-wallet/pkg/types"
)

// Defaults applied when a swap command doesn't spell them out
const (
	DefaultSlippageBps     = 100 // 1%
	DefaultDeadlineMinutes = 10
)

var (
	// "send 10.5 to 0xabc..." (optional asset word after the amount)
	sendPattern = regexp.MustCompile(`^SEND\s+(\d+\.?\d*)\s+(?:[A-Z0-9]+\s+)?TO\s+(\S+)$`)

	// "bridge 10 to 0xabc... on base-sepolia"
	bridgePattern = regexp.MustCompile(`^(?:BRIDGE|MOVE)\s+(\d+\.?\d*)\s+(?:[A-Z0-9]+\s+)?TO\s+(\S+)\s+ON\s+(\S+)$`)

	// "swap 100 for 0.05 WETH"
	swapPattern = regexp.MustCompile(`^SWAP\s+(\d+\.?\d*)\s+FOR\s+(\d+\.?\d*)\s+([A-Z0-9]+)$`)

	// "balance"
	balancePattern = regexp.MustCompile(`^(?:BALANCE|SALDO)$`)
)

// ParseCommand parses a freeform wallet command into a typed Intent.
// This is the default implementation of the intent-producer contract;
// the orchestration engine only depends on the Intent shape, not on
// this parser.
//
// Examples:
//   - "send 10.5 to 0x1234..."
//   - "bridge 25 to 0x1234... on base-sepolia"
//   - "swap 100 for 0.05 WETH"
//   - "balance"
func ParseCommand(command string) (*types.Intent, error) {
	raw := strings.TrimSpace(command)
	normalized := strings.ToUpper(raw)

	if matches := sendPattern.FindStringSubmatch(normalized); matches != nil {
		return &types.Intent{
			Kind:        types.IntentSimpleTransfer,
			Confidence:  0.95,
			RawText:     raw,
			Amount:      matches[1],
			DestAddress: originalToken(raw, matches[2]),
		}, nil
	}

	if matches := bridgePattern.FindStringSubmatch(normalized); matches != nil {
		return &types.Intent{
			Kind:           types.IntentCrossChainTransfer,
			Confidence:     0.9,
			RawText:        raw,
			Amount:         matches[1],
			DestAddress:    originalToken(raw, matches[2]),
			DestNetworkKey: strings.ToLower(matches[3]),
		}, nil
	}

	if matches := swapPattern.FindStringSubmatch(normalized); matches != nil {
		return &types.Intent{
			Kind:            types.IntentSwap,
			Confidence:      0.9,
			RawText:         raw,
			MaxInput:        matches[1],
			ExactOutput:     matches[2],
			OutputAsset:     matches[3],
			SlippageBps:     DefaultSlippageBps,
			DeadlineMinutes: DefaultDeadlineMinutes,
		}, nil
	}

	if balancePattern.MatchString(normalized) {
		return &types.Intent{
			Kind:       types.IntentQuery,
			Confidence: 1.0,
			RawText:    raw,
		}, nil
	}

	return nil, fmt.Errorf("could not understand command %q. Try 'send <amount> to <address>', 'bridge <amount> to <address> on <network>', 'swap <max-input> for <amount> <asset>', or 'balance'", raw)
}

// originalToken recovers the case-sensitive form of a token that was
// matched against the uppercased command. Addresses are case-sensitive
// (EIP-55 checksums, base58), so the uppercased capture can't be used.
func originalToken(raw, upperToken string) string {
	for _, word := range strings.Fields(raw) {
		if strings.ToUpper(word) == upperToken {
			return word
		}
	}
	return upperToken
}
