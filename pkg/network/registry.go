package network

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ChainFamily groups networks by address format and tooling
type ChainFamily string

const (
	FamilyEVM    ChainFamily = "evm"
	FamilySolana ChainFamily = "solana"
)

// Descriptor describes one supported chain. Descriptors are immutable
// once registered; only the registry's "current" pointer is mutable.
type Descriptor struct {
	Key         string      `json:"key"`          // Registry key, e.g. "base-sepolia"
	ChainFamily ChainFamily `json:"chain_family"` // Address format family
	Testnet     bool        `json:"testnet"`

	// Stable asset used for transfers and as swap input
	StableTokenID       string `json:"stable_token_id"`       // Provider token identifier
	StableTokenAddress  string `json:"stable_token_address"`  // On-chain contract
	StableTokenDecimals int    `json:"stable_token_decimals"` // Base-unit precision

	// Burn-and-mint bridge contracts
	BridgeDomain       uint32 `json:"bridge_domain"`       // Attestation source/destination domain id
	TokenMessenger     string `json:"token_messenger"`     // Burn contract
	MessageTransmitter string `json:"message_transmitter"` // Receive contract

	// DEX routing
	RouterAddress string            `json:"router_address,omitempty"`
	SwapAssets    map[string]string `json:"swap_assets,omitempty"` // Symbol -> token contract
}

// SupportsBridge returns true when the descriptor carries the contracts
// required for a burn-and-mint transfer.
func (d Descriptor) SupportsBridge() bool {
	return d.TokenMessenger != "" && d.MessageTransmitter != ""
}

// SwapAssetSymbols returns the allow-listed output assets, sorted for display
func (d Descriptor) SwapAssetSymbols() []string {
	symbols := make([]string, 0, len(d.SwapAssets))
	for symbol := range d.SwapAssets {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// UnknownNetworkError is returned when a lookup key has no descriptor
type UnknownNetworkError struct {
	Key string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("unknown network: %s", e.Key)
}

// Registry holds the supported network descriptors plus the mutable
// "currently selected" network used as the CLI session default.
// Orchestrators receive descriptors explicitly and never read the
// current selection.
type Registry struct {
	mu       sync.RWMutex
	networks map[string]Descriptor
	current  string
}

// Testnet bridge contracts are shared across EVM testnets, as are the
// mainnet ones across EVM mainnets.
const (
	testnetTokenMessenger     = "0x8FE6B999Dc680CcFDD5Bf7EB0974218be2542DAA"
	testnetMessageTransmitter = "0xE737e5cEBEEBa77EFE34D4aa090756590b1CE275"
	mainnetTokenMessenger     = "0x28b5a0e9C621a5BadaA536219b3a228C8168cf5d"
	mainnetMessageTransmitter = "0x81D40F21F12A8F0E3252Bccb954D722d4c464B64"
)

func builtinNetworks() map[string]Descriptor {
	descriptors := []Descriptor{
		{
			Key:                 "ethereum",
			ChainFamily:         FamilyEVM,
			StableTokenID:       "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			StableTokenAddress:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			StableTokenDecimals: 6,
			BridgeDomain:        0,
			TokenMessenger:      mainnetTokenMessenger,
			MessageTransmitter:  mainnetMessageTransmitter,
			RouterAddress:       "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
			SwapAssets: map[string]string{
				"WETH": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
				"DAI":  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
				"UNI":  "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984",
			},
		},
		{
			Key:                 "base",
			ChainFamily:         FamilyEVM,
			StableTokenID:       "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
			StableTokenAddress:  "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
			StableTokenDecimals: 6,
			BridgeDomain:        6,
			TokenMessenger:      mainnetTokenMessenger,
			MessageTransmitter:  mainnetMessageTransmitter,
			RouterAddress:       "0x4752ba5DBc23f44D87826276BF6Fd6b1C372aD24",
			SwapAssets: map[string]string{
				"WETH": "0x4200000000000000000000000000000000000006",
			},
		},
		{
			Key:                 "arbitrum",
			ChainFamily:         FamilyEVM,
			StableTokenID:       "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
			StableTokenAddress:  "0xaf88d065e77c8cC2239327C5EDb3A432268e5831",
			StableTokenDecimals: 6,
			BridgeDomain:        3,
			TokenMessenger:      mainnetTokenMessenger,
			MessageTransmitter:  mainnetMessageTransmitter,
			RouterAddress:       "0x4752ba5DBc23f44D87826276BF6Fd6b1C372aD24",
			SwapAssets: map[string]string{
				"WETH": "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
			},
		},
		{
			Key:                 "ethereum-sepolia",
			ChainFamily:         FamilyEVM,
			Testnet:             true,
			StableTokenID:       "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			StableTokenAddress:  "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			StableTokenDecimals: 6,
			BridgeDomain:        0,
			TokenMessenger:      testnetTokenMessenger,
			MessageTransmitter:  testnetMessageTransmitter,
			RouterAddress:       "0xeE567Fe1712Faf6149d80dA1E6934E354124CfE3",
			SwapAssets: map[string]string{
				"WETH": "0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14",
			},
		},
		{
			Key:                 "base-sepolia",
			ChainFamily:         FamilyEVM,
			Testnet:             true,
			StableTokenID:       "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
			StableTokenAddress:  "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
			StableTokenDecimals: 6,
			BridgeDomain:        6,
			TokenMessenger:      testnetTokenMessenger,
			MessageTransmitter:  testnetMessageTransmitter,
			RouterAddress:       "0x1689E7B1F10000AE47eBfE339a4f69dECd19F602",
			SwapAssets: map[string]string{
				"WETH": "0x4200000000000000000000000000000000000006",
			},
		},
		{
			Key:                 "arbitrum-sepolia",
			ChainFamily:         FamilyEVM,
			Testnet:             true,
			StableTokenID:       "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
			StableTokenAddress:  "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
			StableTokenDecimals: 6,
			BridgeDomain:        3,
			TokenMessenger:      testnetTokenMessenger,
			MessageTransmitter:  testnetMessageTransmitter,
		},
		{
			Key:                 "solana-devnet",
			ChainFamily:         FamilySolana,
			Testnet:             true,
			StableTokenID:       "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU",
			StableTokenAddress:  "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU",
			StableTokenDecimals: 6,
			BridgeDomain:        5,
		},
	}

	networks := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		networks[d.Key] = d
	}
	return networks
}

// NewRegistry creates a registry with the built-in descriptors and the
// given key selected. Falls back to ethereum-sepolia if the key is
// empty or unknown.
func NewRegistry(defaultKey string) *Registry {
	r := &Registry{networks: builtinNetworks()}
	if _, ok := r.networks[defaultKey]; !ok {
		defaultKey = "ethereum-sepolia"
	}
	r.current = defaultKey
	return r
}

// Get returns the descriptor for a key
func (r *Registry) Get(key string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.networks[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Descriptor{}, &UnknownNetworkError{Key: key}
	}
	return d, nil
}

// Current returns the currently selected network descriptor
func (r *Registry) Current() Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.networks[r.current]
}

// Select changes the currently selected network
func (r *Registry) Select(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.networks[key]; !ok {
		return &UnknownNetworkError{Key: key}
	}
	r.current = key
	return nil
}

// Register adds or replaces a descriptor (used for config overrides)
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.networks[d.Key] = d
}

// Keys returns all registered network keys, sorted
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.networks))
	for key := range r.networks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
