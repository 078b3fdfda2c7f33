package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stable-wallet/config"
	"stable-wallet/pkg/bridge"
	"stable-wallet/pkg/engine"
	"stable-wallet/pkg/network"
	"stable-wallet/pkg/swap"
	"stable-wallet/pkg/validator"
	"stable-wallet/pkg/wallet"
)

var rootCmd = &cobra.Command{
	Use:   "stable-wallet",
	Short: "A CLI for sending, bridging, and swapping stable assets through a programmable wallet",
	Long: `stable-wallet turns high-level commands (send funds, move funds to
another chain, swap for an asset) into orchestrated on-chain
transactions against a custodial programmable-wallet provider.

Examples:
  stable-wallet send 10.5 to 0x1234...
  stable-wallet bridge 25 to 0x1234... --to-network base-sepolia
  stable-wallet swap 100 for 0.05 WETH
  stable-wallet balance
  stable-wallet chat`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to operate on (overrides the configured default)")
	rootCmd.PersistentFlags().StringP("user", "u", "default", "User id owning the wallets")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

// buildEngine wires the orchestration engine from configuration
func buildEngine(cfg *config.Config) (*engine.Engine, *network.Registry, *validator.Validator, error) {
	registry := network.NewRegistry(cfg.DefaultNetwork)

	client := wallet.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey)
	poller := wallet.NewPoller(client)

	store, err := wallet.NewStore(cfg.WalletStorePath)
	if err != nil {
		return nil, nil, nil, err
	}

	attestor := bridge.NewAttestationClient(cfg.AttestationBaseURL)
	bridger := bridge.NewOrchestrator(client, poller, attestor)
	bridger.MaxFeeDivisor = cfg.MaxFeeDivisor
	swapper := swap.NewOrchestrator(client, poller)

	v, err := validator.New(registry, cfg.MaxTransactionAmount)
	if err != nil {
		return nil, nil, nil, err
	}

	return engine.New(client, poller, store, registry, bridger, swapper), registry, v, nil
}

// sessionNetwork applies the --network flag to the registry selection
// and returns the descriptor every command in this invocation targets.
func sessionNetwork(cmd *cobra.Command, registry *network.Registry) (network.Descriptor, error) {
	if key, _ := cmd.Flags().GetString("network"); key != "" {
		if err := registry.Select(key); err != nil {
			return network.Descriptor{}, err
		}
	}
	return registry.Current(), nil
}
