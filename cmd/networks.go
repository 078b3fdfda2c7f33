package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stable-wallet/config"
	"stable-wallet/pkg/network"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks",
	Long: `List the supported networks with their chain family, bridge support,
and swap asset allow-list.

Examples:
  stable-wallet networks
  stable-wallet networks --json`,
	Args: cobra.NoArgs,
	Run:  runNetworks,
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

func runNetworks(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := config.Get()
	registry := network.NewRegistry(cfg.DefaultNetwork)
	current := registry.Current()

	if jsonOutput {
		descriptors := make([]network.Descriptor, 0)
		for _, key := range registry.Keys() {
			d, _ := registry.Get(key)
			descriptors = append(descriptors, d)
		}
		jsonData, _ := json.MarshalIndent(descriptors, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                       SUPPORTED NETWORKS")
	fmt.Println(strings.Repeat("=", 70))

	for _, key := range registry.Keys() {
		d, _ := registry.Get(key)

		marker := "  "
		if d.Key == current.Key {
			marker = color.GreenString("* ")
		}

		fmt.Printf("\n%s%s (%s)\n", marker, color.CyanString(d.Key), d.ChainFamily)
		if d.Testnet {
			fmt.Printf("    Testnet:     yes\n")
		}
		fmt.Printf("    Bridge:      %v\n", d.SupportsBridge())
		if len(d.SwapAssets) > 0 {
			fmt.Printf("    Swap assets: %s\n", strings.Join(d.SwapAssetSymbols(), ", "))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("* = current default. Override per command with --network.\n\n")
}
