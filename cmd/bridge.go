package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stable-wallet/pkg/parser"
)

var toNetwork string

var bridgeCmd = &cobra.Command{
	Use:   "bridge <amount> to <address>",
	Short: "Move stable-asset funds to another chain",
	Long: `Move funds to an address on another chain using the burn-and-mint
bridge: the asset is burned on the source chain, an attestor signs
proof of the burn, and the equivalent is minted on the destination.

A wallet must already exist on the destination network (run
'stable-wallet balance --network <dest>' once to create it).

Examples:
  stable-wallet bridge 25 to 0x1234...abcd --to-network base-sepolia
  stable-wallet bridge 10 to 0x1234...abcd on base-sepolia`,
	Args: cobra.MinimumNArgs(1),
	Run:  runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().StringVar(&toNetwork, "to-network", "", "Destination network key")
}

func runBridge(cmd *cobra.Command, args []string) {
	commandStr := "bridge " + strings.Join(args, " ")
	if toNetwork != "" && !strings.Contains(strings.ToUpper(commandStr), " ON ") {
		commandStr += " on " + toNetwork
	}

	intent, err := parser.ParseCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	runIntent(cmd, *intent)
}
