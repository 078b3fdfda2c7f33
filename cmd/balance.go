package cmd

import (
	"github.com/spf13/cobra"

	"stable-wallet/pkg/types"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the stable-asset balance on the current network",
	Long: `Show the wallet balance on the current network. Creates the wallet on
first use.

Examples:
  stable-wallet balance
  stable-wallet balance --network base-sepolia`,
	Args: cobra.NoArgs,
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	runIntent(cmd, types.Intent{
		Kind:       types.IntentQuery,
		Confidence: 1.0,
		RawText:    "balance",
	})
}
