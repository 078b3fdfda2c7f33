package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stable-wallet/pkg/parser"
)

var (
	slippageBps     int
	deadlineMinutes int
)

var swapCmd = &cobra.Command{
	Use:   "swap <max-input> for <amount> <asset>",
	Short: "Swap stable-asset funds for another asset",
	Long: `Swap for an exact amount of an output asset, spending at most the
given input. The output asset must be on the network's allow-list.

Examples:
  stable-wallet swap 100 for 0.05 WETH
  stable-wallet swap 100 for 0.05 WETH --slippage-bps 50
  stable-wallet swap 250 for 0.1 WETH --network ethereum --deadline-minutes 5`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().IntVar(&slippageBps, "slippage-bps", parser.DefaultSlippageBps, "Slippage tolerance in basis points")
	swapCmd.Flags().IntVar(&deadlineMinutes, "deadline-minutes", parser.DefaultDeadlineMinutes, "Swap deadline window in minutes")
}

func runSwap(cmd *cobra.Command, args []string) {
	commandStr := "swap " + strings.Join(args, " ")
	intent, err := parser.ParseCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	intent.SlippageBps = slippageBps
	intent.DeadlineMinutes = deadlineMinutes

	runIntent(cmd, *intent)
}
