package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stable-wallet/config"
	"stable-wallet/pkg/parser"
	"stable-wallet/pkg/types"
)

var sendCmd = &cobra.Command{
	Use:   "send <amount> to <address>",
	Short: "Send stable-asset funds on the current network",
	Long: `Send funds to an address on the same network.

Examples:
  stable-wallet send 10.5 to 0x1234...abcd
  stable-wallet send 25 to 0x1234...abcd --network base-sepolia`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) {
	commandStr := "send " + strings.Join(args, " ")
	intent, err := parser.ParseCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	runIntent(cmd, *intent)
}

// runIntent validates and executes a parsed intent with interactive
// confirmation for sensitive actions. Shared by send, bridge, and swap.
func runIntent(cmd *cobra.Command, intent types.Intent) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	userID, _ := cmd.Flags().GetString("user")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	eng, registry, v, err := buildEngine(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	desc, err := sessionNetwork(cmd, registry)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	intent.NetworkKey = desc.Key

	if err := v.Validate(intent, desc); err != nil {
		printError(err)
		os.Exit(1)
	}

	// Flag-driven invocations confirm inline; the chat command routes
	// sensitive intents through the time-boxed gate instead.
	if intent.IsSensitive() && !jsonOutput {
		if !confirmAction(intent) {
			fmt.Println("\nCancelled.")
			os.Exit(0)
		}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Executing..."
		s.Start()
		eng.Progress = func(stage string) {
			s.Suffix = " " + stage + "..."
		}
	}

	outcome, err := eng.Execute(context.Background(), userID, intent)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		if outcome != nil {
			// Partial progress is still worth showing: earlier phases
			// had irreversible on-chain effects
			color.Yellow("\n%s", outcome.Message)
		}
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(outcome, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		color.Green("\n✓ %s\n", outcome.Message)
	}
}

func confirmAction(intent types.Intent) bool {
	var summary string
	switch intent.Kind {
	case types.IntentSimpleTransfer:
		summary = fmt.Sprintf("Send %s to %s on %s", intent.Amount, intent.DestAddress, intent.NetworkKey)
	case types.IntentCrossChainTransfer:
		summary = fmt.Sprintf("Bridge %s from %s to %s on %s", intent.Amount, intent.NetworkKey, intent.DestAddress, intent.DestNetworkKey)
	case types.IntentSwap:
		summary = fmt.Sprintf("Swap up to %s for exactly %s %s on %s", intent.MaxInput, intent.ExactOutput, intent.OutputAsset, intent.NetworkKey)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Yellow("  %s", summary)
	fmt.Println(strings.Repeat("=", 60))

	return promptYesNo("\nProceed? (y/N): ")
}

func promptYesNo(prompt string) bool {
	fmt.Print(prompt)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
