package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stable-wallet/config"
	"stable-wallet/pkg/types"
	"stable-wallet/pkg/wallet"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <transaction-id>",
	Short: "Check the status of a submitted transaction",
	Long: `Check the provider-reported state of a submitted transaction.

Examples:
  stable-wallet status 018e6f2b-...
  stable-wallet status 018e6f2b-... --watch
  stable-wallet status 018e6f2b-... --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates until terminal")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	txID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client := wallet.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey)

	if watchStatus {
		watchTransaction(client, txID, jsonOutput)
	} else {
		checkTransaction(client, txID, jsonOutput)
	}
}

func checkTransaction(client *wallet.Client, txID string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transaction status..."
		s.Start()
	}

	record, err := client.GetStatus(context.Background(), txID)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(record, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayRecord(record)
	}
}

func watchTransaction(client *wallet.Client, txID string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching transaction %s\n", color.CyanString(txID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	for {
		record, err := client.GetStatus(context.Background(), txID)
		if err != nil {
			color.Red("Error: %v", err)
		} else {
			displayRecord(record)
			if record.State.IsTerminal() {
				return
			}
		}
		<-ticker.C
	}
}

func displayRecord(record types.TransactionRecord) {
	fmt.Printf("\n  Transaction: %s\n", color.CyanString(record.ID))
	fmt.Printf("  State:       %s\n", coloredState(record.State))
	if record.TxHash != "" {
		fmt.Printf("  Tx Hash:     %s\n", color.HiBlackString(record.TxHash))
	}
	fmt.Println()
}

func coloredState(state types.TxState) string {
	switch state {
	case types.TxConfirmed:
		return color.GreenString(string(state))
	case types.TxSubmitted:
		return color.YellowString(string(state))
	case types.TxFailed:
		return color.RedString(string(state))
	default:
		return string(state)
	}
}
