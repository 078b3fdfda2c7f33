package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stable-wallet/config"
	"stable-wallet/pkg/gate"
	"stable-wallet/pkg/parser"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversational session",
	Long: `Start an interactive session that understands freeform commands.
Sensitive actions (send, bridge, swap) are held until you reply
CONFIRM/CONFIRMAR, and expire after the confirmation window.

Examples of what you can type:
  send 10.5 to 0x1234...abcd
  bridge 25 to 0x1234...abcd on base-sepolia
  swap 100 for 0.05 WETH
  balance
  exit`,
	Args: cobra.NoArgs,
	Run:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) {
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

	notify := func(_, message string) {
		color.Yellow("\n%s", message)
		fmt.Print("> ")
	}
	eng.Report = func(_, message string) {
		color.Green("%s", message)
	}
	eng.Progress = func(stage string) {
		fmt.Printf("[Chat] %s...\n", stage)
	}

	g := gate.New(eng, notify, cfg.ConfirmWindow, cfg.SweepInterval)
	if err := g.Start(); err != nil {
		printError(err)
		os.Exit(1)
	}
	defer g.Stop()

	ctx := context.Background()

	fmt.Printf("\nConnected to %s as %s. Type a command, or 'exit' to quit.\n\n", color.CyanString(desc.Key), userID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			break
		}

		// Confirmation keywords take priority while a ticket is pending
		outcome, err := g.Resolve(ctx, userID, line)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		switch outcome {
		case gate.OutcomeConfirmed:
			continue
		case gate.OutcomeCancelled:
			fmt.Println("Cancelled.")
			continue
		case gate.OutcomeExpired, gate.OutcomeNoTicket:
			if outcome == gate.OutcomeExpired {
				color.Yellow("The confirmation window passed; nothing was executed. Send the command again.")
			} else {
				color.Yellow("There is no pending action to confirm or cancel.")
			}
			continue
		}

		intent, err := parser.ParseCommand(line)
		if err != nil {
			color.Red("%v", err)
			continue
		}
		intent.NetworkKey = desc.Key

		if err := v.Validate(*intent, desc); err != nil {
			color.Red("%v", err)
			continue
		}

		if intent.IsSensitive() {
			prompt, replaced := g.Request(userID, *intent, desc.Key)
			if replaced {
				color.Yellow("Your earlier pending action was replaced by this one.")
			}
			fmt.Println(prompt)
			continue
		}

		result, err := eng.Execute(ctx, userID, *intent)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		fmt.Println(result.Message)
	}

	fmt.Println("\nGoodbye.")
}
