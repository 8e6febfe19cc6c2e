package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/fraud"
	"github.com/0xkaran/chainsentry/internal/ui"
)

var fraudCmd = &cobra.Command{
	Use:   "fraud",
	Short: "Score ledger transactions against the fraud service",
}

var fraudScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Batch-score every ledger transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		book := newLedger()
		txs, err := book.List()
		if err != nil {
			return fmt.Errorf("reading ledger: %w", err)
		}
		if len(txs) == 0 {
			fmt.Println(ui.Meta("The ledger is empty — nothing to score."))
			return nil
		}

		spin := ui.NewSpinner(fmt.Sprintf("Scoring %d transaction(s)...", len(txs)))
		spin.Start()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		alerts, fallback := newFraudClient().ScoreBatch(ctx, txs)
		spin.Stop()

		if fallback {
			fmt.Println(ui.Warn("Fraud service unreachable — showing example alerts."))
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Hash", Width: 14},
			{Title: "Severity", Width: 10},
			{Title: "Probability", Width: 12},
			{Title: "Reason", Width: 30},
		})
		for _, a := range alerts {
			t.AddRow(ui.Row{
				ui.TruncateAddr(a.TxHash),
				severityLabel(a.Severity),
				fmt.Sprintf("%.2f", a.Probability),
				a.Reason,
			})
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Fraud Alerts"))
		fmt.Println(t.Render())
		return nil
	},
}

// printAlert renders one scoring result after a transfer.
func printAlert(a fraud.Alert, fallback bool) {
	if fallback {
		fmt.Println(ui.Warn("Fraud service unreachable — transfer not scored."))
		return
	}
	verdict := ui.StyleSuccess.Render("clean")
	if a.Fraud {
		verdict = ui.StyleError.Render("FLAGGED")
	}
	fmt.Printf("  %s  %s  %s  %s\n",
		ui.Meta("Fraud score:"),
		verdict,
		severityLabel(a.Severity),
		ui.Meta(fmt.Sprintf("p=%.2f", a.Probability)))
}

func severityLabel(s fraud.Severity) string {
	switch s {
	case fraud.SeverityHigh:
		return ui.StyleError.Render(string(s))
	case fraud.SeverityMedium:
		return ui.StyleWarning.Render(string(s))
	default:
		return ui.StyleSuccess.Render(string(s))
	}
}

func init() {
	fraudCmd.AddCommand(fraudScanCmd)
}
