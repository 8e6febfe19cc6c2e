package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/ledger"
	"github.com/0xkaran/chainsentry/internal/ui"
)

var txsCmd = &cobra.Command{
	Use:   "txs",
	Short: "Show the transaction ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		book := newLedger()
		txs, err := book.List()
		if err != nil {
			return fmt.Errorf("reading ledger: %w", err)
		}

		if len(txs) == 0 {
			fmt.Println(ui.Meta("The ledger is empty."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Hash", Width: 14},
			{Title: "To", Width: 14},
			{Title: "Amount", Width: 14},
			{Title: "Status", Width: 11},
			{Title: "Protocol", Width: 10},
			{Title: "Time", Width: 20},
		})
		for _, tx := range txs {
			t.AddRow(ui.Row{
				ui.TruncateAddr(tx.Hash),
				ui.TruncateAddr(tx.To),
				tx.Amount,
				statusLabel(tx.Status),
				tx.Protocol,
				tx.Timestamp.Format("2006-01-02 15:04:05"),
			})
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Transaction Ledger"))
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d transaction(s), newest first", len(txs))))
		return nil
	},
}

var txsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every ledger entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ConfirmDanger("Clear the entire transaction ledger?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		book := newLedger()
		if err := book.Clear(); err != nil {
			return fmt.Errorf("clearing ledger: %w", err)
		}
		fmt.Println(ui.Success("Ledger cleared."))
		return nil
	},
}

func statusLabel(s ledger.Status) string {
	switch s {
	case ledger.StatusCompleted:
		return ui.StyleSuccess.Render(string(s))
	case ledger.StatusFailed:
		return ui.StyleError.Render(string(s))
	default:
		return ui.StyleWarning.Render(string(s))
	}
}

func init() {
	txsCmd.AddCommand(txsClearCmd)
}
