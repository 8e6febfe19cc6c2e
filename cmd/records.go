package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/deploy"
	"github.com/0xkaran/chainsentry/internal/ui"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List deployment records",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := deploy.NewRecordStore(cfg.RecordsDir())
		records, err := store.List()
		if err != nil {
			return fmt.Errorf("listing deployment records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println(ui.Meta("No deployments recorded yet."))
			fmt.Println(ui.Hint("Deploy a token with: chainsentry deploy --name MyToken --symbol MTK"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Network", Width: 12},
			{Title: "Deployed", Width: 20},
		})
		for _, rec := range records {
			t.AddRow(ui.Row{
				ui.Val(rec.Contract.Name),
				ui.Addr(rec.Contract.Address),
				ui.Meta(rec.Network.Name),
				ui.Meta(rec.Contract.DeployedAt.Format("2006-01-02 15:04:05")),
			})
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Deployment Records"))
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d record(s) in %s", len(records), cfg.RecordsDir())))
		return nil
	},
}
