package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration",
	Long:  "Create the config directory and write a default config.json pointed at a local development node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Banner())

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"Config dir", cfg.Dir()},
			{"RPC URL", cfg.RPCURL},
			{"Chain ID", fmt.Sprintf("%d", cfg.ChainID)},
			{"Network", cfg.NetworkName},
			{"Fraud API", cfg.FraudAPIURL},
		}))
		fmt.Println(ui.Success("chainsentry configured."))
		fmt.Println(ui.Hint("Add a signing wallet with: chainsentry wallet add myWallet --key <private-key>"))
		return nil
	},
}
