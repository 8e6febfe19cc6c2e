package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <url>",
	Short: "Set the node RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.RPCURL = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC endpoint set to " + args[0]))
		return nil
	},
}

var configSetNetworkCmd = &cobra.Command{
	Use:   "set-network <chain-id> <name>",
	Short: "Set the supported network id and display name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id %q: %w", args[0], err)
		}
		cfg.ChainID = id
		cfg.NetworkName = args[1]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Supported network set to %s (chain id %d)", args[1], id)))
		return nil
	},
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token <address>",
	Short: "Set the token contract used for balance display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.TokenContract = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Token contract set to " + ui.Addr(args[0])))
		return nil
	},
}

var configSetAssetCmd = &cobra.Command{
	Use:   "set-asset <address>",
	Short: "Set the asset collection contract for enumeration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.AssetContract = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Asset contract set to " + ui.Addr(args[0])))
		return nil
	},
}

var configSetFraudAPICmd = &cobra.Command{
	Use:   "set-fraud-api <url>",
	Short: "Set the fraud scoring service endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.FraudAPIURL = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Fraud API set to " + args[0]))
		return nil
	},
}

var configSetMinDeployCmd = &cobra.Command{
	Use:   "set-min-deploy <eth>",
	Short: "Set the minimum balance required before deploying",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.MinDeployETH = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Minimum deploy balance set to " + args[0] + " ETH"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(
		configListCmd,
		configSetRPCCmd,
		configSetNetworkCmd,
		configSetTokenCmd,
		configSetAssetCmd,
		configSetFraudAPICmd,
		configSetMinDeployCmd,
	)
}
