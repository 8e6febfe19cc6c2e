package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/chain"
	chainsync "github.com/0xkaran/chainsentry/internal/sync"
	"github.com/0xkaran/chainsentry/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Connect the wallet and show the synced session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		var provider chain.Provider
		if cfg.RPCURL != "" {
			provider = newProvider()
		}
		syncer := newSynchronizer(provider)

		spin := ui.NewSpinner("Syncing wallet state...")
		spin.Start()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		state, err := syncer.Connect(ctx)
		spin.Stop()

		if err != nil {
			printConnectDiagnostic(err)
			return err
		}

		pairs := [][2]string{
			{"Address", ui.Addr(state.Address)},
			{"Network", fmt.Sprintf("%s (chain id %d)", ui.NetworkName(state.Network.Name), state.Network.ID)},
			{"Balance", ui.Val(state.Balance)},
			{"Signing", boolLabel(state.Signer != nil && state.Signer.CanSign())},
		}
		if cfg.AssetContract != "" {
			pairs = append(pairs, [2]string{"Assets", fmt.Sprintf("%d owned", len(state.Assets))})
		}
		fmt.Println(ui.KeyValueBlock("Wallet Session", pairs))

		for _, a := range state.Assets {
			line := "  #" + a.TokenID
			if a.URI != "" {
				line += "  " + ui.Meta(a.URI)
			}
			fmt.Println(line)
		}
		return nil
	},
}

// printConnectDiagnostic maps a connect failure to an actionable message.
func printConnectDiagnostic(err error) {
	switch {
	case errors.Is(err, chainsync.ErrNoProvider):
		fmt.Println(ui.Err("No node endpoint configured."))
		fmt.Println(ui.Hint("Set one with: chainsentry config set-rpc http://127.0.0.1:8545"))
	case errors.Is(err, chainsync.ErrWrongNetwork):
		fmt.Println(ui.Err(err.Error()))
		fmt.Println(ui.Hint(fmt.Sprintf("Point your node at the %s network (chain id %d) or update the config.", cfg.NetworkName, cfg.ChainID)))
	case errors.Is(err, chainsync.ErrNoAccounts):
		fmt.Println(ui.Err("The node exposes no accounts."))
		fmt.Println(ui.Hint("Unlock an account on the node or start it with prefunded dev accounts."))
	default:
		fmt.Println(ui.Err("Could not sync wallet state: " + err.Error()))
		fmt.Println(ui.Hint("Is the node running at " + cfg.RPCURL + "?"))
	}
}

func boolLabel(b bool) string {
	if b {
		return ui.StyleSuccess.Render("yes")
	}
	return ui.Meta("no (watch-only)")
}
