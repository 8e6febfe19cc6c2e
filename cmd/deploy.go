package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/config"
	"github.com/0xkaran/chainsentry/internal/contract"
	"github.com/0xkaran/chainsentry/internal/deploy"
	"github.com/0xkaran/chainsentry/internal/ui"
	"github.com/0xkaran/chainsentry/internal/wallet"
)

var (
	deployName     string
	deploySymbol   string
	deployDecimals uint8
	deploySupply   string
	deployWallet   string
	deployArtifact string
	deployYes      bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a token contract",
	Long: `Deploy a token contract to the configured development network.

The contract bytecode comes from a compiler artifact (Hardhat or Foundry
JSON, or a raw bytecode hex file). The deployment runs through a fixed
pipeline: precondition check (network id and deployer balance), broadcast,
confirmation wait, metadata read-back, and a deployment record written to
disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deployName == "" || deploySymbol == "" {
			return fmt.Errorf("--name and --symbol are required")
		}
		if deployArtifact == "" {
			return fmt.Errorf("--artifact is required (compiler output with the creation bytecode)")
		}
		bytecode, err := contract.LoadDeployArtifact(deployArtifact)
		if err != nil {
			return err
		}
		supply, ok := new(big.Int).SetString(deploySupply, 10)
		if !ok || supply.Sign() < 0 {
			return fmt.Errorf("invalid supply %q", deploySupply)
		}

		walletName := deployWallet
		if walletName == "" {
			walletName = cfg.DefaultWallet
		}
		mgr := newWalletManager()
		w, err := mgr.Get(walletName)
		if err != nil {
			return fmt.Errorf("wallet %q not found", walletName)
		}
		if w.Type != wallet.TypeSigning {
			return fmt.Errorf("wallet %q is watch-only — deployment requires a signing wallet", walletName)
		}

		minWei, err := chain.EtherToWei(cfg.MinDeployETH)
		if err != nil {
			return fmt.Errorf("invalid min_deploy_balance %q in config: %w", cfg.MinDeployETH, err)
		}

		fmt.Println(ui.KeyValueBlock("Deployment Preview", [][2]string{
			{"Token", fmt.Sprintf("%s (%s)", deployName, deploySymbol)},
			{"Decimals", fmt.Sprintf("%d", deployDecimals)},
			{"Supply", deploySupply},
			{"Artifact", fmt.Sprintf("%s (%d bytes)", deployArtifact, len(bytecode))},
			{"Deployer", ui.Addr(w.Address)},
			{"Network", fmt.Sprintf("%s (chain id %d)", cfg.NetworkName, cfg.ChainID)},
		}))
		if !deployYes && !ui.Confirm("Deploy this contract?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		orch := deploy.NewOrchestrator(
			newProvider(),
			wallet.NewSigner(w, wallet.DefaultKeystore()),
			deploy.NewRecordStore(cfg.RecordsDir()),
			cfg.NetworkName,
			minWei,
			logVerbose,
		)

		ctx, cancel := context.WithTimeout(context.Background(), config.TxDeployTimeout)
		defer cancel()

		spin := ui.NewSpinner("Deploying contract...")
		spin.Start()
		result := orch.Deploy(ctx, deploy.Request{
			TokenName:     deployName,
			TokenSymbol:   deploySymbol,
			Decimals:      deployDecimals,
			InitialSupply: supply,
			Bytecode:      bytecode,
		})
		spin.Stop()

		if result.State == deploy.StateFailed {
			printDeployFailure(result)
			return result.Err
		}

		pairs := [][2]string{
			{"Contract", ui.Addr(result.ContractAddress)},
			{"Tx Hash", ui.Addr(result.TxHash)},
			{"Record", result.RecordPath},
		}
		for k, v := range result.Record.Details {
			pairs = append(pairs, [2]string{"  " + k, v})
		}
		fmt.Println(ui.KeyValueBlock("Deployment Complete", pairs))
		fmt.Println(ui.Success("Contract deployed."))
		fmt.Println(ui.Hint("Use it for transfers with: chainsentry config set-token " + result.ContractAddress))
		return nil
	},
}

// printDeployFailure renders a classified failure with next steps.
func printDeployFailure(r *deploy.Result) {
	fmt.Println(ui.Err(fmt.Sprintf("Deployment failed during %s: %v", r.FailedAt, r.Err)))

	switch r.Reason {
	case deploy.ReasonInsufficientFunds:
		fmt.Println(ui.Hint("Fund the deployer account and retry."))
	case deploy.ReasonNetworkMisconfig:
		fmt.Println(ui.Hint("Check that the node is running and on the expected dev network."))
	case deploy.ReasonReadbackFailure:
		fmt.Println(ui.Hint("The contract at " + r.ContractAddress + " did not answer metadata reads; no record was written."))
	case deploy.ReasonPersistenceFailure:
		// The contract is live even though the record write failed.
		fmt.Println(ui.Warn("Contract IS deployed at " + r.ContractAddress + " — the record could not be written."))
		fmt.Println(ui.Hint("Note the address above; it is not recoverable from disk."))
	}
}

func init() {
	deployCmd.Flags().StringVar(&deployName, "name", "", "token name (required)")
	deployCmd.Flags().StringVar(&deploySymbol, "symbol", "", "token symbol (required)")
	deployCmd.Flags().Uint8Var(&deployDecimals, "decimals", 18, "token decimals")
	deployCmd.Flags().StringVar(&deploySupply, "supply", "1000000", "initial supply in whole tokens")
	deployCmd.Flags().StringVar(&deployWallet, "wallet", "", "deployer wallet name (default: config)")
	deployCmd.Flags().StringVar(&deployArtifact, "artifact", "", "compiler artifact with the creation bytecode (required)")
	deployCmd.Flags().BoolVarP(&deployYes, "yes", "y", false, "skip the confirmation prompt")
}
