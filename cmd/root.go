package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/config"
	"github.com/0xkaran/chainsentry/internal/fraud"
	"github.com/0xkaran/chainsentry/internal/ledger"
	chainsync "github.com/0xkaran/chainsentry/internal/sync"
	"github.com/0xkaran/chainsentry/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/0xkaran/chainsentry/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "chainsentry",
	Short: "Wallet sync, token deployment and fraud monitoring for a local EVM network",
	Long: `chainsentry — keep a wallet session in sync with a development EVM node.

  Connect a wallet, watch balances and owned assets, deploy and interact
  with token contracts, track every transaction in a local ledger, and
  score transfers against a fraud-detection service.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// CHAINSENTRY_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("CHAINSENTRY_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.chainsentry)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		initCmd,
		configCmd,
		walletCmd,
		statusCmd,
		sendCmd,
		deployCmd,
		recordsCmd,
		txsCmd,
		fraudCmd,
		watchCmd,
	)
}

// --- shared constructors ---

func newWalletManager() *wallet.Manager {
	store := wallet.NewJSONStore(cfg.WalletsPath())
	return wallet.NewManager(wallet.WithStore(store), wallet.WithKeystore(wallet.DefaultKeystore()))
}

func newProvider() *chain.EVMClient {
	return chain.NewEVMClient(cfg.RPCURL)
}

func newLedger() *ledger.Ledger {
	return ledger.New(ledger.NewJSONStore(cfg.LedgerPath()))
}

func newFraudClient() *fraud.Client {
	return fraud.NewClient(cfg.FraudAPIURL)
}

func newSynchronizer(provider chain.Provider) *chainsync.Synchronizer {
	mgr := newWalletManager()
	ks := wallet.DefaultKeystore()
	return chainsync.New(chainsync.Params{
		Provider: provider,
		SignerFor: func(address string) (*wallet.Signer, error) {
			w, err := mgr.ByAddress(address)
			if err != nil {
				// An account the node exposes but we hold no key for still
				// gets a session; its signer refuses to sign.
				w = &wallet.Wallet{Name: "external", Address: address, Type: wallet.TypeWatchOnly}
			}
			return wallet.NewSigner(w, ks), nil
		},
		TokenContract: cfg.TokenContract,
		AssetContract: cfg.AssetContract,
		ChainID:       cfg.ChainID,
		NetworkName:   cfg.NetworkName,
		Logf:          logVerbose,
	})
}

// logVerbose prints only when --verbose is set.
func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
