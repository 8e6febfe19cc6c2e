package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/config"
	"github.com/0xkaran/chainsentry/internal/contract"
	"github.com/0xkaran/chainsentry/internal/ledger"
	"github.com/0xkaran/chainsentry/internal/ui"
	"github.com/0xkaran/chainsentry/internal/wallet"
)

var (
	sendTo     string
	sendAmount string
	sendWallet string
	sendYes    bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send tokens and record the transfer in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendTo == "" {
			return fmt.Errorf("--to is required")
		}
		if sendAmount == "" {
			return fmt.Errorf("--amount is required")
		}
		if cfg.TokenContract == "" {
			return fmt.Errorf("no token contract configured\n  Set one with: chainsentry config set-token <address>")
		}

		walletName := sendWallet
		if walletName == "" {
			walletName = cfg.DefaultWallet
		}
		mgr := newWalletManager()
		w, err := mgr.Get(walletName)
		if err != nil {
			return fmt.Errorf("wallet %q not found", walletName)
		}
		if w.Type != wallet.TypeSigning {
			return fmt.Errorf("wallet %q is watch-only — add it with --key to sign transactions", walletName)
		}

		client := newProvider()
		ctx, cancel := context.WithTimeout(context.Background(), config.TxConfirmTimeout)
		defer cancel()

		chainID, err := client.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("resolving chain id: %w", err)
		}
		if chainID != cfg.ChainID {
			return fmt.Errorf("node is on chain id %d, config expects %d", chainID, cfg.ChainID)
		}

		token := contract.NewTokenCaller(client, cfg.TokenContract)
		decimals, err := token.Decimals(ctx)
		if err != nil {
			return fmt.Errorf("reading token decimals: %w", err)
		}
		rawAmount, err := contractAmount(sendAmount, decimals)
		if err != nil {
			return err
		}

		calldata := contract.TransferCalldata(sendTo, rawAmount)

		gasPrice, err := client.GasPrice(ctx)
		if err != nil {
			return err
		}
		gasLimit, err := client.EstimateGas(ctx, w.Address, cfg.TokenContract, calldata, nil)
		if err != nil {
			gasLimit = config.GasLimitTokenTransfer
		}
		nonce, err := client.GetNonce(ctx, w.Address)
		if err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("Transfer Preview", [][2]string{
			{"From", ui.Addr(w.Address)},
			{"To", ui.Addr(sendTo)},
			{"Amount", sendAmount},
			{"Token", ui.Addr(cfg.TokenContract)},
			{"Gas Limit", fmt.Sprintf("%d", gasLimit)},
			{"Network", cfg.NetworkName},
		}))

		if !sendYes && !ui.Confirm("Broadcast this transfer?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		toAddr := common.HexToAddress(cfg.TokenContract)
		tx := types.NewTx(&types.DynamicFeeTx{
			ChainID:   big.NewInt(chainID),
			Nonce:     nonce,
			GasTipCap: gasPrice,
			GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
			Gas:       gasLimit,
			To:        &toAddr,
			Value:     big.NewInt(0),
			Data:      mustDecodeHex(calldata),
		})

		signer := wallet.NewSigner(w, wallet.DefaultKeystore())
		raw, err := signer.SignTx(tx, big.NewInt(chainID))
		if err != nil {
			return err
		}

		spin := ui.NewSpinner("Broadcasting transfer...")
		spin.Start()
		hash, err := client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
		spin.Stop()
		if err != nil {
			return err
		}

		// Ledger entry goes in as Pending the moment the hash exists, so a
		// crash mid-wait still leaves a trace of the transfer.
		book := newLedger()
		entry := ledger.Transaction{
			Hash:      hash,
			From:      w.Address,
			To:        sendTo,
			Amount:    sendAmount,
			Status:    ledger.StatusPending,
			Protocol:  "token",
			Timestamp: time.Now().UTC(),
		}
		if err := book.Add(entry); err != nil {
			fmt.Println(ui.Warn("Could not record transfer in ledger: " + err.Error()))
		}
		fmt.Println(ui.Success("Transfer broadcast: " + ui.Addr(hash)))

		spin = ui.NewSpinner("Awaiting confirmation...")
		spin.Start()
		receipt, err := client.WaitForReceipt(ctx, hash)
		spin.Stop()

		status := ledger.StatusCompleted
		if err != nil {
			status = ledger.StatusFailed
		}
		if uerr := book.UpdateStatus(hash, status); uerr != nil {
			fmt.Println(ui.Warn("Could not update ledger: " + uerr.Error()))
		}
		if err != nil {
			return fmt.Errorf("transfer %s failed: %w", hash, err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Confirmed in block %d.", receipt.BlockNumber)))

		// Score the transfer. Scoring never blocks a confirmed transfer;
		// an unreachable service degrades to a neutral alert.
		entry.Status = status
		result := newFraudClient().Score(ctx, entry)
		printAlert(result.Alert, result.Fallback)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "token amount to send (required)")
	sendCmd.Flags().StringVar(&sendWallet, "wallet", "", "wallet name (default: config)")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "skip the confirmation prompt")
}

// contractAmount parses a human token amount into raw units.
func contractAmount(amount string, decimals int) (*big.Int, error) {
	raw, err := chain.ParseUnits(amount, decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return raw, nil
}

func mustDecodeHex(s string) []byte {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return b
}
