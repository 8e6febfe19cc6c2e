package cmd

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/ledger"
	chainsync "github.com/0xkaran/chainsentry/internal/sync"
	"github.com/0xkaran/chainsentry/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live wallet session view",
	Long: `Open a live terminal view of the wallet session: current address,
network, balance and owned assets on top, the transaction ledger below.
Account and network switches on the node are picked up automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := newProvider()
		syncer := newSynchronizer(provider)
		book := newLedger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := tea.NewProgram(ui.SessionModel{}, tea.WithAltScreen())

		// Ledger changes stream straight into the view.
		unsub := book.Subscribe(func(txs []ledger.Transaction) {
			for i := len(txs) - 1; i >= 0; i-- {
				p.Send(sessionTx(txs[i]))
			}
		})
		defer unsub()

		go func() {
			if state, err := syncer.Connect(ctx); err != nil {
				p.Send(ui.SessionStateMsg{ErrMsg: err.Error()})
			} else {
				p.Send(sessionState(state))
			}

			// Seed the stream with the existing ledger.
			if txs, err := book.List(); err == nil {
				for i := len(txs) - 1; i >= 0; i-- {
					p.Send(sessionTx(txs[i]))
				}
			}

			// Provider events drive the synchronizer; each event is
			// followed by a fresh state push.
			watcher := chain.NewWatcher(provider, &watchRelay{syncer: syncer, send: p.Send}, time.Duration(cfg.WatchInterval)*time.Second)
			go watcher.Start(ctx)

			// Periodic refresh keeps balance and assets current between
			// provider events.
			ticker := time.NewTicker(time.Duration(cfg.WatchInterval) * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if state, err := syncer.Refresh(ctx); err == nil {
						p.Send(sessionState(state))
					}
				}
			}
		}()

		_, err := p.Run()
		return err
	},
}

// watchRelay forwards provider events to the synchronizer and pushes the
// resulting state into the TUI.
type watchRelay struct {
	syncer *chainsync.Synchronizer
	send   func(tea.Msg)
}

func (r *watchRelay) AccountsChanged(accounts []string) {
	r.syncer.AccountsChanged(accounts)
	r.send(sessionState(r.syncer.State()))
}

func (r *watchRelay) ChainChanged(chainID int64) {
	r.syncer.ChainChanged(chainID)
	r.send(sessionState(r.syncer.State()))
}

func sessionState(s chainsync.WalletState) ui.SessionStateMsg {
	return ui.SessionStateMsg{
		Connected: s.Connected(),
		Address:   s.Address,
		Network:   s.Network.Name,
		Balance:   s.Balance,
		Symbol:    "tokens",
		NumAssets: len(s.Assets),
	}
}

func sessionTx(tx ledger.Transaction) ui.SessionTxMsg {
	return ui.SessionTxMsg{
		Hash:     tx.Hash,
		To:       tx.To,
		Amount:   tx.Amount,
		Status:   string(tx.Status),
		Protocol: tx.Protocol,
		Time:     tx.Timestamp,
	}
}
