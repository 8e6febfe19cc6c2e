package chain

import (
	"context"
	"time"
)

// EventHandler receives provider-level change notifications.
type EventHandler interface {
	AccountsChanged(accounts []string)
	ChainChanged(chainID int64)
}

// Watcher polls the provider for account-list and chain-id changes and
// notifies a handler, standing in for the event subscription a browser
// wallet provider would push. The subscription is scoped: it starts with
// Start and is released when ctx is cancelled.
type Watcher struct {
	provider Provider
	handler  EventHandler
	interval time.Duration

	primed       bool
	lastAccounts []string
	lastChain    int64
}

// NewWatcher creates a watcher polling provider every interval.
func NewWatcher(provider Provider, handler EventHandler, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		provider: provider,
		handler:  handler,
		interval: interval,
	}
}

// Start polls until ctx is cancelled. The first poll primes the baseline
// without emitting events; later polls emit only on actual change.
func (w *Watcher) Start(ctx context.Context) {
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll performs a single comparison cycle. Provider errors are skipped: a
// transient RPC failure must not be reported as a wallet change.
func (w *Watcher) Poll(ctx context.Context) {
	accounts, accErr := w.provider.Accounts(ctx)
	chainID, chainErr := w.provider.ChainID(ctx)
	if accErr != nil || chainErr != nil {
		return
	}

	if !w.primed {
		w.primed = true
		w.lastAccounts = accounts
		w.lastChain = chainID
		return
	}

	if chainID != w.lastChain {
		w.lastChain = chainID
		w.lastAccounts = accounts
		w.handler.ChainChanged(chainID)
		return
	}

	if !sameAccounts(accounts, w.lastAccounts) {
		w.lastAccounts = accounts
		w.handler.AccountsChanged(accounts)
	}
}

func sameAccounts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
