package sync

import (
	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/contract"
	"github.com/0xkaran/chainsentry/internal/wallet"
)

// Network identifies the connected chain.
type Network struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WalletState is the synchronized view of wallet identity, network, token
// balance, and owned assets. The zero value is the empty (disconnected)
// state. Signer and Address are always both set or both empty: an account
// with no registered key carries a watch-only signer that refuses SignTx.
type WalletState struct {
	Provider chain.Provider        `json:"-"`
	Signer   *wallet.Signer        `json:"-"`
	Address  string                `json:"address,omitempty"` // checksummed
	Network  Network               `json:"network"`
	Balance  string                `json:"balance,omitempty"` // formatted token units
	Assets   []contract.OwnedAsset `json:"assets,omitempty"`
}

// Connected reports whether a wallet identity is populated.
func (s WalletState) Connected() bool {
	return s.Address != ""
}
