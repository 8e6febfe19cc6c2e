package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/0xkaran/chainsentry/internal/chain"
	"github.com/0xkaran/chainsentry/internal/contract"
	"github.com/0xkaran/chainsentry/internal/wallet"
)

// Errors recovered locally into a declined-connect state; they never carry
// partial WalletState with them.
var (
	ErrNoProvider   = errors.New("no wallet provider available")
	ErrWrongNetwork = errors.New("connected to an unsupported network")
	ErrNoAccounts   = errors.New("provider returned no accounts")
	ErrStale        = errors.New("fetch superseded by a newer wallet state")
)

// Params configures a Synchronizer.
type Params struct {
	Provider      chain.Provider // nil means no provider is available
	SignerFor     func(address string) (*wallet.Signer, error)
	TokenContract string // fungible token read for the balance
	AssetContract string // optional non-fungible collection for enumeration
	ChainID       int64  // the single supported network id
	NetworkName   string
	Reload        func() // invoked on chain-changed; nil = disconnect+reconnect
	Logf          func(format string, args ...interface{})
}

// Synchronizer exclusively owns the current WalletState and keeps it
// consistent across explicit calls and provider-emitted change events.
// Every asynchronous fetch is tagged with the generation current when it
// was issued; results arriving after the generation has advanced (a
// disconnect or a newer connect) are discarded instead of repopulating
// state that was reset in the meantime.
type Synchronizer struct {
	mu    gosync.Mutex
	gen   uint64
	state WalletState

	provider  chain.Provider
	signerFor func(address string) (*wallet.Signer, error)
	tokenAddr string
	assetAddr string
	chainID   int64
	netName   string
	reload    func()
	logf      func(format string, args ...interface{})
}

// New creates a Synchronizer with an empty WalletState.
func New(p Params) *Synchronizer {
	s := &Synchronizer{
		provider:  p.Provider,
		signerFor: p.SignerFor,
		tokenAddr: p.TokenContract,
		assetAddr: p.AssetContract,
		chainID:   p.ChainID,
		netName:   p.NetworkName,
		reload:    p.Reload,
		logf:      p.Logf,
	}
	if s.logf == nil {
		s.logf = func(string, ...interface{}) {}
	}
	if s.reload == nil {
		s.reload = s.defaultReload
	}
	return s
}

// State returns a copy of the current WalletState.
func (s *Synchronizer) State() WalletState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect establishes the wallet identity and populates WalletState
// atomically. On any failure the prior state is left untouched.
func (s *Synchronizer) Connect(ctx context.Context) (WalletState, error) {
	s.mu.Lock()
	if s.provider == nil {
		prior := s.state
		s.mu.Unlock()
		return prior, ErrNoProvider
	}
	s.gen++
	myGen := s.gen
	provider := s.provider
	s.mu.Unlock()

	accounts, err := provider.Accounts(ctx)
	if err != nil {
		return s.State(), fmt.Errorf("requesting accounts: %w", err)
	}
	if len(accounts) == 0 {
		return s.State(), ErrNoAccounts
	}
	address := common.HexToAddress(accounts[0]).Hex()

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return s.State(), fmt.Errorf("resolving network id: %w", err)
	}
	if chainID != s.chainID {
		return s.State(), fmt.Errorf("%w: got chain id %d, want %d", ErrWrongNetwork, chainID, s.chainID)
	}

	signer, err := s.signerFor(address)
	if err != nil {
		return s.State(), fmt.Errorf("deriving signer for %s: %w", address, err)
	}

	balance, assets, err := s.fetch(ctx, provider, address)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != myGen {
		return s.state, ErrStale
	}
	s.state = WalletState{
		Provider: provider,
		Signer:   signer,
		Address:  address,
		Network:  Network{ID: chainID, Name: s.netName},
		Balance:  balance,
		Assets:   assets,
	}
	return s.state, nil
}

// Refresh re-reads balance and owned assets for the current identity. A
// refresh racing a disconnect or reconnect is discarded on application.
func (s *Synchronizer) Refresh(ctx context.Context) (WalletState, error) {
	s.mu.Lock()
	if !s.state.Connected() {
		state := s.state
		s.mu.Unlock()
		return state, nil
	}
	myGen := s.gen
	provider := s.state.Provider
	address := s.state.Address
	s.mu.Unlock()

	balance, assets, err := s.fetch(ctx, provider, address)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != myGen {
		return s.state, ErrStale
	}
	s.state.Balance = balance
	s.state.Assets = assets
	return s.state, nil
}

// Disconnect resets WalletState to its empty default and advances the
// generation so in-flight fetches cannot repopulate it. Provider
// permissions are not revoked; wallet providers expose no revoke call.
func (s *Synchronizer) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = WalletState{}
}

// --- provider event reactions (chain.EventHandler) ---

// AccountsChanged handles an account-list change: zero accounts is a
// disconnect, a different primary account a full reconnect.
func (s *Synchronizer) AccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		s.logf("accounts cleared, disconnecting")
		s.Disconnect()
		return
	}

	current := s.State().Address
	next := common.HexToAddress(accounts[0]).Hex()
	if strings.EqualFold(current, next) {
		return
	}

	s.logf("primary account changed to %s, reconnecting", next)
	if _, err := s.Connect(context.Background()); err != nil {
		s.logf("reconnect after account change failed: %v", err)
	}
}

// ChainChanged handles a network switch. Nearly all cached state is
// network-scoped, so the registered reload hook rebuilds the session
// wholesale instead of invalidating it piecemeal.
func (s *Synchronizer) ChainChanged(chainID int64) {
	s.logf("chain changed to %d, reloading", chainID)
	s.reload()
}

var _ chain.EventHandler = (*Synchronizer)(nil)

func (s *Synchronizer) defaultReload() {
	s.Disconnect()
	if _, err := s.Connect(context.Background()); err != nil {
		s.logf("reconnect after chain change failed: %v", err)
	}
}

// fetch reads the token balance (hard failure) and enumerates owned assets
// (best-effort: errors degrade to an empty list). Balance is core state;
// asset listing is an enhancement.
func (s *Synchronizer) fetch(ctx context.Context, provider chain.Provider, address string) (string, []contract.OwnedAsset, error) {
	token := contract.NewTokenCaller(provider, s.tokenAddr)

	decimals, err := token.Decimals(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("reading token decimals: %w", err)
	}
	raw, err := token.BalanceOf(ctx, address)
	if err != nil {
		return "", nil, fmt.Errorf("reading token balance: %w", err)
	}
	balance := chain.FormatUnits(raw, decimals)

	var assets []contract.OwnedAsset
	if s.assetAddr != "" {
		assetCaller := contract.NewAssetCaller(provider, s.assetAddr)
		assets, err = assetCaller.OwnedTokens(ctx, address)
		if err != nil {
			s.logf("asset enumeration failed (continuing with empty list): %v", err)
			assets = nil
		}
	}

	return balance, assets, nil
}
