package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/0xkaran/chainsentry/internal/chain"
)

// Fungible-token selectors, computed once at init.
var (
	selName        = Selector("name()")
	selSymbol      = Selector("symbol()")
	selDecimals    = Selector("decimals()")
	selTotalSupply = Selector("totalSupply()")
	selOwner       = Selector("owner()")
	selBalanceOf   = Selector("balanceOf(address)")
	selTransfer    = Selector("transfer(address,uint256)")
)

// TokenCaller reads state from a fungible token contract.
type TokenCaller struct {
	provider chain.Provider
	address  string
}

// NewTokenCaller creates a caller bound to a token contract address.
func NewTokenCaller(provider chain.Provider, address string) *TokenCaller {
	return &TokenCaller{provider: provider, address: address}
}

// Address returns the bound contract address.
func (t *TokenCaller) Address() string { return t.address }

// Name returns the token's name.
func (t *TokenCaller) Name(ctx context.Context) (string, error) {
	result, err := t.provider.CallContract(ctx, t.address, selName)
	if err != nil {
		return "", fmt.Errorf("reading name: %w", err)
	}
	return decodeString(result)
}

// Symbol returns the token's symbol.
func (t *TokenCaller) Symbol(ctx context.Context) (string, error) {
	result, err := t.provider.CallContract(ctx, t.address, selSymbol)
	if err != nil {
		return "", fmt.Errorf("reading symbol: %w", err)
	}
	return decodeString(result)
}

// Decimals returns the token's declared decimal count.
func (t *TokenCaller) Decimals(ctx context.Context) (int, error) {
	result, err := t.provider.CallContract(ctx, t.address, selDecimals)
	if err != nil {
		return 0, fmt.Errorf("reading decimals: %w", err)
	}
	n, err := decodeUint(result)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// TotalSupply returns the raw total supply.
func (t *TokenCaller) TotalSupply(ctx context.Context) (*big.Int, error) {
	result, err := t.provider.CallContract(ctx, t.address, selTotalSupply)
	if err != nil {
		return nil, fmt.Errorf("reading totalSupply: %w", err)
	}
	return decodeUint(result)
}

// Owner returns the contract owner address.
func (t *TokenCaller) Owner(ctx context.Context) (string, error) {
	result, err := t.provider.CallContract(ctx, t.address, selOwner)
	if err != nil {
		return "", fmt.Errorf("reading owner: %w", err)
	}
	return decodeAddress(result)
}

// BalanceOf returns the raw token balance of holder.
func (t *TokenCaller) BalanceOf(ctx context.Context, holder string) (*big.Int, error) {
	result, err := t.provider.CallContract(ctx, t.address, selBalanceOf+encodeAddress(holder))
	if err != nil {
		return nil, fmt.Errorf("reading balanceOf: %w", err)
	}
	return decodeUint(result)
}

// TransferCalldata builds transfer(to, amount) calldata for a write tx.
func TransferCalldata(to string, amount *big.Int) string {
	return selTransfer + encodeAddress(to) + encodeUint(amount)
}
