package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/0xkaran/chainsentry/internal/chain"
)

// Non-fungible asset selectors.
var (
	selAssetBalance = Selector("balanceOf(address)")
	selTokenOfOwner = Selector("tokenOfOwnerByIndex(address,uint256)")
	selTokenURI     = Selector("tokenURI(uint256)")
)

// OwnedAsset is one non-fungible token held by an address.
type OwnedAsset struct {
	TokenID string `json:"token_id"`
	URI     string `json:"uri,omitempty"`
}

// AssetCaller reads state from an enumerable non-fungible asset contract.
type AssetCaller struct {
	provider chain.Provider
	address  string
}

// NewAssetCaller creates a caller bound to an asset contract address.
func NewAssetCaller(provider chain.Provider, address string) *AssetCaller {
	return &AssetCaller{provider: provider, address: address}
}

// Address returns the bound contract address.
func (a *AssetCaller) Address() string { return a.address }

// BalanceOf returns how many assets owner holds.
func (a *AssetCaller) BalanceOf(ctx context.Context, owner string) (int, error) {
	result, err := a.provider.CallContract(ctx, a.address, selAssetBalance+encodeAddress(owner))
	if err != nil {
		return 0, fmt.Errorf("reading asset balance: %w", err)
	}
	n, err := decodeUint(result)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// TokenOfOwnerByIndex returns the token id at index for owner.
func (a *AssetCaller) TokenOfOwnerByIndex(ctx context.Context, owner string, index int) (*big.Int, error) {
	calldata := selTokenOfOwner + encodeAddress(owner) + encodeUint(big.NewInt(int64(index)))
	result, err := a.provider.CallContract(ctx, a.address, calldata)
	if err != nil {
		return nil, fmt.Errorf("reading tokenOfOwnerByIndex(%d): %w", index, err)
	}
	return decodeUint(result)
}

// TokenURI returns the metadata URI for a token id.
func (a *AssetCaller) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	result, err := a.provider.CallContract(ctx, a.address, selTokenURI+encodeUint(tokenID))
	if err != nil {
		return "", fmt.Errorf("reading tokenURI: %w", err)
	}
	return decodeString(result)
}

// OwnedTokens enumerates every asset owner holds. A missing tokenURI is
// tolerated (the id alone is still useful); a failure on the balance or
// index reads is returned to the caller, who decides whether the
// enumeration is best-effort.
func (a *AssetCaller) OwnedTokens(ctx context.Context, owner string) ([]OwnedAsset, error) {
	count, err := a.BalanceOf(ctx, owner)
	if err != nil {
		return nil, err
	}

	assets := make([]OwnedAsset, 0, count)
	for i := 0; i < count; i++ {
		id, err := a.TokenOfOwnerByIndex(ctx, owner, i)
		if err != nil {
			return nil, err
		}
		asset := OwnedAsset{TokenID: id.String()}
		if uri, err := a.TokenURI(ctx, id); err == nil {
			asset.URI = uri
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
