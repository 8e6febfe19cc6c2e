package chain

import (
	"context"
	"math/big"
)

// Provider is the capability surface the rest of the application depends on:
// account listing, network identification, read-only calls, balance queries,
// broadcast, and confirmation wait. EVMClient is the production
// implementation; tests substitute fakes.
type Provider interface {
	Accounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (int64, error)
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	GetNonce(ctx context.Context, address string) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error)
	CallContract(ctx context.Context, to, data string) (string, error)
	SendRawTransaction(ctx context.Context, rawTx string) (string, error)
	WaitForReceipt(ctx context.Context, hash string) (*Receipt, error)
}

var _ Provider = (*EVMClient)(nil)
