package deploy

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// ---------------------------------------------------------------------------
// IsDevNetwork
// ---------------------------------------------------------------------------

func TestIsDevNetwork(t *testing.T) {
	assert.True(t, IsDevNetwork(1337))
	assert.True(t, IsDevNetwork(31337))
	assert.False(t, IsDevNetwork(1))
	assert.False(t, IsDevNetwork(11155111))
	assert.False(t, IsDevNetwork(0))
}

// ---------------------------------------------------------------------------
// CheckPreconditions
// ---------------------------------------------------------------------------

func TestCheckPreconditionsDevNetworkSkipsBalanceFloor(t *testing.T) {
	// Zero balance is fine on a dev chain.
	assert.NoError(t, CheckPreconditions(31337, big.NewInt(0), eth(1)))
	assert.NoError(t, CheckPreconditions(1337, nil, eth(1)))
}

func TestCheckPreconditionsSufficientBalance(t *testing.T) {
	assert.NoError(t, CheckPreconditions(1, eth(2), eth(1)))
	assert.NoError(t, CheckPreconditions(1, eth(1), eth(1))) // exactly at the floor
}

func TestCheckPreconditionsInsufficientBalance(t *testing.T) {
	err := CheckPreconditions(1, eth(0), eth(1))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	err = CheckPreconditions(1, nil, eth(1))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

// ---------------------------------------------------------------------------
// ClassifySubmitError
// ---------------------------------------------------------------------------

func TestClassifySubmitError(t *testing.T) {
	assert.Equal(t, ReasonNone, ClassifySubmitError(nil))
	assert.Equal(t, ReasonInsufficientFunds,
		ClassifySubmitError(errors.New("err: insufficient funds for gas * price + value")))
	assert.Equal(t, ReasonNetworkMisconfig,
		ClassifySubmitError(errors.New("dial tcp 127.0.0.1:8545: connection refused")))
	assert.Equal(t, ReasonNetworkMisconfig,
		ClassifySubmitError(errors.New("lookup rpc.example: no such host")))
	assert.Equal(t, ReasonNetworkMisconfig,
		ClassifySubmitError(errors.New("request timeout")))
	assert.Equal(t, ReasonUnknown,
		ClassifySubmitError(errors.New("nonce too low")))
}
