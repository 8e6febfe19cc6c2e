package deploy

import (
	"fmt"
	"math/big"
)

// Chain ids of the local development networks where the balance floor does
// not apply (funds are free there).
const (
	devChainIDGeth    = int64(1337)
	devChainIDHardhat = int64(31337)
)

// IsDevNetwork reports whether chainID is one of the designated local
// development networks.
func IsDevNetwork(chainID int64) bool {
	return chainID == devChainIDGeth || chainID == devChainIDHardhat
}

// CheckPreconditions validates that a mutating action may proceed: it fails
// with ErrInsufficientFunds when the network is not a dev network AND the
// balance is below requiredWei. Pure decision, no side effects; callers
// re-evaluate on every attempt because balances move between attempts.
func CheckPreconditions(chainID int64, balanceWei, requiredWei *big.Int) error {
	if IsDevNetwork(chainID) {
		return nil
	}
	if balanceWei == nil || balanceWei.Cmp(requiredWei) < 0 {
		return fmt.Errorf("%w: balance below required minimum on chain %d", ErrInsufficientFunds, chainID)
	}
	return nil
}
