package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits converts a raw token amount to a decimal string scaled by
// decimals, with trailing zeros in the fraction trimmed:
// 1500000000000000000 at 18 decimals renders as "1.5".
func FormatUnits(raw *big.Int, decimals int) string {
	if raw == nil {
		return "0"
	}
	if decimals <= 0 {
		return raw.String()
	}

	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(raw, div, new(big.Int))
	if rem.Sign() == 0 {
		return quo.String()
	}

	frac := strings.TrimRight(fmt.Sprintf("%0*s", decimals, rem.String()), "0")
	return quo.String() + "." + frac
}

// WeiToEther converts a wei amount to an ether decimal string.
func WeiToEther(wei *big.Int) string {
	return FormatUnits(wei, 18)
}

// ParseUnits converts a decimal amount string to a raw integer scaled by
// decimals ("1.5" at 18 decimals is 1500000000000000000). Parsing is exact
// decimal arithmetic; float rounding would lose wei.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	raw, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if raw.Sign() < 0 {
		return nil, fmt.Errorf("amount %q must not be negative", amount)
	}
	return raw, nil
}

// EtherToWei converts a decimal ether string to wei.
func EtherToWei(amount string) (*big.Int, error) {
	return ParseUnits(amount, 18)
}
