package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Selector computes the 4-byte function selector for a signature like
// "balanceOf(address)".
func Selector(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// --- word encoding (simplified, for the types the bindings use) ---

// encodeAddress left-pads an address to a 32-byte hex word.
func encodeAddress(addr string) string {
	return fmt.Sprintf("%064s", strings.ToLower(strings.TrimPrefix(addr, "0x")))
}

// encodeUint encodes an unsigned integer as a 32-byte hex word.
func encodeUint(n *big.Int) string {
	return fmt.Sprintf("%064x", n)
}

// --- word decoding ---

// decodeUint decodes a single uint word result.
func decodeUint(hexData string) (*big.Int, error) {
	s := strings.TrimPrefix(hexData, "0x")
	if s == "" {
		return nil, fmt.Errorf("empty result")
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("could not parse uint result: %s", hexData)
	}
	return n, nil
}

// decodeAddress decodes a single address word result.
func decodeAddress(hexData string) (string, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return "", fmt.Errorf("decoding hex result: %w", err)
	}
	if len(data) < 32 {
		return "", fmt.Errorf("result too short for address: %d bytes", len(data))
	}
	return "0x" + hex.EncodeToString(data[12:32]), nil
}

// decodeString decodes a single dynamic-string result
// (offset word, length word, padded bytes).
func decodeString(hexData string) (string, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return "", fmt.Errorf("decoding hex result: %w", err)
	}
	if len(data) < 64 {
		return "", fmt.Errorf("result too short for string: %d bytes", len(data))
	}

	// The offset and length words come straight off the wire, so the
	// bounds checks use subtraction instead of addition: a word near
	// 2^64 must fail cleanly rather than wrap past the check.
	size := uint64(len(data))
	offsetWord := new(big.Int).SetBytes(data[:32])
	if !offsetWord.IsUint64() || offsetWord.Uint64() > size-32 {
		return "", fmt.Errorf("string offset out of range")
	}
	offset := offsetWord.Uint64()
	lengthWord := new(big.Int).SetBytes(data[offset : offset+32])
	start := offset + 32
	if !lengthWord.IsUint64() || lengthWord.Uint64() > size-start {
		return "", fmt.Errorf("string length out of range")
	}
	length := lengthWord.Uint64()
	return string(data[start : start+length]), nil
}
