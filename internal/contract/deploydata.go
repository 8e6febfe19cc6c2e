package contract

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// BuildTokenDeployData returns the full contract-creation payload: the
// compiled creation bytecode followed by the ABI-encoded constructor
// arguments (string name, string symbol, uint8 decimals, uint256 supply).
// The bytecode comes from a compiler artifact (see LoadDeployArtifact);
// it is validated against its own constructor prologue before use.
func BuildTokenDeployData(creationCode []byte, name, symbol string, decimals uint8, initialSupply *big.Int) ([]byte, error) {
	if err := ValidateCreationCode(creationCode); err != nil {
		return nil, err
	}
	if name == "" || symbol == "" {
		return nil, fmt.Errorf("token name and symbol are required")
	}
	if initialSupply == nil || initialSupply.Sign() < 0 {
		return nil, fmt.Errorf("initial supply must be a non-negative integer")
	}

	nameBytes := []byte(name)
	symbolBytes := []byte(symbol)

	// Head layout: [nameOffset, symbolOffset, decimals, initialSupply],
	// then the dynamic tail with both strings. Offsets are relative to the
	// start of the argument block.
	nameOffset := uint64(4 * 32)
	symbolOffset := nameOffset + 32 + uint64(roundUp32(len(nameBytes)))

	args := appendUint256(nil, nameOffset)
	args = appendUint256(args, symbolOffset)
	args = appendUint256(args, uint64(decimals))
	args = appendBigInt(args, initialSupply)
	args = appendString(args, nameBytes)
	args = appendString(args, symbolBytes)

	payload := make([]byte, 0, len(creationCode)+len(args))
	payload = append(payload, creationCode...)
	return append(payload, args...), nil
}

// ValidateCreationCode cross-checks creation bytecode against its own
// constructor prologue. solc constructors locate the appended argument
// block with CODESIZE minus the compiled code size (PUSHn size, CODESIZE,
// SUB); when the embedded size exceeds what the payload actually carries,
// that subtraction underflows on chain and the constructor aborts, so a
// truncated artifact is rejected here instead of failing at mining time.
func ValidateCreationCode(code []byte) error {
	if len(code) == 0 {
		return fmt.Errorf("creation bytecode is empty")
	}
	declared, ok := declaredCodeSize(code)
	if !ok {
		// No recognizable prologue; nothing to cross-check.
		return nil
	}
	if declared != len(code) {
		return fmt.Errorf("creation bytecode is truncated: prologue declares %d bytes, payload carries %d", declared, len(code))
	}
	return nil
}

// declaredCodeSize walks the opening instructions of the constructor
// prologue looking for PUSH1..PUSH3 <size> CODESIZE SUB and returns the
// pushed size. PUSH immediates are skipped as data, not scanned as opcodes.
func declaredCodeSize(code []byte) (int, bool) {
	const opCodesize, opSub = 0x38, 0x03

	for i := 0; i < len(code) && i < 96; {
		op := code[i]
		if op >= 0x60 && op <= 0x62 { // PUSH1..PUSH3
			n := int(op-0x60) + 1
			end := i + 1 + n
			if end+1 < len(code) && code[end] == opCodesize && code[end+1] == opSub {
				size := 0
				for _, b := range code[i+1 : end] {
					size = size<<8 | int(b)
				}
				return size, true
			}
		}
		if op >= 0x60 && op <= 0x7f { // any PUSH: skip its immediate
			i += 1 + int(op-0x60) + 1
		} else {
			i++
		}
	}
	return 0, false
}

// roundUp32 rounds n up to the next multiple of 32.
func roundUp32(n int) int {
	return (n + 31) / 32 * 32
}

// appendUint256 appends v as a 32-byte big-endian word.
func appendUint256(buf []byte, v uint64) []byte {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], v)
	return append(buf, word[:]...)
}

// appendBigInt appends v as a 32-byte big-endian word.
func appendBigInt(buf []byte, v *big.Int) []byte {
	var word [32]byte
	v.FillBytes(word[:])
	return append(buf, word[:]...)
}

// appendString appends a dynamic string tail: a length word followed by the
// bytes padded to a 32-byte boundary.
func appendString(buf []byte, s []byte) []byte {
	buf = appendUint256(buf, uint64(len(s)))
	buf = append(buf, s...)
	if pad := roundUp32(len(s)) - len(s); pad > 0 {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}
