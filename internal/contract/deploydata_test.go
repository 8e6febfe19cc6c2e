package contract

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// creationCode builds synthetic creation bytecode of exactly total bytes
// whose constructor prologue declares that same size.
func creationCode(total int) []byte {
	code := []byte{0x61, byte(total >> 8), byte(total), 0x38, 0x03} // PUSH2 total CODESIZE SUB
	return append(code, make([]byte, total-len(code))...)
}

// ---------------------------------------------------------------------------
// roundUp32
// ---------------------------------------------------------------------------

func TestRoundUp32Exact(t *testing.T) {
	assert.Equal(t, 0, roundUp32(0))
	assert.Equal(t, 32, roundUp32(32))
	assert.Equal(t, 64, roundUp32(64))
}

func TestRoundUp32Partial(t *testing.T) {
	assert.Equal(t, 32, roundUp32(1))
	assert.Equal(t, 32, roundUp32(31))
	assert.Equal(t, 64, roundUp32(33))
	assert.Equal(t, 64, roundUp32(63))
}

// ---------------------------------------------------------------------------
// appendUint256 / appendBigInt
// ---------------------------------------------------------------------------

func TestAppendUint256Zero(t *testing.T) {
	buf := appendUint256(nil, 0)
	require.Len(t, buf, 32)
	assert.True(t, bytes.Equal(buf, make([]byte, 32)))
}

func TestAppendUint256Small(t *testing.T) {
	buf := appendUint256(nil, 128)
	require.Len(t, buf, 32)
	assert.Equal(t, byte(0x80), buf[31])
	for i := 0; i < 31; i++ {
		assert.Equal(t, byte(0), buf[i])
	}
}

func TestAppendUint256Appends(t *testing.T) {
	base := []byte{0xFF}
	buf := appendUint256(base, 1)
	require.Len(t, buf, 33)
	assert.Equal(t, byte(0xFF), buf[0])
	assert.Equal(t, byte(0x01), buf[32])
}

func TestAppendBigIntLarge(t *testing.T) {
	// 10^24 needs more than 64 bits.
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	buf := appendBigInt(nil, v)
	require.Len(t, buf, 32)
	assert.Equal(t, 0, v.Cmp(new(big.Int).SetBytes(buf)))
}

// ---------------------------------------------------------------------------
// appendString
// ---------------------------------------------------------------------------

func TestAppendStringShort(t *testing.T) {
	buf := appendString(nil, []byte("GOLD"))
	require.Len(t, buf, 64) // length word + one padded word
	assert.Equal(t, byte(4), buf[31])
	assert.Equal(t, "GOLD", string(buf[32:36]))
	assert.True(t, bytes.Equal(buf[36:], make([]byte, 28)))
}

func TestAppendStringExactWord(t *testing.T) {
	s := strings.Repeat("a", 32)
	buf := appendString(nil, []byte(s))
	require.Len(t, buf, 64) // no padding needed
	assert.Equal(t, byte(32), buf[31])
}

func TestAppendStringEmpty(t *testing.T) {
	buf := appendString(nil, nil)
	require.Len(t, buf, 32) // just the zero length word
}

// ---------------------------------------------------------------------------
// ValidateCreationCode
// ---------------------------------------------------------------------------

func TestValidateCreationCodeConsistent(t *testing.T) {
	assert.NoError(t, ValidateCreationCode(creationCode(512)))
}

func TestValidateCreationCodeSolcPrologue(t *testing.T) {
	// The opening of a real solc constructor: free-memory pointer setup,
	// callvalue guard, then PUSH3 <size> CODESIZE SUB for the args block.
	prologue := []byte{
		0x60, 0x80, 0x60, 0x40, 0x52, // PUSH1 80 PUSH1 40 MSTORE
		0x34, 0x80, 0x15, 0x62, 0x00, 0x00, 0x11, 0x57, // CALLVALUE DUP1 ISZERO PUSH3 .. JUMPI
		0x60, 0x00, 0x80, 0xfd, 0x5b, 0x50, // PUSH1 00 DUP1 REVERT JUMPDEST POP
		0x62, 0x00, 0x01, 0x00, 0x38, 0x03, // PUSH3 0x000100 CODESIZE SUB
	}
	code := append(prologue, make([]byte, 0x100-len(prologue))...)
	require.Len(t, code, 0x100)
	assert.NoError(t, ValidateCreationCode(code))

	// The guard PUSH3 0x000011 must not be misread as the size marker.
	declared, ok := declaredCodeSize(code)
	require.True(t, ok)
	assert.Equal(t, 0x100, declared)
}

func TestValidateCreationCodeTruncated(t *testing.T) {
	code := creationCode(512)[:200] // prologue still declares 512
	err := ValidateCreationCode(code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestValidateCreationCodeEmpty(t *testing.T) {
	assert.Error(t, ValidateCreationCode(nil))
}

func TestValidateCreationCodeNoPrologue(t *testing.T) {
	// Bytecode without a recognizable size marker passes unchecked.
	assert.NoError(t, ValidateCreationCode([]byte{0x00, 0x01, 0x02, 0x03}))
}

// ---------------------------------------------------------------------------
// BuildTokenDeployData
// ---------------------------------------------------------------------------

func TestBuildTokenDeployDataLayout(t *testing.T) {
	code := creationCode(512)
	supply := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	data, err := BuildTokenDeployData(code, "Gold Token", "GOLD", 18, supply)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, code))

	args := data[len(code):]
	// Head: nameOffset, symbolOffset, decimals, supply.
	require.GreaterOrEqual(t, len(args), 4*32)
	nameOffset := new(big.Int).SetBytes(args[0:32]).Uint64()
	symbolOffset := new(big.Int).SetBytes(args[32:64]).Uint64()
	decimals := new(big.Int).SetBytes(args[64:96]).Uint64()
	gotSupply := new(big.Int).SetBytes(args[96:128])

	assert.Equal(t, uint64(128), nameOffset)
	assert.Equal(t, uint64(128+32+32), symbolOffset) // name fits one word
	assert.Equal(t, uint64(18), decimals)
	assert.Equal(t, 0, supply.Cmp(gotSupply))

	// Tail: the strings live at their declared offsets.
	nameLen := new(big.Int).SetBytes(args[nameOffset : nameOffset+32]).Uint64()
	assert.Equal(t, "Gold Token", string(args[nameOffset+32:nameOffset+32+nameLen]))
	symLen := new(big.Int).SetBytes(args[symbolOffset : symbolOffset+32]).Uint64()
	assert.Equal(t, "GOLD", string(args[symbolOffset+32:symbolOffset+32+symLen]))
}

func TestBuildTokenDeployDataLongName(t *testing.T) {
	// A 40-char name spills into a second word and shifts the symbol offset.
	code := creationCode(512)
	name := strings.Repeat("x", 40)
	data, err := BuildTokenDeployData(code, name, "XXX", 6, big.NewInt(1))
	require.NoError(t, err)

	args := data[len(code):]
	symbolOffset := new(big.Int).SetBytes(args[32:64]).Uint64()
	assert.Equal(t, uint64(128+32+64), symbolOffset)
}

func TestBuildTokenDeployDataDoesNotAliasBytecode(t *testing.T) {
	code := creationCode(512)
	data, err := BuildTokenDeployData(code, "Gold", "GOLD", 18, big.NewInt(1))
	require.NoError(t, err)

	data[0] ^= 0xFF
	assert.Equal(t, byte(0x61), code[0])
}

func TestBuildTokenDeployDataRejectsTruncatedBytecode(t *testing.T) {
	_, err := BuildTokenDeployData(creationCode(512)[:64], "Gold", "GOLD", 18, big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestBuildTokenDeployDataRejectsEmptyBytecode(t *testing.T) {
	_, err := BuildTokenDeployData(nil, "Gold", "GOLD", 18, big.NewInt(1))
	assert.Error(t, err)
}

func TestBuildTokenDeployDataRejectsEmptyName(t *testing.T) {
	_, err := BuildTokenDeployData(creationCode(512), "", "GOLD", 18, big.NewInt(1))
	assert.Error(t, err)
}

func TestBuildTokenDeployDataRejectsEmptySymbol(t *testing.T) {
	_, err := BuildTokenDeployData(creationCode(512), "Gold", "", 18, big.NewInt(1))
	assert.Error(t, err)
}

func TestBuildTokenDeployDataRejectsNilSupply(t *testing.T) {
	_, err := BuildTokenDeployData(creationCode(512), "Gold", "GOLD", 18, nil)
	assert.Error(t, err)
}

func TestBuildTokenDeployDataZeroSupply(t *testing.T) {
	_, err := BuildTokenDeployData(creationCode(512), "Gold", "GOLD", 18, big.NewInt(0))
	assert.NoError(t, err)
}
