package contract

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Selector
// ---------------------------------------------------------------------------

func TestSelectorKnownValues(t *testing.T) {
	// Canonical selectors every EVM tool agrees on.
	assert.Equal(t, "0xa9059cbb", Selector("transfer(address,uint256)"))
	assert.Equal(t, "0x70a08231", Selector("balanceOf(address)"))
	assert.Equal(t, "0x313ce567", Selector("decimals()"))
	assert.Equal(t, "0x06fdde03", Selector("name()"))
	assert.Equal(t, "0x95d89b41", Selector("symbol()"))
	assert.Equal(t, "0x18160ddd", Selector("totalSupply()"))
}

// ---------------------------------------------------------------------------
// encoding
// ---------------------------------------------------------------------------

func TestEncodeAddressPadsTo32Bytes(t *testing.T) {
	enc := encodeAddress("0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Len(t, enc, 64)
	assert.Equal(t, "000000000000000000000000f39fd6e51aad88f6f4ce6ab8827279cfffb92266", enc)
}

func TestEncodeUint(t *testing.T) {
	assert.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000080",
		encodeUint(big.NewInt(128)))
	assert.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000000",
		encodeUint(big.NewInt(0)))
}

// ---------------------------------------------------------------------------
// decoding
// ---------------------------------------------------------------------------

func TestDecodeUint(t *testing.T) {
	n, err := decodeUint("0x0000000000000000000000000000000000000000000000000000000000000012")
	require.NoError(t, err)
	assert.Equal(t, int64(18), n.Int64())
}

func TestDecodeUintEmpty(t *testing.T) {
	_, err := decodeUint("0x")
	assert.Error(t, err)
}

func TestDecodeAddress(t *testing.T) {
	addr, err := decodeAddress("0x000000000000000000000000f39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", addr)
}

func TestDecodeAddressTooShort(t *testing.T) {
	_, err := decodeAddress("0x1234")
	assert.Error(t, err)
}

func TestDecodeString(t *testing.T) {
	// offset=32, length=4, "GOLD" padded to 32 bytes.
	data := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"474f4c4400000000000000000000000000000000000000000000000000000000"
	s, err := decodeString(data)
	require.NoError(t, err)
	assert.Equal(t, "GOLD", s)
}

func TestDecodeStringEmpty(t *testing.T) {
	data := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000000"
	s, err := decodeString(data)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestDecodeStringBadOffset(t *testing.T) {
	data := "0x" +
		"00000000000000000000000000000000000000000000000000000000000000ff" +
		"0000000000000000000000000000000000000000000000000000000000000004"
	_, err := decodeString(data)
	assert.Error(t, err)
}

func TestDecodeStringHostileOffsetWord(t *testing.T) {
	// An offset word near 2^64 would wrap an additive bounds check and
	// index past the slice. It must come back as an error, not a panic.
	data := "0x" +
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff0" +
		"0000000000000000000000000000000000000000000000000000000000000004"
	_, err := decodeString(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset out of range")
}

func TestDecodeStringHostileLengthWord(t *testing.T) {
	data := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff0" +
		"474f4c4400000000000000000000000000000000000000000000000000000000"
	_, err := decodeString(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length out of range")
}

// ---------------------------------------------------------------------------
// TransferCalldata
// ---------------------------------------------------------------------------

func TestTransferCalldata(t *testing.T) {
	data := TransferCalldata("0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266", big.NewInt(1000))
	require.Len(t, data, 2+8+64+64)
	assert.Equal(t, "0xa9059cbb", data[:10])
	assert.Contains(t, data, "f39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	assert.Contains(t, data, "00000000000000000000000000000000000000000000000000000000000003e8")
}
