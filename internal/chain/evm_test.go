package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

// rpcBadJSON creates a server that returns malformed JSON.
func rpcBadJSON(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not valid json`)) //nolint:errcheck
	}))
}

// ---------------------------------------------------------------------------
// ChainID / GetBalance / GetNonce
// ---------------------------------------------------------------------------

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0x7a69"})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(31337), id)
}

func TestGetBalance(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getBalance": "0xde0b6b3a7640000"})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	bal, err := client.GetBalance(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", bal.String())
}

func TestGetNonce(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionCount": "0x5"})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	nonce, err := client.GetNonce(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), nonce)
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func TestAccounts(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_accounts": []string{"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"},
	})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", accounts[0])
}

func TestAccountsEmpty(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_accounts": []string{}})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

// ---------------------------------------------------------------------------
// CallContract / SendRawTransaction
// ---------------------------------------------------------------------------

func TestCallContract(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_call": "0x0000000000000000000000000000000000000000000000000000000000000012"})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	result, err := client.CallContract(context.Background(), "0xcontract", "0x313ce567")
	require.NoError(t, err)
	assert.Contains(t, result, "12")
}

func TestSendRawTransaction(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_sendRawTransaction": "0xdeadbeef"})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	hash, err := client.SendRawTransaction(context.Background(), "0x02f8...")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

func TestRPCErrorSurfaces(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	_, err := client.ChainID(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestBadJSONResponse(t *testing.T) {
	srv := rpcBadJSON(t)
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	_, err := client.ChainID(context.Background())
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// receipts
// ---------------------------------------------------------------------------

func TestGetTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestGetTransactionReceiptMined(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":          "0x1",
			"blockNumber":     "0x10",
			"gasUsed":         "0x5208",
			"contractAddress": "0x5fbdb2315678afecb367f032d93f642f64180aa3",
		},
	})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(1), receipt.Status)
	assert.Equal(t, uint64(16), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	assert.Equal(t, "0x5fbdb2315678afecb367f032d93f642f64180aa3", receipt.ContractAddress)
}

func TestWaitForReceiptReverted(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x0",
			"blockNumber": "0x10",
		},
	})
	defer srv.Close()

	client := NewEVMClient(srv.URL)
	receipt, err := client.WaitForReceipt(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
	require.NotNil(t, receipt)
	assert.Equal(t, uint64(0), receipt.Status)
}

func TestWaitForReceiptContextCancelled(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewEVMClient(srv.URL)
	_, err := client.WaitForReceipt(ctx, "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ---------------------------------------------------------------------------
// parseBigHex
// ---------------------------------------------------------------------------

func TestParseBigHex(t *testing.T) {
	n, ok := parseBigHex("0x10")
	require.True(t, ok)
	assert.Equal(t, int64(16), n.Int64())
}

func TestParseBigHexEmpty(t *testing.T) {
	n, ok := parseBigHex("")
	require.True(t, ok)
	assert.Equal(t, int64(0), n.Int64())
}

func TestParseBigHexInvalid(t *testing.T) {
	_, ok := parseBigHex("0xZZ")
	assert.False(t, ok)
}
