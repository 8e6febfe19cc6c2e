package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", cfg.RPCURL)
	assert.Equal(t, int64(31337), cfg.ChainID)
	assert.Equal(t, "localhost", cfg.NetworkName)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.FraudAPIURL)
	assert.Equal(t, "0.1", cfg.MinDeployETH)
	assert.Equal(t, 5, cfg.WatchInterval)
	assert.Empty(t, cfg.TokenContract)
}

func TestLoadCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".chainsentry")

	_, err := Load(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.RPCURL = "http://10.0.0.2:8545"
	cfg.ChainID = 1337
	cfg.NetworkName = "devnet"
	cfg.TokenContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	cfg.DefaultWallet = "deployer"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8545", loaded.RPCURL)
	assert.Equal(t, int64(1337), loaded.ChainID)
	assert.Equal(t, "devnet", loaded.NetworkName)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", loaded.TokenContract)
	assert.Equal(t, "deployer", loaded.DefaultWallet)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rpc_url":"http://10.0.0.9:8545"}`), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "http://10.0.0.9:8545", cfg.RPCURL)
	assert.Equal(t, int64(31337), cfg.ChainID)
	assert.Equal(t, "0.1", cfg.MinDeployETH)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "parsing config")
}

// ---------------------------------------------------------------------------
// paths
// ---------------------------------------------------------------------------

func TestDerivedPaths(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
	assert.Equal(t, filepath.Join(dir, "transactions.json"), cfg.LedgerPath())
	assert.Equal(t, filepath.Join(dir, "deployments"), cfg.RecordsDir())
}
