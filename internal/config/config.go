package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultRPCURL       = "http://127.0.0.1:8545"
	defaultChainID      = int64(31337)
	defaultNetworkName  = "localhost"
	defaultFraudAPIURL  = "http://127.0.0.1:5000"
	defaultMinBalance   = "0.1" // ether
	defaultWatchSeconds = 5

	configFile  = "config.json"
	walletsFile = "wallets.json"
	ledgerFile  = "transactions.json"
	recordsDir  = "deployments"
)

// Config holds all chainsentry configuration.
type Config struct {
	RPCURL         string `json:"rpc_url"`
	ChainID        int64  `json:"chain_id"`     // the single supported network id
	NetworkName    string `json:"network_name"` // display name for the supported network
	FraudAPIURL    string `json:"fraud_api_url"`
	DefaultWallet  string `json:"default_wallet"`
	TokenContract  string `json:"token_contract"`           // fungible token used for balance display
	AssetContract  string `json:"asset_contract,omitempty"` // non-fungible asset collection (optional)
	MinDeployETH   string `json:"min_deploy_balance"`       // precondition minimum, in ether
	WatchInterval  int    `json:"watch_interval"`           // seconds between provider polls

	// internal: config dir path used for Save()
	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.chainsentry.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".chainsentry")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the wallet store file path.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LedgerPath returns the transaction ledger file path.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.configDir, ledgerFile)
}

// RecordsDir returns the deployment records directory.
func (c *Config) RecordsDir() string {
	return filepath.Join(c.configDir, recordsDir)
}

func defaults(dir string) *Config {
	return &Config{
		RPCURL:        defaultRPCURL,
		ChainID:       defaultChainID,
		NetworkName:   defaultNetworkName,
		FraudAPIURL:   defaultFraudAPIURL,
		MinDeployETH:  defaultMinBalance,
		WatchInterval: defaultWatchSeconds,
		configDir:     dir,
	}
}
