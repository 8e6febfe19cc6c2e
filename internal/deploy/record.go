package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// NetworkInfo identifies the network a contract was deployed to.
type NetworkInfo struct {
	Name    string `json:"name"`
	ChainID int64  `json:"chain_id"`
}

// ContractInfo describes the deployed contract itself.
type ContractInfo struct {
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Deployer   string    `json:"deployer"`
	TxHash     string    `json:"tx_hash,omitempty"`
	DeployedAt time.Time `json:"deployed_at"`
}

// Record is the durable metadata for one successful deployment. It is
// written once and never mutated.
type Record struct {
	Network  NetworkInfo       `json:"network"`
	Contract ContractInfo      `json:"contract"`
	Details  map[string]string `json:"details"` // read-back snapshot (name, symbol, owner, supply)
}

// RecordStore persists deployment records, one file per deployment, keyed
// by network name and a millisecond timestamp.
type RecordStore struct {
	dir string
}

// NewRecordStore creates a store rooted at dir. The directory is created
// lazily on first save and reused if it already exists.
func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir}
}

// Save writes rec and returns the file path it was written to.
func (s *RecordStore) Save(rec *Record) (string, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("creating records dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d.json", sanitizeName(rec.Network.Name), rec.Contract.DeployedAt.UnixMilli())
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}
	return path, nil
}

// List returns all stored records, newest first.
func (s *RecordStore) List() ([]*Record, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []*Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", e.Name(), err)
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Contract.DeployedAt.After(records[j].Contract.DeployedAt)
	})
	return records, nil
}

// sanitizeName makes a network name safe for a filename.
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "network"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}
