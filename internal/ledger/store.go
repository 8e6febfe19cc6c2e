package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store persists the full transaction list under a single key.
type Store interface {
	Load() ([]Transaction, error)
	Save([]Transaction) error
}

// JSONStore keeps the serialized list in one JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed ledger store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]Transaction, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var txs []Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *JSONStore) Save(txs []Transaction) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// MemStore keeps the list in memory (for tests).
type MemStore struct {
	txs []Transaction
}

// NewMemStore creates an in-memory ledger store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() ([]Transaction, error) {
	return s.txs, nil
}

func (s *MemStore) Save(txs []Transaction) error {
	s.txs = txs
	return nil
}
