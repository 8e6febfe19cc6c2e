package ledger

import (
	"strings"
	"sync"
	"time"
)

// Status is the terminal or pending state of a tracked transaction.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Transaction is one locally tracked transfer.
type Transaction struct {
	Hash      string    `json:"hash"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"` // decimal token units
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Protocol  string    `json:"protocol,omitempty"`
}

// Ledger is the append-only local record of submitted transactions. It is
// the single writer of its list; every mutation persists the full list and
// then notifies every subscriber with the new full list. Callbacks run
// outside the ledger's lock, so a subscriber may read the ledger again.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	txs    []Transaction // newest first
	loaded bool

	subs    map[int]func([]Transaction)
	nextSub int
}

// New creates a ledger backed by store.
func New(store Store) *Ledger {
	if store == nil {
		store = NewMemStore()
	}
	return &Ledger{
		store: store,
		subs:  make(map[int]func([]Transaction)),
	}
}

// List returns a copy of the transactions, newest first.
func (l *Ledger) List() ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.load(); err != nil {
		return nil, err
	}
	return l.snapshot(), nil
}

// Add prepends a transaction. A zero status defaults to Pending and a zero
// timestamp to now.
func (l *Ledger) Add(tx Transaction) error {
	return l.mutate(func() {
		if tx.Status == "" {
			tx.Status = StatusPending
		}
		if tx.Timestamp.IsZero() {
			tx.Timestamp = time.Now().UTC()
		}
		l.txs = append([]Transaction{tx}, l.txs...)
	})
}

// UpdateStatus sets the status of the transaction with hash. An unknown
// hash is a no-op on the list, but the write-through and subscriber
// notification still happen so observers stay in step.
func (l *Ledger) UpdateStatus(hash string, status Status) error {
	return l.mutate(func() {
		for i := range l.txs {
			if strings.EqualFold(l.txs[i].Hash, hash) {
				l.txs[i].Status = status
				break
			}
		}
	})
}

// Clear removes every transaction.
func (l *Ledger) Clear() error {
	return l.mutate(func() {
		l.txs = nil
	})
}

// Subscribe registers a callback invoked with the full list after every
// mutation. The returned function removes the subscription.
func (l *Ledger) Subscribe(fn func([]Transaction)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// --- internal ---

func (l *Ledger) load() error {
	if l.loaded {
		return nil
	}
	txs, err := l.store.Load()
	if err != nil {
		return err
	}
	l.txs = txs
	l.loaded = true
	return nil
}

// mutate is the single mutation path: load, apply, persist the full list,
// then notify every subscriber with the new list. Callbacks run after the
// mutex is released, so a subscriber may call back into the ledger. A
// failed save returns before any callback fires.
func (l *Ledger) mutate(apply func()) error {
	l.mu.Lock()
	if err := l.load(); err != nil {
		l.mu.Unlock()
		return err
	}
	apply()
	snap := l.snapshot()
	if err := l.store.Save(snap); err != nil {
		l.mu.Unlock()
		return err
	}
	subs := make([]func([]Transaction), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

func (l *Ledger) snapshot() []Transaction {
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}
