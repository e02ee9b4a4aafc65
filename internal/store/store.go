// Package store is the in-process entity store. All state lives in maps
// keyed by auto-increment ids and is guarded by a single RWMutex: writers
// run under Write, readers under Read, so no caller ever observes a
// half-applied mutation.
package store

import (
	"errors"
	"sync"

	"moneyflow/internal/models"
)

var ErrNotFound = errors.New("record not found")

const (
	collectionUsers        = "users"
	collectionAccounts     = "accounts"
	collectionTransactions = "transactions"
	collectionInvestments  = "investments"
	collectionInsurances   = "insurances"
	collectionInsights     = "insights"
	collectionAudit        = "audit"
)

type Store struct {
	mu    sync.RWMutex
	state state
}

type state struct {
	users        map[int64]models.User
	accounts     map[int64]models.BankAccount
	transactions map[int64]models.Transaction
	investments  map[int64]models.Investment
	insurances   map[int64]models.Insurance
	insights     map[int64]models.Insight
	audit        map[int64]models.AuditEntry
	nextID       map[string]int64
	txByRequest  map[requestKey]int64
}

// requestKey scopes idempotency keys to their owner so one user's client
// request id can never resolve to another user's transaction.
type requestKey struct {
	userID    int64
	requestID string
}

// Tx is a handle onto the locked state. It is only valid inside the
// closure passed to Write or Read and must not escape it.
type Tx struct {
	s *state
}

func New() *Store {
	return &Store{
		state: state{
			users:        make(map[int64]models.User),
			accounts:     make(map[int64]models.BankAccount),
			transactions: make(map[int64]models.Transaction),
			investments:  make(map[int64]models.Investment),
			insurances:   make(map[int64]models.Insurance),
			insights:     make(map[int64]models.Insight),
			audit:        make(map[int64]models.AuditEntry),
			nextID:       make(map[string]int64),
			txByRequest:  make(map[requestKey]int64),
		},
	}
}

// Write runs fn under the exclusive lock. Callers validate before they
// mutate; an error returned part-way must not leave partial state behind.
func (s *Store) Write(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: &s.state})
}

// Read runs fn under the shared lock.
func (s *Store) Read(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{s: &s.state})
}

// allocID hands out the next id for a collection. Ids are monotonic and
// never reused.
func (tx *Tx) allocID(collection string) int64 {
	tx.s.nextID[collection]++
	return tx.s.nextID[collection]
}
