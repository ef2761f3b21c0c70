package state

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/twoem/whiz-pos-apk/pkg/kv"
	"github.com/twoem/whiz-pos-apk/pkg/model"
)

// snapshotKey matches the storage name the fleet has always persisted
// under, so an upgrade finds existing state.
const snapshotKey = "whiz-pos-mobile-storage"

// snapshot is the persisted subset of the store. Cart and transient
// flags are deliberately absent.
type snapshot struct {
	Connection       model.ConnectionSettings
	CurrentUser      *model.User
	LastLoggedUserID string
	SyncQueue        []model.Operation
	Products         []model.Product
	Categories       []string
	Users            []model.User
	Transactions     []model.Transaction
	Expenses         []model.Expense
	Salaries         []model.Salary
	CreditCustomers  []model.CreditCustomer
}

// Save writes the persistable state to the durable store.
func (s *Store) Save(store kv.Store) error {
	s.mu.RLock()
	snap := snapshot{
		Connection:       s.connection,
		CurrentUser:      s.currentUser,
		LastLoggedUserID: s.lastLoggedUserID,
		SyncQueue:        append([]model.Operation(nil), s.syncQueue...),
		Products:         append([]model.Product(nil), s.products...),
		Categories:       append([]string(nil), s.categories...),
		Users:            append([]model.User(nil), s.users...),
		Transactions:     append([]model.Transaction(nil), s.transactions...),
		Expenses:         append([]model.Expense(nil), s.expenses...),
		Salaries:         append([]model.Salary(nil), s.salaries...),
		CreditCustomers:  append([]model.CreditCustomer(nil), s.creditCustomers...),
	}
	if snap.CurrentUser != nil {
		u := *snap.CurrentUser
		snap.CurrentUser = &u
	}
	s.mu.RUnlock()

	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := store.Set([]byte(snapshotKey), data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load restores state from the durable store. A missing snapshot leaves
// the store empty and is not an error.
func (s *Store) Load(store kv.Store) error {
	data, err := store.Get([]byte(snapshotKey))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.connection = snap.Connection
	s.currentUser = snap.CurrentUser
	s.lastLoggedUserID = snap.LastLoggedUserID
	s.syncQueue = snap.SyncQueue
	s.products = snap.Products
	s.categories = snap.Categories
	s.users = snap.Users
	s.transactions = snap.Transactions
	s.expenses = snap.Expenses
	s.salaries = snap.Salaries
	s.creditCustomers = snap.CreditCustomers
	s.cart = nil
	return nil
}
