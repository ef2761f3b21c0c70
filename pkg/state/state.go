// Package state holds the terminal's entire in-memory state: synced
// collections, the cart, connection settings and the sync queue. The
// Store is the single choke point for mutations; nothing outside this
// package touches a collection directly, so the queue/collection
// consistency rules are enforced in one place.
package state

import (
	"sync"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

// Store owns all terminal state. All methods are safe for concurrent
// use; every mutation is atomic with respect to readers, so a sync
// cycle suspended on the network never observes a torn collection.
type Store struct {
	mu sync.RWMutex

	connection       model.ConnectionSettings
	currentUser      *model.User
	lastLoggedUserID string

	users           []model.User
	products        []model.Product
	categories      []string
	transactions    []model.Transaction
	expenses        []model.Expense
	salaries        []model.Salary
	creditCustomers []model.CreditCustomer

	cart      []model.CartLine
	syncQueue []model.Operation
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// SetConnection shallow-merges the patch into the connection settings.
// URL syntax is not validated here; that is the connect flow's job.
func (s *Store) SetConnection(p model.ConnectionPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.APIURL != nil {
		s.connection.APIURL = *p.APIURL
	}
	if p.APIKey != nil {
		s.connection.APIKey = *p.APIKey
	}
	if p.IsConnected != nil {
		s.connection.IsConnected = *p.IsConnected
	}
}

// Connection returns the current connection settings.
func (s *Store) Connection() model.ConnectionSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connection
}

// Login sets the current user and remembers it for auto-select on the
// next launch. Credential checks happen before this is called.
func (s *Store) Login(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := u
	s.currentUser = &user
	s.lastLoggedUserID = u.ID
}

// LoginWithPIN verifies the 4-digit PIN of the given user and logs them
// in. State is untouched on mismatch.
func (s *Store) LoginWithPIN(userID, pin string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID != userID {
			continue
		}
		if u.PIN != pin {
			return model.User{}, ErrPINMismatch
		}
		user := u
		s.currentUser = &user
		s.lastLoggedUserID = u.ID
		return u, nil
	}
	return model.User{}, ErrUserNotFound
}

// Logout clears the current user but keeps lastLoggedUserID.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
}

// ClearLastLoggedUser forgets the auto-select hint.
func (s *Store) ClearLastLoggedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLoggedUserID = ""
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return model.User{}, false
	}
	return *s.currentUser, true
}

// LastLoggedUserID returns the id persisted by the last Login.
func (s *Store) LastLoggedUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLoggedUserID
}

// SetUsers replaces the synced user list. Server wins; users have no
// local-add flow.
func (s *Store) SetUsers(users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]model.User(nil), users...)
}

// Users returns a copy of the user list.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.User(nil), s.users...)
}

// SetProducts replaces the product catalog and recomputes categories as
// the ordered distinct non-empty category values.
func (s *Store) SetProducts(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]model.Product(nil), products...)
	s.categories = deriveCategories(s.products)
}

func deriveCategories(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// SetCategories overrides the derived category list with a
// server-provided one.
func (s *Store) SetCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]string(nil), categories...)
}

// Products returns a copy of the catalog.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.products...)
}

// Categories returns a copy of the category list.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// AddTransaction prepends a locally recorded sale so it is immediately
// visible, independent of queueing.
func (s *Store) AddTransaction(tx model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]model.Transaction{tx}, s.transactions...)
}

// AddExpense prepends a locally recorded expense.
func (s *Store) AddExpense(e model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]model.Expense{e}, s.expenses...)
}

// AddSalary prepends a locally recorded salary payment.
func (s *Store) AddSalary(sal model.Salary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salaries = append([]model.Salary{sal}, s.salaries...)
}

// AddCreditCustomer appends a locally created customer.
func (s *Store) AddCreditCustomer(c model.CreditCustomer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creditCustomers = append(s.creditCustomers, c)
}

// UpdateCreditCustomer shallow-patches the matching customer in place.
// No-op if the id is unknown.
func (s *Store) UpdateCreditCustomer(id string, patch model.CreditCustomerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.creditCustomers {
		if s.creditCustomers[i].ID == id {
			patch.Apply(&s.creditCustomers[i])
			return
		}
	}
}

// Transactions returns a copy of the transaction list.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Transaction(nil), s.transactions...)
}

// Expenses returns a copy of the expense list.
func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Expense(nil), s.expenses...)
}

// Salaries returns a copy of the salary list.
func (s *Store) Salaries() []model.Salary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Salary(nil), s.salaries...)
}

// CreditCustomers returns a copy of the customer list.
func (s *Store) CreditCustomers() []model.CreditCustomer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CreditCustomer(nil), s.creditCustomers...)
}

// CreditCustomer looks up one customer by id.
func (s *Store) CreditCustomer(id string) (model.CreditCustomer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.creditCustomers {
		if c.ID == id {
			return c, true
		}
	}
	return model.CreditCustomer{}, false
}
