package state

import "github.com/twoem/whiz-pos-apk/pkg/model"

// Merge rule for server-pulled collections that have a local-add flow:
// a local record survives the pull only while an add operation for its
// id is still queued AND the server has not yet returned that id. Once
// the server returns the id, its copy is authoritative and the local
// duplicate is dropped, even if the queue entry has not been removed
// yet — the removal happens after this merge, which is what closes the
// window where a just-pushed record could appear to vanish.
//
// Queued update operations are deliberately not reconciled field by
// field; a pending balance update can be transiently overwritten by a
// stale pull until its push is reflected by a later pull.

// SetTransactions merges the pulled transaction list.
func (s *Store) SetTransactions(server []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pendingIDsLocked(model.OpTransaction)
	s.transactions = mergePending(s.transactions, server, pending,
		func(t model.Transaction) string { return t.ID })
}

// SetExpenses merges the pulled expense list.
func (s *Store) SetExpenses(server []model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pendingIDsLocked(model.OpAddExpense)
	s.expenses = mergePending(s.expenses, server, pending,
		func(e model.Expense) string { return e.ID })
}

// SetSalaries merges the pulled salary list.
func (s *Store) SetSalaries(server []model.Salary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pendingIDsLocked(model.OpAddSalary)
	s.salaries = mergePending(s.salaries, server, pending,
		func(sal model.Salary) string { return sal.ID })
}

// SetCreditCustomers merges the pulled customer list. Both creation
// kinds count as pending adds.
func (s *Store) SetCreditCustomers(server []model.CreditCustomer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pendingIDsLocked(model.OpAddCreditCustomer, model.OpCreditCustomer)
	s.creditCustomers = mergePending(s.creditCustomers, server, pending,
		func(c model.CreditCustomer) string { return c.ID })
}

// pendingIDsLocked collects the record ids introduced by queued
// operations of the given kinds.
func (s *Store) pendingIDsLocked(kinds ...model.OpKind) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, op := range s.syncQueue {
		for _, k := range kinds {
			if op.Kind != k {
				continue
			}
			if id := op.PendingID(); id != "" {
				ids[id] = struct{}{}
			}
		}
	}
	return ids
}

// mergePending keeps local records whose id is pending and absent from
// the server collection, placed ahead of the full server collection so
// unacknowledged entries stay visible at the top.
func mergePending[T any](local, server []T, pending map[string]struct{}, id func(T) string) []T {
	serverIDs := make(map[string]struct{}, len(server))
	for _, rec := range server {
		serverIDs[id(rec)] = struct{}{}
	}

	var out []T
	for _, rec := range local {
		recID := id(rec)
		if _, isPending := pending[recID]; !isPending {
			continue
		}
		if _, onServer := serverIDs[recID]; onServer {
			continue
		}
		out = append(out, rec)
	}
	return append(out, server...)
}
