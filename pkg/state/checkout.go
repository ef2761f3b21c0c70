package state

import (
	"github.com/shopspring/decimal"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

// CheckoutRequest selects how the current cart is paid.
type CheckoutRequest struct {
	PaymentMethod    string
	CreditCustomerID string
}

// Checkout turns the cart into a completed transaction: it records the
// sale locally, queues it for sync, on credit sales adjusts the
// customer balance (locally and as a queued update), and clears the
// cart. Validation failures leave state and queue untouched. Receipt
// printing is the caller's concern.
func (s *Store) Checkout(req CheckoutRequest) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.PaymentMethod == "" {
		return model.Transaction{}, ErrNoPaymentMethod
	}
	if len(s.cart) == 0 {
		return model.Transaction{}, ErrEmptyCart
	}

	var customer *model.CreditCustomer
	if req.PaymentMethod == model.PayCredit {
		for i := range s.creditCustomers {
			if s.creditCustomers[i].ID == req.CreditCustomerID {
				customer = &s.creditCustomers[i]
				break
			}
		}
		if customer == nil {
			return model.Transaction{}, ErrCustomerNotFound
		}
	}

	items := make([]model.SaleItem, 0, len(s.cart))
	total := decimal.Zero
	for _, line := range s.cart {
		items = append(items, model.SaleItem{Product: line.Product, Quantity: line.Quantity})
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tx := model.Transaction{
		ID:            model.NewTransactionID(),
		Items:         items,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Timestamp:     model.NowISO(),
		Status:        model.StatusCompleted,
	}
	if s.currentUser != nil {
		tx.CashierID = s.currentUser.ID
		tx.CashierName = s.currentUser.Name
		tx.Cashier = s.currentUser.Name
	}
	if customer != nil {
		tx.CreditCustomerID = customer.ID
		tx.CreditCustomer = customer.Name
		tx.CreditCustomerName = customer.Name
	}

	s.transactions = append([]model.Transaction{tx}, s.transactions...)
	s.enqueueLocked(model.NewTransactionOp(tx))

	if customer != nil {
		newBalance := customer.Balance.Add(total)
		customer.Balance = newBalance
		s.enqueueLocked(model.NewCustomerUpdateOp(customer.ID, model.CreditCustomerPatch{
			Balance: &newBalance,
		}))
	}

	s.cart = nil
	return tx, nil
}

// RecordExpense fills in id, timestamps and cashier attribution, stores
// the expense locally and queues it. description and amount are
// required.
func (s *Store) RecordExpense(description string, amount decimal.Decimal, category string) (model.Expense, error) {
	if description == "" || amount.IsZero() {
		return model.Expense{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := model.NowISO()
	e := model.Expense{
		ID:          model.NewExpenseID(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        now,
		Timestamp:   now,
	}
	if s.currentUser != nil {
		e.CashierID = s.currentUser.ID
		e.CashierName = s.currentUser.Name
		e.Cashier = s.currentUser.Name
	}

	s.expenses = append([]model.Expense{e}, s.expenses...)
	s.enqueueLocked(model.NewExpenseOp(e))
	return e, nil
}

// RecordSalary stores a salary payment locally and queues it.
func (s *Store) RecordSalary(employeeName string, amount decimal.Decimal, typ model.SalaryType, notes string) (model.Salary, error) {
	if employeeName == "" || amount.IsZero() {
		return model.Salary{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sal := model.Salary{
		ID:           model.NewSalaryID(),
		EmployeeName: employeeName,
		Amount:       amount,
		Date:         model.NowISO(),
		Type:         typ,
		Notes:        notes,
	}
	if s.currentUser != nil {
		sal.RecordedBy = s.currentUser.Name
	}

	s.salaries = append([]model.Salary{sal}, s.salaries...)
	s.enqueueLocked(model.NewSalaryOp(sal))
	return sal, nil
}

// RegisterCreditCustomer creates a customer with a zero balance, stores
// it locally and queues it under the given creation kind.
func (s *Store) RegisterCreditCustomer(kind model.OpKind, name, phone string) (model.CreditCustomer, error) {
	if name == "" || phone == "" {
		return model.CreditCustomer{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.CreditCustomer{
		ID:        model.NewCustomerID(),
		Name:      name,
		Phone:     phone,
		Balance:   decimal.Zero,
		CreatedAt: model.NowISO(),
	}
	s.creditCustomers = append(s.creditCustomers, c)
	s.enqueueLocked(model.NewCreditCustomerOp(kind, c))
	return c, nil
}
