package model

import (
	"encoding/json"
	"fmt"
)

// OpKind tags a sync-queue operation. The strings are consumed verbatim
// by the desktop push endpoint.
type OpKind string

const (
	OpTransaction          OpKind = "transaction"
	OpAddExpense           OpKind = "add-expense"
	OpAddSalary            OpKind = "add-salary"
	OpAddCreditCustomer    OpKind = "add-credit-customer"
	OpCreditCustomer       OpKind = "credit-customer"
	OpUpdateCreditCustomer OpKind = "update-credit-customer"
)

// CustomerUpdate is the payload of an update-credit-customer operation:
// the target id plus a shallow patch.
type CustomerUpdate struct {
	ID      string              `json:"id"`
	Updates CreditCustomerPatch `json:"updates"`
}

// Operation is one unsent local mutation awaiting server acknowledgment.
// Exactly one payload field is set, matching Kind. QueueID is assigned
// once at enqueue time and is the sole key used for later removal.
type Operation struct {
	Kind    OpKind `json:"-"`
	QueueID string `json:"-"`

	Transaction    *Transaction    `json:"-"`
	Expense        *Expense        `json:"-"`
	Salary         *Salary         `json:"-"`
	CreditCustomer *CreditCustomer `json:"-"`
	CustomerUpdate *CustomerUpdate `json:"-"`
}

// NewTransactionOp wraps a completed sale.
func NewTransactionOp(tx Transaction) Operation {
	return Operation{Kind: OpTransaction, Transaction: &tx}
}

// NewExpenseOp wraps a recorded expense.
func NewExpenseOp(e Expense) Operation {
	return Operation{Kind: OpAddExpense, Expense: &e}
}

// NewSalaryOp wraps a recorded salary payment.
func NewSalaryOp(s Salary) Operation {
	return Operation{Kind: OpAddSalary, Salary: &s}
}

// NewCreditCustomerOp wraps a newly created customer. kind must be
// OpAddCreditCustomer or OpCreditCustomer; the two map to the same
// backend handler but originate from different screens.
func NewCreditCustomerOp(kind OpKind, c CreditCustomer) Operation {
	if kind != OpAddCreditCustomer && kind != OpCreditCustomer {
		kind = OpAddCreditCustomer
	}
	return Operation{Kind: kind, CreditCustomer: &c}
}

// NewCustomerUpdateOp wraps a balance or detail adjustment for an
// existing customer.
func NewCustomerUpdateOp(id string, patch CreditCustomerPatch) Operation {
	return Operation{Kind: OpUpdateCreditCustomer, CustomerUpdate: &CustomerUpdate{ID: id, Updates: patch}}
}

// PendingID returns the record id an add-style operation introduces into
// its collection, or "" for operations that do not create a record.
// The merge uses these ids to keep unacknowledged local records alive
// across pulls.
func (o Operation) PendingID() string {
	switch o.Kind {
	case OpTransaction:
		if o.Transaction != nil {
			return o.Transaction.ID
		}
	case OpAddExpense:
		if o.Expense != nil {
			return o.Expense.ID
		}
	case OpAddSalary:
		if o.Salary != nil {
			return o.Salary.ID
		}
	case OpAddCreditCustomer, OpCreditCustomer:
		if o.CreditCustomer != nil {
			return o.CreditCustomer.ID
		}
	case OpUpdateCreditCustomer:
		// Updates target an existing record, they introduce nothing.
	}
	return ""
}

func (o Operation) payload() (any, error) {
	switch o.Kind {
	case OpTransaction:
		return o.Transaction, nil
	case OpAddExpense:
		return o.Expense, nil
	case OpAddSalary:
		return o.Salary, nil
	case OpAddCreditCustomer, OpCreditCustomer:
		return o.CreditCustomer, nil
	case OpUpdateCreditCustomer:
		return o.CustomerUpdate, nil
	default:
		return nil, fmt.Errorf("unknown operation kind %q", o.Kind)
	}
}

// opWrapper is the wire form: type tag, raw payload, queue id.
type opWrapper struct {
	Type    OpKind          `json:"type"`
	Data    json.RawMessage `json:"data"`
	QueueID string          `json:"_queueId,omitempty"`
}

func (o Operation) MarshalJSON() ([]byte, error) {
	p, err := o.payload()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(opWrapper{Type: o.Kind, Data: data, QueueID: o.QueueID})
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var w opWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Operation{Kind: w.Type, QueueID: w.QueueID}
	switch w.Type {
	case OpTransaction:
		out.Transaction = &Transaction{}
		if err := json.Unmarshal(w.Data, out.Transaction); err != nil {
			return err
		}
	case OpAddExpense:
		out.Expense = &Expense{}
		if err := json.Unmarshal(w.Data, out.Expense); err != nil {
			return err
		}
	case OpAddSalary:
		out.Salary = &Salary{}
		if err := json.Unmarshal(w.Data, out.Salary); err != nil {
			return err
		}
	case OpAddCreditCustomer, OpCreditCustomer:
		out.CreditCustomer = &CreditCustomer{}
		if err := json.Unmarshal(w.Data, out.CreditCustomer); err != nil {
			return err
		}
	case OpUpdateCreditCustomer:
		out.CustomerUpdate = &CustomerUpdate{}
		if err := json.Unmarshal(w.Data, out.CustomerUpdate); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown operation kind %q", w.Type)
	}

	*o = out
	return nil
}
