package transport

import "github.com/twoem/whiz-pos-apk/pkg/model"

// PullResponse is the full server snapshot. Every field is optional; a
// nil slice means the server omitted the collection and local state
// must be left alone.
type PullResponse struct {
	Products        []model.Product        `json:"products"`
	Categories      []string               `json:"categories"`
	Users           []model.User           `json:"users"`
	Transactions    []model.Transaction    `json:"transactions"`
	Expenses        []model.Expense        `json:"expenses"`
	Salaries        []model.Salary         `json:"salaries"`
	CreditCustomers []model.CreditCustomer `json:"creditCustomers"`
}

type pushRequest struct {
	Operations []model.Operation `json:"operations"`
}

// PushResult reports whether the server accepted the pushed queue.
type PushResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type printRequest struct {
	Transaction model.Transaction `json:"transaction"`
}
