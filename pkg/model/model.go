// Package model defines the domain records of the POS terminal and the
// tagged operation union carried by the sync queue. Field names and JSON
// tags follow the wire shapes the desktop backend expects.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The desktop backend expects money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// User is a cashier or admin account synced from the server.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	PIN  string `json:"pin,omitempty"`
}

// Product is a sellable item. Products are server-authoritative and
// replaced wholesale on every pull.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Image    string          `json:"image,omitempty"`
	MinStock int             `json:"minStock,omitempty"`
}

// SaleItem pairs a product snapshot with a quantity, the line shape the
// desktop expects inside a transaction.
type SaleItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Payment methods accepted at checkout.
const (
	PayCash   = "cash"
	PayMpesa  = "mpesa"
	PayCredit = "credit"
)

// Transaction is one completed sale.
type Transaction struct {
	ID                 string          `json:"id"`
	Items              []SaleItem      `json:"items"`
	Total              decimal.Decimal `json:"total"`
	PaymentMethod      string          `json:"paymentMethod"`
	Timestamp          string          `json:"timestamp"`
	CashierID          string          `json:"cashierId,omitempty"`
	CashierName        string          `json:"cashierName,omitempty"`
	// Cashier duplicates CashierName for the desktop print templates.
	Cashier            string          `json:"cashier,omitempty"`
	CreditCustomerID   string          `json:"creditCustomerId,omitempty"`
	CreditCustomer     string          `json:"creditCustomer,omitempty"`
	CreditCustomerName string          `json:"creditCustomerName,omitempty"`
	Status             string          `json:"status"`
}

// StatusCompleted is the only status this terminal produces.
const StatusCompleted = "completed"

// Expense is a cash outflow recorded at the terminal.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	// Timestamp duplicates Date; the desktop reads "timestamp".
	Timestamp   string          `json:"timestamp"`
	CashierID   string          `json:"cashierId,omitempty"`
	CashierName string          `json:"cashierName,omitempty"`
	Cashier     string          `json:"cashier,omitempty"`
}

// SalaryType distinguishes advances from full payments.
type SalaryType string

const (
	SalaryAdvance SalaryType = "advance"
	SalaryFull    SalaryType = "full"
)

// Salary is a wage payment recorded at the terminal.
type Salary struct {
	ID           string          `json:"id"`
	EmployeeName string          `json:"employeeName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Type         SalaryType      `json:"type"`
	Notes        string          `json:"notes,omitempty"`
	RecordedBy   string          `json:"recordedBy,omitempty"`
}

// CreditCustomer is a customer buying on credit. Balance is the amount
// currently owed.
type CreditCustomer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

// CreditCustomerPatch is a shallow update applied to a stored customer.
// Nil fields are left untouched.
type CreditCustomerPatch struct {
	Name    *string          `json:"name,omitempty"`
	Phone   *string          `json:"phone,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
	Notes   *string          `json:"notes,omitempty"`
}

// Apply copies the non-nil patch fields onto c.
func (p CreditCustomerPatch) Apply(c *CreditCustomer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Balance != nil {
		c.Balance = *p.Balance
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

// CartLine is a product in the cart. CartID identifies the line itself,
// independent of the product id, and Quantity is always >= 1 while the
// line exists.
type CartLine struct {
	Product
	CartID   string `json:"cartId"`
	Quantity int    `json:"quantity"`
}

// ConnectionSettings describes the configured backend endpoint. Sync is
// inert until APIURL is set and IsConnected is true.
type ConnectionSettings struct {
	APIURL      string `json:"apiUrl"`
	APIKey      string `json:"apiKey"`
	IsConnected bool   `json:"isConnected"`
}

// ConnectionPatch shallow-merges into ConnectionSettings.
type ConnectionPatch struct {
	APIURL      *string
	APIKey      *string
	IsConnected *bool
}

// NowISO returns the current UTC time in the millisecond ISO-8601 form
// the rest of the fleet stores timestamps in.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
