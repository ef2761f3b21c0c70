package state

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

func TestCategoryDerivation(t *testing.T) {
	s := New()
	s.SetProducts([]model.Product{
		{ID: "P1", Category: "A"},
		{ID: "P2", Category: "A"},
		{ID: "P3", Category: "B"},
		{ID: "P4", Category: ""},
	})

	got := s.Categories()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("categories = %v, want [A B]", got)
	}

	// Replacing the catalog recomputes, never accumulates.
	s.SetProducts([]model.Product{{ID: "P5", Category: "C"}})
	got = s.Categories()
	if len(got) != 1 || got[0] != "C" {
		t.Errorf("categories after replace = %v, want [C]", got)
	}
}

func TestSetConnectionShallowMerge(t *testing.T) {
	s := New()
	url := "http://192.168.0.2:3000"
	key := "secret"
	s.SetConnection(model.ConnectionPatch{APIURL: &url, APIKey: &key})

	connected := true
	s.SetConnection(model.ConnectionPatch{IsConnected: &connected})

	conn := s.Connection()
	if conn.APIURL != url || conn.APIKey != key || !conn.IsConnected {
		t.Errorf("connection = %+v, merge lost fields", conn)
	}
}

func TestLoginWithPIN(t *testing.T) {
	s := New()
	s.SetUsers([]model.User{{ID: "U1", Name: "Jane", Role: "admin", PIN: "1234"}})

	if _, err := s.LoginWithPIN("U1", "0000"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("wrong PIN: err = %v, want ErrPINMismatch", err)
	}
	if _, ok := s.CurrentUser(); ok {
		t.Fatal("failed login must not set the current user")
	}

	if _, err := s.LoginWithPIN("U2", "1234"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: err = %v, want ErrUserNotFound", err)
	}

	u, err := s.LoginWithPIN("U1", "1234")
	if err != nil {
		t.Fatalf("LoginWithPIN failed: %v", err)
	}
	if u.Name != "Jane" {
		t.Errorf("logged in user = %+v", u)
	}
	if s.LastLoggedUserID() != "U1" {
		t.Errorf("lastLoggedUserID = %q, want U1", s.LastLoggedUserID())
	}

	s.Logout()
	if _, ok := s.CurrentUser(); ok {
		t.Error("logout must clear the current user")
	}
	if s.LastLoggedUserID() != "U1" {
		t.Error("logout must keep lastLoggedUserID")
	}

	s.ClearLastLoggedUser()
	if s.LastLoggedUserID() != "" {
		t.Error("ClearLastLoggedUser left the hint behind")
	}
}

func TestUpdateCreditCustomer(t *testing.T) {
	s := New()
	s.AddCreditCustomer(model.CreditCustomer{ID: "C1", Name: "Ali", Balance: decimal.NewFromInt(100)})

	newBalance := decimal.NewFromInt(600)
	s.UpdateCreditCustomer("C1", model.CreditCustomerPatch{Balance: &newBalance})

	c, ok := s.CreditCustomer("C1")
	if !ok {
		t.Fatal("customer disappeared")
	}
	if !c.Balance.Equal(newBalance) {
		t.Errorf("balance = %s, want 600", c.Balance)
	}

	// Unknown id is a silent no-op.
	s.UpdateCreditCustomer("C9", model.CreditCustomerPatch{Balance: &newBalance})
	if len(s.CreditCustomers()) != 1 {
		t.Error("no-op update must not create records")
	}
}

func TestAddRecordsOrdering(t *testing.T) {
	s := New()
	s.AddTransaction(model.Transaction{ID: "T1"})
	s.AddTransaction(model.Transaction{ID: "T2"})
	txs := s.Transactions()
	if txs[0].ID != "T2" {
		t.Errorf("newest transaction should be first, got %v", txs)
	}

	s.AddCreditCustomer(model.CreditCustomer{ID: "C1"})
	s.AddCreditCustomer(model.CreditCustomer{ID: "C2"})
	customers := s.CreditCustomers()
	if customers[1].ID != "C2" {
		t.Errorf("customers append in order, got %v", customers)
	}
}
