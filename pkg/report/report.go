// Package report aggregates the day's sales for the reports screen.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

// CashierSales is one cashier's share of the day.
type CashierSales struct {
	Name  string
	Role  string
	Total decimal.Decimal
	Count int
}

// DailyReport summarizes one day's completed transactions.
type DailyReport struct {
	Date       string
	TotalSales decimal.Decimal
	Count      int
	ByMethod   map[string]decimal.Decimal
	ByCashier  []CashierSales
}

// Daily filters transactions to the given day's completed sales and
// totals them overall, per payment method, and per cashier. Cashiers
// with no sales are listed only when they are admins.
func Daily(transactions []model.Transaction, users []model.User, day time.Time) DailyReport {
	date := day.Format("2006-01-02")

	var todays []model.Transaction
	for _, tx := range transactions {
		if tx.Status == model.StatusCompleted && strings.HasPrefix(tx.Timestamp, date) {
			todays = append(todays, tx)
		}
	}

	rep := DailyReport{
		Date:       date,
		TotalSales: decimal.Zero,
		Count:      len(todays),
		ByMethod: map[string]decimal.Decimal{
			model.PayCash:   decimal.Zero,
			model.PayMpesa:  decimal.Zero,
			model.PayCredit: decimal.Zero,
		},
	}

	for _, tx := range todays {
		rep.TotalSales = rep.TotalSales.Add(tx.Total)
		rep.ByMethod[tx.PaymentMethod] = rep.ByMethod[tx.PaymentMethod].Add(tx.Total)
	}

	for _, u := range users {
		sales := CashierSales{Name: u.Name, Role: u.Role, Total: decimal.Zero}
		for _, tx := range todays {
			if tx.CashierName == u.Name || tx.CashierID == u.ID {
				sales.Total = sales.Total.Add(tx.Total)
				sales.Count++
			}
		}
		if sales.Total.IsPositive() || u.Role == "admin" {
			rep.ByCashier = append(rep.ByCashier, sales)
		}
	}

	return rep
}
