package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Short receipt-style ids keep the prefix the desktop groups records by.

// NewTransactionID returns a MOBREC id: the prefix plus the last six
// digits of the current unix-millisecond clock.
func NewTransactionID() string {
	return "MOBREC" + lastDigits(6)
}

// NewExpenseID returns an EXP-prefixed short id.
func NewExpenseID() string {
	return "EXP" + lastDigits(6)
}

// NewSalaryID returns a SAL id carrying the full millisecond clock.
func NewSalaryID() string {
	return "SAL" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewCustomerID returns a random customer id.
func NewCustomerID() string {
	return uuid.NewString()
}

// NewQueueID returns a random queue-entry id. Queue ids are never
// derived from payload content.
func NewQueueID() string {
	return uuid.NewString()
}

// NewCartID returns a random cart-line id.
func NewCartID() string {
	return uuid.NewString()
}

func lastDigits(n int) string {
	s := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
