package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction directions as reported by the core service.
const (
	DirectionCredit = "CREDIT"
	DirectionDebit  = "DEBIT"
)

// Transaction represents a single bank transaction fetched from the
// core service. Amount is a non-negative magnitude; Direction decides
// whether it counts toward income or expenses.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Amount      float64
	Direction   string
	Category    string
	SubCategory string
	Description string
	Merchant    string
}
