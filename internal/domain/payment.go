package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type PaymentRecord struct {
	ID            string
	Amount        decimal.Decimal
	Method        string
	Status        PaymentStatus
	PaidAt        time.Time
	GuardianID    string
	GuardianName  string
	ReferenceType string // consultation, appointment, product
}
