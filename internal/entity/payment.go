package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusCompleted     PaymentStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID        int64           `json:"id" db:"id"`
	BookingID int64           `json:"booking_id" db:"booking_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    PaymentMethod   `json:"method" db:"method"`
	PaidAt    time.Time       `json:"paid_at" db:"paid_at"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// PaymentSummary агрегирует платежи бронирования и производный статус оплаты
type PaymentSummary struct {
	BookingID   int64           `json:"booking_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Remaining   decimal.Decimal `json:"remaining"`
	Status      PaymentStatus   `json:"status"`
	Payments    []*Payment      `json:"payments"`
}

// DeriveStatus вычисляет статус оплаты из соотношения оплачено/осталось
func DerivePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	if paid.GreaterThanOrEqual(total) && total.GreaterThan(decimal.Zero) {
		return PaymentStatusCompleted
	}
	if paid.GreaterThan(decimal.Zero) {
		return PaymentStatusPartiallyPaid
	}
	return PaymentStatusUnpaid
}
