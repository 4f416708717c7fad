package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount, method, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}

	err := r.db.QueryRowContext(ctx, query,
		payment.BookingID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
		now,
	).Scan(&payment.ID)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	payment.CreatedAt = now

	return nil
}

func (r *paymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error) {
	query := `
		SELECT id, booking_id, amount, method, paid_at, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY paid_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.Amount,
			&payment.Method,
			&payment.PaidAt,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

// SumByBookingID возвращает сумму всех платежей бронирования, ноль при отсутствии
func (r *paymentRepository) SumByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1`

	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	return sum, nil
}
