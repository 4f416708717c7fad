package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create резервирует слоты доступности и вставляет бронирование в одной
// транзакции: отказ по любой дате диапазона откатывает все целиком
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := reserveDates(ctx, tx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.RoomsCount); err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (
			hotel_id, room_id, guest_id, check_in, check_out, nights,
			rooms_count, rate, use_alternative_rate, total_amount, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		booking.HotelID,
		booking.RoomID,
		booking.GuestID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Nights,
		booking.RoomsCount,
		booking.Rate,
		booking.UseAlternativeRate,
		booking.TotalAmount,
		booking.Status,
		now,
		now,
	).Scan(&booking.ID)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `
		SELECT
			id, hotel_id, room_id, guest_id, check_in, check_out, nights,
			rooms_count, rate, use_alternative_rate, total_amount, status,
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.HotelID,
		&booking.RoomID,
		&booking.GuestID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Nights,
		&booking.RoomsCount,
		&booking.Rate,
		&booking.UseAlternativeRate,
		&booking.TotalAmount,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// List возвращает страницу бронирований по фильтру и общее число подходящих строк
func (r *bookingRepository) List(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argN := 1

	addArg := func(clause string, value interface{}) {
		where += fmt.Sprintf(clause, argN)
		args = append(args, value)
		argN++
	}

	if filter.HotelID != 0 {
		addArg(` AND hotel_id = $%d`, filter.HotelID)
	}
	if filter.RoomID != 0 {
		addArg(` AND room_id = $%d`, filter.RoomID)
	}
	if filter.GuestID != 0 {
		addArg(` AND guest_id = $%d`, filter.GuestID)
	}
	if filter.Status != "" {
		addArg(` AND status = $%d`, filter.Status)
	}
	if filter.DateFrom != nil {
		addArg(` AND check_out > $%d`, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(` AND check_in < $%d`, *filter.DateTo)
	}

	countQuery := `SELECT COUNT(*) FROM bookings` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id, hotel_id, room_id, guest_id, check_in, check_out, nights,
			rooms_count, rate, use_alternative_rate, total_amount, status,
			created_at, updated_at
		FROM bookings` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argN, argN+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.HotelID,
			&booking.RoomID,
			&booking.GuestID,
			&booking.CheckIn,
			&booking.CheckOut,
			&booking.Nights,
			&booking.RoomsCount,
			&booking.Rate,
			&booking.UseAlternativeRate,
			&booking.TotalAmount,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

// CancelWithRelease меняет статус на cancelled и возвращает слоты доступности
// в одной транзакции; строка бронирования блокируется FOR UPDATE
func (r *bookingRepository) CancelWithRelease(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT room_id, check_in, check_out, rooms_count, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var booking entity.Booking
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&booking.RoomID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.RoomsCount,
		&booking.Status,
	)
	if err == sql.ErrNoRows {
		return entity.ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get booking for cancellation: %w", err)
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return entity.ErrInvalidStatusTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		entity.BookingStatusCancelled, time.Now(), id,
	); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if err := releaseDates(ctx, tx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.RoomsCount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetStaleBookings возвращает pending-бронирования с датой заезда раньше before
func (r *bookingRepository) GetStaleBookings(ctx context.Context, before entity.DateOnly) ([]*entity.StaleBooking, error) {
	query := `
		SELECT
			b.id, b.room_id, b.guest_id, b.check_in, b.check_out, b.rooms_count,
			g.full_name as guest_name,
			h.name as hotel_name
		FROM bookings b
		JOIN guests g ON b.guest_id = g.id
		JOIN hotels h ON b.hotel_id = h.id
		WHERE b.status = 'pending' AND b.check_in < $1
		ORDER BY b.check_in ASC
	`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.StaleBooking
	for rows.Next() {
		var booking entity.StaleBooking
		err := rows.Scan(
			&booking.BookingID,
			&booking.RoomID,
			&booking.GuestID,
			&booking.CheckIn,
			&booking.CheckOut,
			&booking.RoomsCount,
			&booking.GuestName,
			&booking.HotelName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stale bookings: %w", err)
	}

	return bookings, nil
}

// GetHotelStats возвращает статистику бронирований по отелю
func (r *bookingRepository) GetHotelStats(ctx context.Context, hotelID int64) (*entity.HotelBookingStats, error) {
	query := `
		SELECT
			COUNT(*) as total_bookings,
			COUNT(*) FILTER (WHERE status = 'pending') as pending_count,
			COUNT(*) FILTER (WHERE status = 'confirmed') as confirmed_count,
			COUNT(*) FILTER (WHERE status = 'checked_in') as checked_in_count,
			COUNT(*) FILTER (WHERE status = 'checked_out') as checked_out_count,
			COUNT(*) FILTER (WHERE status = 'cancelled') as cancelled_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('confirmed', 'checked_in', 'checked_out')), 0) as revenue
		FROM bookings
		WHERE hotel_id = $1
	`

	stats := entity.HotelBookingStats{HotelID: hotelID}
	err := r.db.QueryRowContext(ctx, query, hotelID).Scan(
		&stats.TotalBookings,
		&stats.PendingCount,
		&stats.ConfirmedCount,
		&stats.CheckedInCount,
		&stats.CheckedOutCount,
		&stats.CancelledCount,
		&stats.Revenue,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get hotel booking stats: %w", err)
	}

	return &stats, nil
}
