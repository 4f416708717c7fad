package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// ensureSlotQuery досоздает слот из rooms.quantity, если строки на дату нет.
// За пределами засеянного окна слот появляется лениво при первом обращении.
const ensureSlotQuery = `
	INSERT INTO availability_slots (room_id, date, available_count, blocked_count)
	SELECT r.id, $2, r.quantity, 0
	FROM rooms r
	WHERE r.id = $1
	ON CONFLICT (room_id, date) DO NOTHING
`

// reserveSlotQuery делает проверку остатка и списание одним оператором,
// read-modify-write исключен
const reserveSlotQuery = `
	UPDATE availability_slots
	SET available_count = available_count - $3
	WHERE room_id = $1 AND date = $2 AND available_count - blocked_count >= $3
`

const releaseSlotQuery = `
	UPDATE availability_slots
	SET available_count = available_count + $3
	WHERE room_id = $1 AND date = $2
`

func (r *availabilityRepository) GetSlot(ctx context.Context, roomID int64, date entity.DateOnly) (*entity.AvailabilitySlot, error) {
	query := `
		SELECT room_id, date, available_count, blocked_count
		FROM availability_slots
		WHERE room_id = $1 AND date = $2
	`

	var slot entity.AvailabilitySlot
	err := r.db.QueryRowContext(ctx, query, roomID, date).Scan(
		&slot.RoomID,
		&slot.Date,
		&slot.AvailableCount,
		&slot.BlockedCount,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability slot: %w", err)
	}

	return &slot, nil
}

func (r *availabilityRepository) GetRange(ctx context.Context, roomID int64, from, to entity.DateOnly) ([]*entity.AvailabilitySlot, error) {
	query := `
		SELECT room_id, date, available_count, blocked_count
		FROM availability_slots
		WHERE room_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, roomID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.AvailabilitySlot
	for rows.Next() {
		var slot entity.AvailabilitySlot
		err := rows.Scan(
			&slot.RoomID,
			&slot.Date,
			&slot.AvailableCount,
			&slot.BlockedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability slots: %w", err)
	}

	return slots, nil
}

// Reserve списывает count юнитов на каждую дату [checkIn, checkOut).
// Любая дата с недостаточным остатком откатывает всю транзакцию
func (r *availabilityRepository) Reserve(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := reserveDates(ctx, tx, roomID, checkIn, checkOut, count); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// reserveDates выполняет декремент по датам на переданной транзакции;
// используется и бронированием, чтобы резерв и вставка были одним коммитом
func reserveDates(ctx context.Context, tx *sql.Tx, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	return checkIn.EachDay(checkOut, func(date entity.DateOnly) error {
		if _, err := tx.ExecContext(ctx, ensureSlotQuery, roomID, date); err != nil {
			return fmt.Errorf("failed to ensure slot for %s: %w", date, err)
		}

		result, err := tx.ExecContext(ctx, reserveSlotQuery, roomID, date, count)
		if err != nil {
			return fmt.Errorf("failed to reserve slot for %s: %w", date, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return entity.ErrInsufficientAvailability
		}

		return nil
	})
}

func (r *availabilityRepository) Release(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := releaseDates(ctx, tx, roomID, checkIn, checkOut, count); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func releaseDates(ctx context.Context, tx *sql.Tx, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	return checkIn.EachDay(checkOut, func(date entity.DateOnly) error {
		if _, err := tx.ExecContext(ctx, releaseSlotQuery, roomID, date, count); err != nil {
			return fmt.Errorf("failed to release slot for %s: %w", date, err)
		}
		return nil
	})
}

// Block административно выводит юниты из продажи на дату
func (r *availabilityRepository) Block(ctx context.Context, roomID int64, date entity.DateOnly, count int) error {
	if _, err := r.db.ExecContext(ctx, ensureSlotQuery, roomID, date); err != nil {
		return fmt.Errorf("failed to ensure slot for %s: %w", date, err)
	}

	query := `
		UPDATE availability_slots
		SET blocked_count = blocked_count + $3
		WHERE room_id = $1 AND date = $2 AND available_count - blocked_count >= $3
	`

	result, err := r.db.ExecContext(ctx, query, roomID, date, count)
	if err != nil {
		return fmt.Errorf("failed to block slot for %s: %w", date, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrInsufficientAvailability
	}

	return nil
}

func (r *availabilityRepository) Unblock(ctx context.Context, roomID int64, date entity.DateOnly, count int) error {
	query := `
		UPDATE availability_slots
		SET blocked_count = blocked_count - $3
		WHERE room_id = $1 AND date = $2 AND blocked_count >= $3
	`

	result, err := r.db.ExecContext(ctx, query, roomID, date, count)
	if err != nil {
		return fmt.Errorf("failed to unblock slot for %s: %w", date, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrInvalidInput
	}

	return nil
}

// EnsureWindow досоздает отсутствующие слоты на days дней вперед от from
func (r *availabilityRepository) EnsureWindow(ctx context.Context, roomID int64, from entity.DateOnly, days int) error {
	query := `
		INSERT INTO availability_slots (room_id, date, available_count, blocked_count)
		SELECT r.id, d.date::date, r.quantity, 0
		FROM rooms r,
		     generate_series($2::date, $2::date + ($3 - 1) * interval '1 day', interval '1 day') AS d(date)
		WHERE r.id = $1
		ON CONFLICT (room_id, date) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, roomID, from, days); err != nil {
		return fmt.Errorf("failed to ensure availability window: %w", err)
	}

	return nil
}
