package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/shopspring/decimal"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (
			hotel_id, name, board_type, purchase_price, base_price,
			alternative_price, use_alternative_rate, quantity, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		room.HotelID,
		room.Name,
		room.BoardType,
		room.PurchasePrice,
		room.BasePrice,
		room.AlternativePrice,
		room.UseAlternativeRate,
		room.Quantity,
		room.Active,
		now,
		now,
	).Scan(&room.ID)

	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `
		SELECT
			id, hotel_id, name, board_type, purchase_price, base_price,
			alternative_price, use_alternative_rate, quantity, active,
			created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	var altPrice decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.HotelID,
		&room.Name,
		&room.BoardType,
		&room.PurchasePrice,
		&room.BasePrice,
		&altPrice,
		&room.UseAlternativeRate,
		&room.Quantity,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if altPrice.Valid {
		room.AlternativePrice = &altPrice.Decimal
	}

	if err == sql.ErrNoRows {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}

func (r *roomRepository) GetByHotelID(ctx context.Context, hotelID int64, activeOnly bool) ([]*entity.Room, error) {
	query := `
		SELECT
			id, hotel_id, name, board_type, purchase_price, base_price,
			alternative_price, use_alternative_rate, quantity, active,
			created_at, updated_at
		FROM rooms
		WHERE hotel_id = $1
	`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms by hotel: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (r *roomRepository) GetActive(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT
			id, hotel_id, name, board_type, purchase_price, base_price,
			alternative_price, use_alternative_rate, quantity, active,
			created_at, updated_at
		FROM rooms
		WHERE active = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows *sql.Rows) ([]*entity.Room, error) {
	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		var altPrice decimal.NullDecimal
		err := rows.Scan(
			&room.ID,
			&room.HotelID,
			&room.Name,
			&room.BoardType,
			&room.PurchasePrice,
			&room.BasePrice,
			&altPrice,
			&room.UseAlternativeRate,
			&room.Quantity,
			&room.Active,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		if altPrice.Valid {
			room.AlternativePrice = &altPrice.Decimal
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, board_type = $2, purchase_price = $3, base_price = $4,
		    alternative_price = $5, use_alternative_rate = $6, quantity = $7,
		    active = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.ExecContext(ctx, query,
		room.Name,
		room.BoardType,
		room.PurchasePrice,
		room.BasePrice,
		room.AlternativePrice,
		room.UseAlternativeRate,
		room.Quantity,
		room.Active,
		time.Now(),
		room.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRoomNotFound
	}

	room.UpdatedAt = time.Now()
	return nil
}

// Deactivate мягко выводит номер из продажи, сохраняя ссылки из бронирований
func (r *roomRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE rooms SET active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}
