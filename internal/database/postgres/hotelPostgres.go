package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/lib/pq"
)

type hotelRepository struct {
	db *sql.DB
}

func NewHotelRepository(db *sql.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (code, name, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		hotel.Code,
		hotel.Name,
		hotel.Address,
		hotel.Active,
		now,
		now,
	).Scan(&hotel.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return entity.ErrHotelCodeExists
	}
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	return nil
}

func (r *hotelRepository) GetByID(ctx context.Context, id int64) (*entity.Hotel, error) {
	query := `
		SELECT id, code, name, address, active, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`

	var hotel entity.Hotel
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&hotel.ID,
		&hotel.Code,
		&hotel.Name,
		&hotel.Address,
		&hotel.Active,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	return &hotel, nil
}

func (r *hotelRepository) GetByCode(ctx context.Context, code string) (*entity.Hotel, error) {
	query := `
		SELECT id, code, name, address, active, created_at, updated_at
		FROM hotels
		WHERE code = $1
	`

	var hotel entity.Hotel
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&hotel.ID,
		&hotel.Code,
		&hotel.Name,
		&hotel.Address,
		&hotel.Active,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel by code: %w", err)
	}

	return &hotel, nil
}

func (r *hotelRepository) GetAll(ctx context.Context, activeOnly bool) ([]*entity.Hotel, error) {
	query := `
		SELECT id, code, name, address, active, created_at, updated_at
		FROM hotels
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*entity.Hotel
	for rows.Next() {
		var hotel entity.Hotel
		err := rows.Scan(
			&hotel.ID,
			&hotel.Code,
			&hotel.Name,
			&hotel.Address,
			&hotel.Active,
			&hotel.CreatedAt,
			&hotel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, &hotel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hotels: %w", err)
	}

	return hotels, nil
}

func (r *hotelRepository) Update(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		UPDATE hotels
		SET code = $1, name = $2, address = $3, active = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		hotel.Code,
		hotel.Name,
		hotel.Address,
		hotel.Active,
		time.Now(),
		hotel.ID,
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return entity.ErrHotelCodeExists
	}
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrHotelNotFound
	}

	hotel.UpdatedAt = time.Now()
	return nil
}

func (r *hotelRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM hotels WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrHotelNotFound
	}

	return nil
}

func (r *hotelRepository) CountBookings(ctx context.Context, hotelID int64) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE hotel_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, hotelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count hotel bookings: %w", err)
	}
	return count, nil
}
