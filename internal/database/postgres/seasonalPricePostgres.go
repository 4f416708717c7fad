package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type seasonalPriceRepository struct {
	db *sql.DB
}

func NewSeasonalPriceRepository(db *sql.DB) SeasonalPriceRepository {
	return &seasonalPriceRepository{db: db}
}

func (r *seasonalPriceRepository) Create(ctx context.Context, price *entity.SeasonalPrice) error {
	query := `
		INSERT INTO seasonal_prices (room_id, start_date, end_date, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		price.RoomID,
		price.StartDate,
		price.EndDate,
		price.Price,
		now,
	).Scan(&price.ID)

	if err != nil {
		return fmt.Errorf("failed to create seasonal price: %w", err)
	}

	price.CreatedAt = now

	return nil
}

func (r *seasonalPriceRepository) GetByID(ctx context.Context, id int64) (*entity.SeasonalPrice, error) {
	query := `
		SELECT id, room_id, start_date, end_date, price, created_at
		FROM seasonal_prices
		WHERE id = $1
	`

	var price entity.SeasonalPrice
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&price.ID,
		&price.RoomID,
		&price.StartDate,
		&price.EndDate,
		&price.Price,
		&price.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrSeasonalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seasonal price: %w", err)
	}

	return &price, nil
}

// GetByRoomID возвращает сезонные цены номера в порядке убывания приоритета:
// при пересечении интервалов побеждает первая строка выборки
func (r *seasonalPriceRepository) GetByRoomID(ctx context.Context, roomID int64) ([]*entity.SeasonalPrice, error) {
	query := `
		SELECT id, room_id, start_date, end_date, price, created_at
		FROM seasonal_prices
		WHERE room_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasonal prices: %w", err)
	}
	defer rows.Close()

	var prices []*entity.SeasonalPrice
	for rows.Next() {
		var price entity.SeasonalPrice
		err := rows.Scan(
			&price.ID,
			&price.RoomID,
			&price.StartDate,
			&price.EndDate,
			&price.Price,
			&price.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seasonal price: %w", err)
		}
		prices = append(prices, &price)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasonal prices: %w", err)
	}

	return prices, nil
}

func (r *seasonalPriceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasonal_prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete seasonal price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrSeasonalNotFound
	}

	return nil
}
