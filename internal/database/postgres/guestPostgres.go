package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type guestRepository struct {
	db *sql.DB
}

func NewGuestRepository(db *sql.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	query := `
		INSERT INTO guests (full_name, email, phone, document_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		guest.FullName,
		guest.Email,
		guest.Phone,
		guest.DocumentNumber,
		now,
		now,
	).Scan(&guest.ID)

	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}

	guest.CreatedAt = now
	guest.UpdatedAt = now

	return nil
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*entity.Guest, error) {
	query := `
		SELECT id, full_name, email, phone, document_number, created_at, updated_at
		FROM guests
		WHERE id = $1
	`

	var guest entity.Guest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&guest.ID,
		&guest.FullName,
		&guest.Email,
		&guest.Phone,
		&guest.DocumentNumber,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	return &guest, nil
}

func (r *guestRepository) GetAll(ctx context.Context) ([]*entity.Guest, error) {
	query := `
		SELECT id, full_name, email, phone, document_number, created_at, updated_at
		FROM guests
		ORDER BY full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	return scanGuests(rows)
}

// SearchByName выполняет регистронезависимый поиск гостей по подстроке имени
func (r *guestRepository) SearchByName(ctx context.Context, name string) ([]*entity.Guest, error) {
	query := `
		SELECT id, full_name, email, phone, document_number, created_at, updated_at
		FROM guests
		WHERE full_name ILIKE '%' || $1 || '%'
		ORDER BY full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	defer rows.Close()

	return scanGuests(rows)
}

func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	query := `
		UPDATE guests
		SET full_name = $1, email = $2, phone = $3, document_number = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		guest.FullName,
		guest.Email,
		guest.Phone,
		guest.DocumentNumber,
		time.Now(),
		guest.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrGuestNotFound
	}

	return nil
}

func scanGuests(rows *sql.Rows) ([]*entity.Guest, error) {
	var guests []*entity.Guest
	for rows.Next() {
		var guest entity.Guest
		err := rows.Scan(
			&guest.ID,
			&guest.FullName,
			&guest.Email,
			&guest.Phone,
			&guest.DocumentNumber,
			&guest.CreatedAt,
			&guest.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, &guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guests: %w", err)
	}

	return guests, nil
}
