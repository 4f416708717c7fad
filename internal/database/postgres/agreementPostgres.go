package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type agreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Create(ctx context.Context, agreement *entity.Agreement) error {
	query := `
		INSERT INTO agreements (booking_id, file_name, stored_path, mime_type, size_bytes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		agreement.BookingID,
		agreement.FileName,
		agreement.StoredPath,
		agreement.MimeType,
		agreement.SizeBytes,
		now,
	).Scan(&agreement.ID)

	if err != nil {
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	agreement.UploadedAt = now

	return nil
}

func (r *agreementRepository) GetByID(ctx context.Context, id int64) (*entity.Agreement, error) {
	query := `
		SELECT id, booking_id, file_name, stored_path, mime_type, size_bytes, uploaded_at
		FROM agreements
		WHERE id = $1
	`

	var agreement entity.Agreement
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&agreement.ID,
		&agreement.BookingID,
		&agreement.FileName,
		&agreement.StoredPath,
		&agreement.MimeType,
		&agreement.SizeBytes,
		&agreement.UploadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrAgreementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	return &agreement, nil
}

func (r *agreementRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]*entity.Agreement, error) {
	query := `
		SELECT id, booking_id, file_name, stored_path, mime_type, size_bytes, uploaded_at
		FROM agreements
		WHERE booking_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agreements: %w", err)
	}
	defer rows.Close()

	var agreements []*entity.Agreement
	for rows.Next() {
		var agreement entity.Agreement
		err := rows.Scan(
			&agreement.ID,
			&agreement.BookingID,
			&agreement.FileName,
			&agreement.StoredPath,
			&agreement.MimeType,
			&agreement.SizeBytes,
			&agreement.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		agreements = append(agreements, &agreement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agreements: %w", err)
	}

	return agreements, nil
}

func (r *agreementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM agreements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agreement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrAgreementNotFound
	}

	return nil
}
