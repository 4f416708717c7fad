package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ds124wfegd/hotel-backoffice/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Read migration files and execute them
	// This is a simplified version - you might want to use a proper migration tool
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS hotels (
			id SERIAL PRIMARY KEY,
			code VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			address TEXT,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS rooms (
			id SERIAL PRIMARY KEY,
			hotel_id INTEGER REFERENCES hotels(id),
			name VARCHAR(255) NOT NULL,
			board_type VARCHAR(20) NOT NULL DEFAULT 'room_only',
			purchase_price NUMERIC(12,2) NOT NULL,
			base_price NUMERIC(12,2) NOT NULL,
			alternative_price NUMERIC(12,2),
			use_alternative_rate BOOLEAN DEFAULT FALSE,
			quantity INTEGER NOT NULL,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS guests (
			id SERIAL PRIMARY KEY,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(50),
			document_number VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS seasonal_prices (
			id SERIAL PRIMARY KEY,
			room_id INTEGER REFERENCES rooms(id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS availability_slots (
			room_id INTEGER REFERENCES rooms(id),
			date DATE NOT NULL,
			available_count INTEGER NOT NULL,
			blocked_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (room_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			hotel_id INTEGER REFERENCES hotels(id),
			room_id INTEGER REFERENCES rooms(id),
			guest_id INTEGER REFERENCES guests(id),
			check_in DATE NOT NULL,
			check_out DATE NOT NULL,
			nights INTEGER NOT NULL,
			rooms_count INTEGER NOT NULL,
			rate NUMERIC(12,2) NOT NULL,
			use_alternative_rate BOOLEAN DEFAULT FALSE,
			total_amount NUMERIC(12,2) NOT NULL,
			status VARCHAR(20) DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			booking_id INTEGER REFERENCES bookings(id),
			amount NUMERIC(12,2) NOT NULL,
			method VARCHAR(20) NOT NULL,
			paid_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS agreements (
			id SERIAL PRIMARY KEY,
			booking_id INTEGER REFERENCES bookings(id),
			file_name VARCHAR(255) NOT NULL,
			stored_path TEXT NOT NULL,
			mime_type VARCHAR(100) NOT NULL,
			size_bytes BIGINT NOT NULL,
			uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_rooms_hotel_id ON rooms(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_seasonal_prices_room_id ON seasonal_prices(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_seasonal_prices_range ON seasonal_prices(room_id, start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_hotel_id ON bookings(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_guest_id ON bookings(guest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(check_in, check_out)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_booking_id ON payments(booking_id)`,
		`CREATE INDEX IF NOT EXISTS idx_agreements_booking_id ON agreements(booking_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
