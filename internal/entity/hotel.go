package entity

import (
	"time"
)

type Hotel struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type HotelWithStats struct {
	Hotel
	RoomCount    int `json:"room_count"`
	BookingCount int `json:"booking_count"`
}
