package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BoardType string

const (
	BoardTypeRoomOnly     BoardType = "room_only"
	BoardTypeBedBreakfast BoardType = "bed_breakfast"
	BoardTypeHalfBoard    BoardType = "half_board"
	BoardTypeFullBoard    BoardType = "full_board"
)

func (b BoardType) Valid() bool {
	switch b {
	case BoardTypeRoomOnly, BoardTypeBedBreakfast, BoardTypeHalfBoard, BoardTypeFullBoard:
		return true
	}
	return false
}

type Room struct {
	ID                 int64            `json:"id" db:"id"`
	HotelID            int64            `json:"hotel_id" db:"hotel_id"`
	Name               string           `json:"name" db:"name"`
	BoardType          BoardType        `json:"board_type" db:"board_type"`
	PurchasePrice      decimal.Decimal  `json:"purchase_price" db:"purchase_price"`
	BasePrice          decimal.Decimal  `json:"base_price" db:"base_price"`
	AlternativePrice   *decimal.Decimal `json:"alternative_price,omitempty" db:"alternative_price"`
	UseAlternativeRate bool             `json:"use_alternative_rate" db:"use_alternative_rate"`
	Quantity           int              `json:"quantity" db:"quantity"`
	Active             bool             `json:"active" db:"active"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// SeasonalPrice переопределяет ночной тариф номера на интервале [StartDate, EndDate)
type SeasonalPrice struct {
	ID        int64           `json:"id" db:"id"`
	RoomID    int64           `json:"room_id" db:"room_id"`
	StartDate DateOnly        `json:"start_date" db:"start_date"`
	EndDate   DateOnly        `json:"end_date" db:"end_date"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Contains проверяет, попадает ли дата в интервал сезонной цены
func (s *SeasonalPrice) Contains(date DateOnly) bool {
	d := date.Time
	return !d.Before(s.StartDate.Time) && d.Before(s.EndDate.Time)
}

type AvailabilitySlot struct {
	RoomID         int64    `json:"room_id" db:"room_id"`
	Date           DateOnly `json:"date" db:"date"`
	AvailableCount int      `json:"available_count" db:"available_count"`
	BlockedCount   int      `json:"blocked_count" db:"blocked_count"`
}

// Remaining возвращает количество юнитов, доступных для продажи
func (s *AvailabilitySlot) Remaining() int {
	return s.AvailableCount - s.BlockedCount
}
