package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo описывает закрытый граф переходов статусов бронирования
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCheckedIn || next == BookingStatusCancelled
	case BookingStatusCheckedIn:
		return next == BookingStatusCheckedOut
	}
	return false
}

type Booking struct {
	ID                 int64           `json:"id" db:"id"`
	HotelID            int64           `json:"hotel_id" db:"hotel_id"`
	RoomID             int64           `json:"room_id" db:"room_id"`
	GuestID            int64           `json:"guest_id" db:"guest_id"`
	CheckIn            DateOnly        `json:"check_in" db:"check_in"`
	CheckOut           DateOnly        `json:"check_out" db:"check_out"`
	Nights             int             `json:"nights" db:"nights"`
	RoomsCount         int             `json:"rooms_count" db:"rooms_count"`
	Rate               decimal.Decimal `json:"rate" db:"rate"`
	UseAlternativeRate bool            `json:"use_alternative_rate" db:"use_alternative_rate"`
	TotalAmount        decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status             BookingStatus   `json:"status" db:"status"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// BookingFilter задает условия выборки бронирований для списочных запросов
type BookingFilter struct {
	HotelID  int64
	RoomID   int64
	GuestID  int64
	Status   BookingStatus
	DateFrom *DateOnly
	DateTo   *DateOnly
	Limit    int
	Offset   int
}

// StaleBooking описывает бронирование, оставшееся в pending после даты заезда
type StaleBooking struct {
	BookingID  int64    `json:"booking_id"`
	RoomID     int64    `json:"room_id"`
	GuestID    int64    `json:"guest_id"`
	CheckIn    DateOnly `json:"check_in"`
	CheckOut   DateOnly `json:"check_out"`
	RoomsCount int      `json:"rooms_count"`
	GuestName  string   `json:"guest_name"`
	HotelName  string   `json:"hotel_name"`
}
