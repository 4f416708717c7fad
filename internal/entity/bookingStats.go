package entity

import (
	"github.com/shopspring/decimal"
)

// HotelBookingStats содержит статистику бронирований по отелю
type HotelBookingStats struct {
	HotelID         int64           `json:"hotel_id"`
	TotalBookings   int             `json:"total_bookings"`
	PendingCount    int             `json:"pending_count"`
	ConfirmedCount  int             `json:"confirmed_count"`
	CheckedInCount  int             `json:"checked_in_count"`
	CheckedOutCount int             `json:"checked_out_count"`
	CancelledCount  int             `json:"cancelled_count"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// OccupancyRate вычисляет долю активных бронирований среди всех обработанных
func (s *HotelBookingStats) OccupancyRate() float64 {
	processed := s.ConfirmedCount + s.CheckedInCount + s.CheckedOutCount + s.CancelledCount
	if processed == 0 {
		return 0.0
	}
	active := s.ConfirmedCount + s.CheckedInCount + s.CheckedOutCount
	return float64(active) / float64(processed)
}
