package repository

import (
	"context"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/shopspring/decimal"
)

type HotelRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, hotel *entity.Hotel) error
	GetByID(ctx context.Context, id int64) (*entity.Hotel, error)
	GetByCode(ctx context.Context, code string) (*entity.Hotel, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*entity.Hotel, error)
	Update(ctx context.Context, hotel *entity.Hotel) error
	Delete(ctx context.Context, id int64) error

	// Статистика
	CountBookings(ctx context.Context, hotelID int64) (int, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id int64) (*entity.Room, error)
	GetByHotelID(ctx context.Context, hotelID int64, activeOnly bool) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Deactivate(ctx context.Context, id int64) error

	// Активные номера по всем отелям, для воркера окна доступности
	GetActive(ctx context.Context) ([]*entity.Room, error)
}

type SeasonalPriceRepository interface {
	Create(ctx context.Context, price *entity.SeasonalPrice) error
	GetByID(ctx context.Context, id int64) (*entity.SeasonalPrice, error)
	GetByRoomID(ctx context.Context, roomID int64) ([]*entity.SeasonalPrice, error)
	Delete(ctx context.Context, id int64) error
}

type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	GetByID(ctx context.Context, id int64) (*entity.Guest, error)
	GetAll(ctx context.Context) ([]*entity.Guest, error)
	SearchByName(ctx context.Context, name string) ([]*entity.Guest, error)
	Update(ctx context.Context, guest *entity.Guest) error
}

type AvailabilityRepository interface {
	// GetSlot возвращает (nil, nil), если строки на дату нет
	GetSlot(ctx context.Context, roomID int64, date entity.DateOnly) (*entity.AvailabilitySlot, error)
	GetRange(ctx context.Context, roomID int64, from, to entity.DateOnly) ([]*entity.AvailabilitySlot, error)

	// Reserve выполняет атомарный условный декремент по каждой дате
	// полуинтервала [checkIn, checkOut) в одной транзакции: либо все даты,
	// либо ни одной
	Reserve(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error
	Release(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error

	// Административная блокировка юнитов
	Block(ctx context.Context, roomID int64, date entity.DateOnly, count int) error
	Unblock(ctx context.Context, roomID int64, date entity.DateOnly, count int) error

	// EnsureWindow досоздает отсутствующие слоты на days дней вперед от from
	EnsureWindow(ctx context.Context, roomID int64, from entity.DateOnly, days int) error
}

type BookingRepository interface {
	// Create резервирует слоты и вставляет бронирование в одной транзакции
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	List(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, int, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error

	// CancelWithRelease меняет статус на cancelled и возвращает слоты
	// в одной транзакции
	CancelWithRelease(ctx context.Context, id int64) error

	// Stale-бронирования: pending после даты заезда
	GetStaleBookings(ctx context.Context, before entity.DateOnly) ([]*entity.StaleBooking, error)

	// Статистика
	GetHotelStats(ctx context.Context, hotelID int64) (*entity.HotelBookingStats, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error)
	SumByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error)
}

type AgreementRepository interface {
	Create(ctx context.Context, agreement *entity.Agreement) error
	GetByID(ctx context.Context, id int64) (*entity.Agreement, error)
	GetByBookingID(ctx context.Context, bookingID int64) ([]*entity.Agreement, error)
	Delete(ctx context.Context, id int64) error
}
