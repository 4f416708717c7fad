package service

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type HotelService interface {
	// Основные операции
	CreateHotel(ctx context.Context, req *CreateHotelRequest) (*entity.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*entity.Hotel, error)
	GetAllHotels(ctx context.Context, activeOnly bool) ([]*entity.Hotel, error)
	UpdateHotel(ctx context.Context, id int64, req *UpdateHotelRequest) (*entity.Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error

	// Статистика
	GetHotelStats(ctx context.Context, id int64) (*entity.HotelBookingStats, error)
}

type RoomService interface {
	// Основные операции
	CreateRoom(ctx context.Context, req *CreateRoomRequest) (*entity.Room, error)
	GetRoom(ctx context.Context, id int64) (*entity.Room, error)
	GetHotelRooms(ctx context.Context, hotelID int64, activeOnly bool) ([]*entity.Room, error)
	UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*entity.Room, error)
	DeactivateRoom(ctx context.Context, id int64) error

	// Сезонные цены
	AddSeasonalPrice(ctx context.Context, req *CreateSeasonalPriceRequest) (*entity.SeasonalPrice, error)
	GetSeasonalPrices(ctx context.Context, roomID int64) ([]*entity.SeasonalPrice, error)
	DeleteSeasonalPrice(ctx context.Context, id int64) error
}

type GuestService interface {
	CreateGuest(ctx context.Context, req *CreateGuestRequest) (*entity.Guest, error)
	GetGuest(ctx context.Context, id int64) (*entity.Guest, error)
	GetAllGuests(ctx context.Context, nameQuery string) ([]*entity.Guest, error)
	UpdateGuest(ctx context.Context, id int64, req *UpdateGuestRequest) (*entity.Guest, error)
}

// RateService вычисляет ночной тариф номера: базовая или альтернативная цена,
// поверх которых действуют сезонные переопределения
type RateService interface {
	ResolveRate(ctx context.Context, roomID int64, date entity.DateOnly) (decimal.Decimal, error)
	ResolveStay(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly) (*StayQuote, error)
}

// AvailabilityService отвечает за календарь доступности номеров
type AvailabilityService interface {
	// CheckAvailability возвращает остаток юнитов на дату; при отсутствии
	// строки слота остаток равен quantity номера
	CheckAvailability(ctx context.Context, roomID int64, date entity.DateOnly) (int, error)
	GetCalendar(ctx context.Context, roomID int64, from, to entity.DateOnly) ([]*entity.AvailabilitySlot, error)

	// Административная блокировка юнитов
	BlockUnits(ctx context.Context, roomID int64, date entity.DateOnly, count int) error
	UnblockUnits(ctx context.Context, roomID int64, date entity.DateOnly, count int) error
}

type BookingService interface {
	// Основные операции
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error)
	GetBooking(ctx context.Context, id int64) (*entity.Booking, error)
	ListBookings(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, int, error)

	// Жизненный цикл
	ConfirmBooking(ctx context.Context, id int64) error
	CancelBooking(ctx context.Context, id int64, reason string) error
	CheckInBooking(ctx context.Context, id int64) error
	CheckOutBooking(ctx context.Context, id int64) error

	// Операции истечения срока
	ExpireStaleBookings(ctx context.Context) (int, error)
}

type PaymentService interface {
	RegisterPayment(ctx context.Context, req *CreatePaymentRequest) (*entity.Payment, error)
	GetPaymentSummary(ctx context.Context, bookingID int64) (*entity.PaymentSummary, error)
}

type AgreementService interface {
	UploadAgreement(ctx context.Context, bookingID int64, header *multipart.FileHeader) (*entity.Agreement, error)
	GetAgreement(ctx context.Context, id int64) (*entity.Agreement, error)
	OpenAgreement(ctx context.Context, id int64) (*entity.Agreement, io.ReadCloser, error)
	GetBookingAgreements(ctx context.Context, bookingID int64) ([]*entity.Agreement, error)
	DeleteAgreement(ctx context.Context, id int64) error
}

// CreateHotelRequest представляет данные для создания отеля
type CreateHotelRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=32"`
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Address string `json:"address" binding:"required"`
}

type UpdateHotelRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// CreateRoomRequest представляет данные для создания номерного фонда
type CreateRoomRequest struct {
	HotelID            int64            `json:"hotel_id" binding:"required"`
	Name               string           `json:"name" binding:"required,min=2,max=255"`
	BoardType          entity.BoardType `json:"board_type" binding:"required"`
	PurchasePrice      decimal.Decimal  `json:"purchase_price" binding:"required"`
	BasePrice          decimal.Decimal  `json:"base_price" binding:"required"`
	AlternativePrice   *decimal.Decimal `json:"alternative_price"`
	UseAlternativeRate bool             `json:"use_alternative_rate"`
	Quantity           int              `json:"quantity" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	Name               *string           `json:"name"`
	BoardType          *entity.BoardType `json:"board_type"`
	PurchasePrice      *decimal.Decimal  `json:"purchase_price"`
	BasePrice          *decimal.Decimal  `json:"base_price"`
	AlternativePrice   *decimal.Decimal  `json:"alternative_price"`
	UseAlternativeRate *bool             `json:"use_alternative_rate"`
	Quantity           *int              `json:"quantity"`
}

type CreateSeasonalPriceRequest struct {
	RoomID    int64           `json:"room_id" binding:"required"`
	StartDate entity.DateOnly `json:"start_date" binding:"required"`
	EndDate   entity.DateOnly `json:"end_date" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

type CreateGuestRequest struct {
	FullName       string `json:"full_name" binding:"required,min=2,max=255"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
}

type UpdateGuestRequest struct {
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	DocumentNumber *string `json:"document_number"`
}

// CreateBookingRequest представляет данные для создания бронирования
type CreateBookingRequest struct {
	HotelID    int64           `json:"hotel_id" binding:"required"`
	RoomID     int64           `json:"room_id" binding:"required"`
	GuestID    int64           `json:"guest_id" binding:"required"`
	CheckIn    entity.DateOnly `json:"check_in" binding:"required"`
	CheckOut   entity.DateOnly `json:"check_out" binding:"required"`
	RoomsCount int             `json:"rooms_count" binding:"required,min=1"`

	// Создать сразу подтвержденным, минуя pending
	Confirmed bool `json:"confirmed"`
}

type CreatePaymentRequest struct {
	BookingID int64                `json:"booking_id" binding:"required"`
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Method    entity.PaymentMethod `json:"method" binding:"required"`
	PaidAt    *time.Time           `json:"paid_at"`
}

// NightlyRate представляет тариф одной ночи проживания
type NightlyRate struct {
	Date     entity.DateOnly `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Seasonal bool            `json:"seasonal"`
}

// StayQuote представляет расчет стоимости проживания за один юнит номера
type StayQuote struct {
	RoomID             int64           `json:"room_id"`
	CheckIn            entity.DateOnly `json:"check_in"`
	CheckOut           entity.DateOnly `json:"check_out"`
	Nights             int             `json:"nights"`
	NightlyRates       []NightlyRate   `json:"nightly_rates"`
	Total              decimal.Decimal `json:"total"`
	UseAlternativeRate bool            `json:"use_alternative_rate"`
}

// TaskPublisher интерфейс для публикации задач в очередь
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

// Task представляет задачу для очереди
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	ExecuteAt  time.Time              `json:"execute_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

// Константы типов задач
const (
	TaskTypeNotifyBookingCreated   = "notify_booking_created"
	TaskTypeNotifyBookingCancelled = "notify_booking_cancelled"
	TaskTypeNotifyBookingExpired   = "notify_booking_expired"
	TaskTypeNotifyPaymentReceived  = "notify_payment_received"
)
