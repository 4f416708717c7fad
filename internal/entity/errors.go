package entity

import "errors"

var (
	// Hotel errors
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrHotelCodeExists  = errors.New("hotel code already exists")
	ErrHotelHasBookings = errors.New("hotel still has bookings")

	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomInactive      = errors.New("room is inactive")
	ErrBasePriceTooLow   = errors.New("base price must exceed purchase price")
	ErrSeasonalNotFound  = errors.New("seasonal price not found")
	ErrInvalidBoardType  = errors.New("invalid board type")
	ErrInvalidRoomsCount = errors.New("rooms count must be positive")

	// Guest errors
	ErrGuestNotFound = errors.New("guest not found")

	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrInvalidDateRange         = errors.New("check-out date must be after check-in date")
	ErrInsufficientAvailability = errors.New("not enough available rooms for the requested dates")
	ErrInvalidStatusTransition  = errors.New("invalid booking status transition")

	// Payment errors
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// Agreement errors
	ErrAgreementNotFound   = errors.New("agreement not found")
	ErrUnsupportedFileType = errors.New("unsupported agreement file type")
	ErrFileTooLarge        = errors.New("agreement file exceeds maximum size")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden operation")
)
