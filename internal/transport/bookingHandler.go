package transport

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CancelBookingRequest представляет запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, booking)
}

// ListBookings возвращает страницу бронирований по фильтрам запроса
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter, ok := parseBookingFilter(c)
	if !ok {
		return
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, bookings, Pagination{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.bookingService.ConfirmBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "booking confirmed")
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "booking cancelled")
}

func (h *BookingHandler) CheckInBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.bookingService.CheckInBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "guest checked in")
}

func (h *BookingHandler) CheckOutBooking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.bookingService.CheckOutBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "guest checked out")
}

// parseBookingFilter собирает фильтр из query-параметров; при ошибке ответ
// уже отправлен
func parseBookingFilter(c *gin.Context) (*entity.BookingFilter, bool) {
	filter := &entity.BookingFilter{}

	for name, target := range map[string]*int64{
		"hotel_id": &filter.HotelID,
		"room_id":  &filter.RoomID,
		"guest_id": &filter.GuestID,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid "+name)
			return nil, false
		}
		*target = value
	}

	filter.Status = entity.BookingStatus(c.Query("status"))

	for name, target := range map[string]**entity.DateOnly{
		"date_from": &filter.DateFrom,
		"date_to":   &filter.DateTo,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		date, err := entity.ParseDateOnly(raw)
		if err != nil {
			respondBadRequest(c, "invalid "+name)
			return nil, false
		}
		*target = &date
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	filter.Limit = limit

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Offset = offset

	return filter, true
}
