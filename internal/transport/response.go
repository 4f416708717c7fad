package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

// Response представляет единый конверт ответа API
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination представляет метаданные постраничной выборки
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func respondPage(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: &p})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// respondError переводит ошибки доменного слоя в HTTP статусы
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrHotelNotFound),
		errors.Is(err, entity.ErrRoomNotFound),
		errors.Is(err, entity.ErrSeasonalNotFound),
		errors.Is(err, entity.ErrGuestNotFound),
		errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrPaymentNotFound),
		errors.Is(err, entity.ErrAgreementNotFound):
		status = http.StatusNotFound

	case errors.Is(err, entity.ErrHotelCodeExists),
		errors.Is(err, entity.ErrHotelHasBookings),
		errors.Is(err, entity.ErrInsufficientAvailability),
		errors.Is(err, entity.ErrInvalidStatusTransition):
		status = http.StatusConflict

	case errors.Is(err, entity.ErrInvalidDateRange),
		errors.Is(err, entity.ErrInvalidRoomsCount),
		errors.Is(err, entity.ErrInvalidBoardType),
		errors.Is(err, entity.ErrBasePriceTooLow),
		errors.Is(err, entity.ErrRoomInactive),
		errors.Is(err, entity.ErrInvalidPaymentAmount),
		errors.Is(err, entity.ErrUnsupportedFileType),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidInput):
		status = http.StatusBadRequest

	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logrus.Errorf("Внутренняя ошибка запроса %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, Response{Success: false, Message: err.Error()})
}
