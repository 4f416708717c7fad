package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	req.BookingID = bookingID

	payment, err := h.paymentService.RegisterPayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, payment)
}

// GetPaymentSummary возвращает платежи бронирования и статус оплаты
func (h *PaymentHandler) GetPaymentSummary(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	summary, err := h.paymentService.GetPaymentSummary(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, summary)
}
