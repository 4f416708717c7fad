package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type AvailabilityHandler struct {
	availabilityService service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// BlockUnitsRequest представляет запрос на блокировку юнитов номера
type BlockUnitsRequest struct {
	Date  entity.DateOnly `json:"date" binding:"required"`
	Count int             `json:"count" binding:"required,min=1"`
}

// GetCalendar возвращает календарь доступности номера на полуинтервал [from, to)
func (h *AvailabilityHandler) GetCalendar(c *gin.Context) {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	from, err := entity.ParseDateOnly(c.Query("from"))
	if err != nil {
		respondBadRequest(c, "invalid from date")
		return
	}
	to, err := entity.ParseDateOnly(c.Query("to"))
	if err != nil {
		respondBadRequest(c, "invalid to date")
		return
	}

	calendar, err := h.availabilityService.GetCalendar(c.Request.Context(), roomID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, calendar)
}

func (h *AvailabilityHandler) BlockUnits(c *gin.Context) {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req BlockUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.availabilityService.BlockUnits(c.Request.Context(), roomID, req.Date, req.Count); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "units blocked")
}

func (h *AvailabilityHandler) UnblockUnits(c *gin.Context) {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req BlockUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.availabilityService.UnblockUnits(c.Request.Context(), roomID, req.Date, req.Count); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "units unblocked")
}
