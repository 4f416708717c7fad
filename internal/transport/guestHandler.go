package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type GuestHandler struct {
	guestService service.GuestService
}

func NewGuestHandler(guestService service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req service.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, guest)
}

func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, guest)
}

// GetAllGuests возвращает всех гостей либо результат поиска по имени
func (h *GuestHandler) GetAllGuests(c *gin.Context) {
	guests, err := h.guestService.GetAllGuests(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, guests)
}

func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, guest)
}
