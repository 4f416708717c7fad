package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type HotelHandler struct {
	hotelService service.HotelService
}

func NewHotelHandler(hotelService service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var req service.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, hotel)
}

func (h *HotelHandler) GetHotel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, hotel)
}

func (h *HotelHandler) GetAllHotels(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	hotels, err := h.hotelService.GetAllHotels(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, hotels)
}

func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, hotel)
}

func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.hotelService.DeleteHotel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "hotel deleted")
}

func (h *HotelHandler) GetHotelStats(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	stats, err := h.hotelService.GetHotelStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, stats)
}

// parseIDParam читает числовой path-параметр; при ошибке ответ уже отправлен
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid " + name})
		return 0, err
	}
	return id, nil
}
