package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type RoomHandler struct {
	roomService service.RoomService
}

func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, room)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, room)
}

func (h *RoomHandler) GetHotelRooms(c *gin.Context) {
	hotelID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	activeOnly := c.Query("active") == "true"

	rooms, err := h.roomService.GetHotelRooms(c.Request.Context(), hotelID, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rooms)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, room)
}

// DeactivateRoom снимает номер с продажи, сохраняя историю бронирований
func (h *RoomHandler) DeactivateRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.roomService.DeactivateRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "room deactivated")
}

func (h *RoomHandler) AddSeasonalPrice(c *gin.Context) {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req service.CreateSeasonalPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	req.RoomID = roomID

	price, err := h.roomService.AddSeasonalPrice(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, price)
}

func (h *RoomHandler) GetSeasonalPrices(c *gin.Context) {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	prices, err := h.roomService.GetSeasonalPrices(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, prices)
}

func (h *RoomHandler) DeleteSeasonalPrice(c *gin.Context) {
	priceID, err := parseIDParam(c, "price_id")
	if err != nil {
		return
	}

	if err := h.roomService.DeleteSeasonalPrice(c.Request.Context(), priceID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "seasonal price deleted")
}
