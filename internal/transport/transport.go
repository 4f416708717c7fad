package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/ds124wfegd/hotel-backoffice/internal/transport/middleware"
)

// Handlers собирает обработчики всех ресурсов API
type Handlers struct {
	Hotel        *HotelHandler
	Room         *RoomHandler
	Guest        *GuestHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Agreement    *AgreementHandler
	Availability *AvailabilityHandler
}

func InitRoutes(h *Handlers) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+middleware.RoleHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.Identity())
	{
		// Hotel routes
		hotels := api.Group("/hotels")
		{
			hotels.POST("", middleware.RequireCapability(entity.CapabilityManageHotels), h.Hotel.CreateHotel)
			hotels.GET("", h.Hotel.GetAllHotels)
			hotels.GET("/:id", h.Hotel.GetHotel)
			hotels.PUT("/:id", middleware.RequireCapability(entity.CapabilityManageHotels), h.Hotel.UpdateHotel)
			hotels.DELETE("/:id", middleware.RequireCapability(entity.CapabilityDeleteHotel), h.Hotel.DeleteHotel)
			hotels.GET("/:id/stats", middleware.RequireCapability(entity.CapabilityViewReports), h.Hotel.GetHotelStats)
			hotels.GET("/:id/rooms", h.Room.GetHotelRooms)
		}

		// Room routes
		rooms := api.Group("/rooms")
		{
			rooms.POST("", middleware.RequireCapability(entity.CapabilityManageRooms), h.Room.CreateRoom)
			rooms.GET("/:id", h.Room.GetRoom)
			rooms.PUT("/:id", middleware.RequireCapability(entity.CapabilityManageRooms), h.Room.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequireCapability(entity.CapabilityManageRooms), h.Room.DeactivateRoom)

			// Seasonal prices
			rooms.POST("/:id/seasonal-prices", middleware.RequireCapability(entity.CapabilityManageRooms), h.Room.AddSeasonalPrice)
			rooms.GET("/:id/seasonal-prices", h.Room.GetSeasonalPrices)
			rooms.DELETE("/:id/seasonal-prices/:price_id", middleware.RequireCapability(entity.CapabilityManageRooms), h.Room.DeleteSeasonalPrice)

			// Availability calendar
			rooms.GET("/:id/availability", h.Availability.GetCalendar)
			rooms.POST("/:id/availability/block", middleware.RequireCapability(entity.CapabilityBlockInventory), h.Availability.BlockUnits)
			rooms.POST("/:id/availability/unblock", middleware.RequireCapability(entity.CapabilityBlockInventory), h.Availability.UnblockUnits)
		}

		// Guest routes
		guests := api.Group("/guests")
		guests.Use(middleware.RequireCapability(entity.CapabilityManageGuests))
		{
			guests.POST("", h.Guest.CreateGuest)
			guests.GET("", h.Guest.GetAllGuests)
			guests.GET("/:id", h.Guest.GetGuest)
			guests.PUT("/:id", h.Guest.UpdateGuest)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireCapability(entity.CapabilityManageBookings))
		{
			bookings.POST("", h.Booking.CreateBooking)
			bookings.GET("", h.Booking.ListBookings)
			bookings.GET("/:id", h.Booking.GetBooking)
			bookings.POST("/:id/confirm", h.Booking.ConfirmBooking)
			bookings.POST("/:id/cancel", h.Booking.CancelBooking)
			bookings.POST("/:id/check-in", h.Booking.CheckInBooking)
			bookings.POST("/:id/check-out", h.Booking.CheckOutBooking)

			// Payments
			bookings.POST("/:id/payments", middleware.RequireCapability(entity.CapabilityManagePayments), h.Payment.RegisterPayment)
			bookings.GET("/:id/payments", h.Payment.GetPaymentSummary)

			// Agreements
			bookings.POST("/:id/agreements", middleware.RequireCapability(entity.CapabilityManageAgreements), h.Agreement.UploadAgreement)
			bookings.GET("/:id/agreements", h.Agreement.GetBookingAgreements)
			bookings.GET("/:id/agreements/:agreement_id/download", h.Agreement.DownloadAgreement)
			bookings.DELETE("/:id/agreements/:agreement_id", middleware.RequireCapability(entity.CapabilityManageAgreements), h.Agreement.DeleteAgreement)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
