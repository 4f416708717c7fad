package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/hotel-backoffice/config"
	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/database/redis"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/ds124wfegd/hotel-backoffice/pkg/telegram"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	hotelRepo   repository.HotelRepository
	guestRepo   repository.GuestRepository
	rates       RateService
	queue       TaskPublisher
	telegramBot *telegram.Bot
	cache       *redis.CacheRepository
	cfg         config.BookingConfig
}

// NewBookingService создает новый экземпляр BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	hotelRepo repository.HotelRepository,
	guestRepo repository.GuestRepository,
	rates RateService,
	queue TaskPublisher,
	telegramBot *telegram.Bot,
	cache *redis.CacheRepository,
	cfg config.BookingConfig,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		hotelRepo:   hotelRepo,
		guestRepo:   guestRepo,
		rates:       rates,
		queue:       queue,
		telegramBot: telegramBot,
		cache:       cache,
		cfg:         cfg,
	}
}

// CreateBooking проверяет запрос, считает стоимость и создает бронирование;
// резервирование слотов и вставка строки проходят одной транзакцией
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error) {
	// Валидация дат до любых обращений к базе
	if !req.CheckOut.Time.After(req.CheckIn.Time) {
		return nil, entity.ErrInvalidDateRange
	}

	nights := req.CheckIn.DaysUntil(req.CheckOut)
	if s.cfg.MaxStayNights > 0 && nights > s.cfg.MaxStayNights {
		return nil, fmt.Errorf("%w: stay exceeds %d nights", entity.ErrInvalidInput, s.cfg.MaxStayNights)
	}

	if req.RoomsCount < 1 {
		return nil, entity.ErrInvalidRoomsCount
	}
	if s.cfg.MaxRoomsPerBooking > 0 && req.RoomsCount > s.cfg.MaxRoomsPerBooking {
		return nil, entity.ErrInvalidRoomsCount
	}

	hotel, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.HotelID != req.HotelID {
		return nil, entity.ErrRoomNotFound
	}
	if !room.Active {
		return nil, entity.ErrRoomInactive
	}

	guest, err := s.guestRepo.GetByID(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	// Потарифный расчет: сезонная цена может смениться посреди проживания
	quote, err := s.rates.ResolveStay(ctx, req.RoomID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	status := entity.BookingStatusPending
	if req.Confirmed {
		status = entity.BookingStatusConfirmed
	}

	booking := &entity.Booking{
		HotelID:            req.HotelID,
		RoomID:             req.RoomID,
		GuestID:            req.GuestID,
		CheckIn:            req.CheckIn,
		CheckOut:           req.CheckOut,
		Nights:             quote.Nights,
		RoomsCount:         req.RoomsCount,
		Rate:               quote.Total.Div(decimal.NewFromInt(int64(quote.Nights))).Round(2),
		UseAlternativeRate: quote.UseAlternativeRate,
		TotalAmount:        quote.Total.Mul(decimal.NewFromInt(int64(req.RoomsCount))),
		Status:             status,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logrus.Infof("Бронирование создано: ID=%d, Room=%d, Guest=%d, %s..%s x%d",
		booking.ID, booking.RoomID, booking.GuestID, booking.CheckIn, booking.CheckOut, booking.RoomsCount)

	if s.cache != nil {
		if err := s.cache.IncrementRoomPopularity(booking.RoomID); err != nil {
			logrus.Errorf("Ошибка учета популярности номера: %v", err)
		}
	}

	s.publishNotification(ctx, TaskTypeNotifyBookingCreated, booking)

	if s.telegramBot != nil {
		go s.sendBookingCreatedNotification(booking, hotel, room, guest)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*entity.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, filter *entity.BookingFilter) ([]*entity.Booking, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown booking status %q", entity.ErrInvalidInput, filter.Status)
	}

	return s.bookingRepo.List(ctx, filter)
}

// ConfirmBooking подтверждает ожидающее бронирование
func (s *bookingService) ConfirmBooking(ctx context.Context, id int64) error {
	return s.transition(ctx, id, entity.BookingStatusConfirmed)
}

// CancelBooking отменяет бронирование и возвращает слоты доступности
func (s *bookingService) CancelBooking(ctx context.Context, id int64, reason string) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.CancelWithRelease(ctx, id); err != nil {
		return err
	}

	logrus.Infof("Бронирование отменено: ID=%d, причина: %s", id, reason)

	s.publishNotification(ctx, TaskTypeNotifyBookingCancelled, booking)

	return nil
}

// CheckInBooking регистрирует заезд гостя
func (s *bookingService) CheckInBooking(ctx context.Context, id int64) error {
	return s.transition(ctx, id, entity.BookingStatusCheckedIn)
}

// CheckOutBooking регистрирует выезд гостя
func (s *bookingService) CheckOutBooking(ctx context.Context, id int64) error {
	return s.transition(ctx, id, entity.BookingStatusCheckedOut)
}

// ExpireStaleBookings отменяет зависшие в pending бронирования с прошедшей
// датой заезда, возвращает количество отмененных
func (s *bookingService) ExpireStaleBookings(ctx context.Context) (int, error) {
	now := time.Now()
	today := entity.NewDateOnly(now.Year(), now.Month(), now.Day())

	stale, err := s.bookingRepo.GetStaleBookings(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("ошибка при поиске зависших бронирований: %w", err)
	}

	expired := 0
	for _, booking := range stale {
		if err := s.bookingRepo.CancelWithRelease(ctx, booking.BookingID); err != nil {
			logrus.Errorf("Ошибка при отмене зависшего бронирования %d: %v", booking.BookingID, err)
			continue
		}
		expired++

		if s.queue != nil {
			task := &Task{
				ID:   fmt.Sprintf("%s_%d_%d", TaskTypeNotifyBookingExpired, booking.BookingID, time.Now().Unix()),
				Type: TaskTypeNotifyBookingExpired,
				Data: map[string]interface{}{
					"booking_id": booking.BookingID,
					"guest_name": booking.GuestName,
					"hotel_name": booking.HotelName,
					"check_in":   booking.CheckIn.String(),
				},
				ExecuteAt:  time.Now(),
				MaxRetries: 3,
			}
			if err := s.queue.Publish(ctx, task); err != nil {
				logrus.Errorf("Ошибка при публикации уведомления об истечении: %v", err)
			}
		}
	}

	if expired > 0 {
		logrus.Infof("Отменено зависших бронирований: %d", expired)
	}

	return expired, nil
}

// transition выполняет переход статуса по закрытому графу
func (s *bookingService) transition(ctx context.Context, id int64, next entity.BookingStatus) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(next) {
		return entity.ErrInvalidStatusTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	logrus.Infof("Статус бронирования изменен: ID=%d, %s -> %s", id, booking.Status, next)

	return nil
}

func (s *bookingService) publishNotification(ctx context.Context, taskType string, booking *entity.Booking) {
	if s.queue == nil {
		return
	}

	task := &Task{
		ID:   fmt.Sprintf("%s_%d_%d", taskType, booking.ID, time.Now().Unix()),
		Type: taskType,
		Data: map[string]interface{}{
			"booking_id":  booking.ID,
			"hotel_id":    booking.HotelID,
			"room_id":     booking.RoomID,
			"guest_id":    booking.GuestID,
			"check_in":    booking.CheckIn.String(),
			"check_out":   booking.CheckOut.String(),
			"rooms_count": booking.RoomsCount,
		},
		ExecuteAt:  time.Now().Add(5 * time.Second),
		MaxRetries: 3,
	}

	if err := s.queue.Publish(ctx, task); err != nil {
		logrus.Errorf("Ошибка при публикации задачи уведомления: %v", err)
	}
}

// sendBookingCreatedNotification отправляет уведомление персоналу в Telegram
func (s *bookingService) sendBookingCreatedNotification(booking *entity.Booking, hotel *entity.Hotel, room *entity.Room, guest *entity.Guest) {
	message := fmt.Sprintf(
		"🏨 Новое бронирование!\n\n"+
			"Отель: %s\n"+
			"Номер: %s\n"+
			"Гость: %s\n"+
			"Заезд: %s\n"+
			"Выезд: %s\n"+
			"Количество номеров: %d\n"+
			"Сумма: %s\n"+
			"Номер брони: #%d",
		hotel.Name,
		room.Name,
		guest.FullName,
		booking.CheckIn,
		booking.CheckOut,
		booking.RoomsCount,
		booking.TotalAmount.StringFixed(2),
		booking.ID,
	)

	if err := s.telegramBot.NotifyStaff(message); err != nil {
		logrus.Errorf("Ошибка при отправке Telegram уведомления о брони %d: %v", booking.ID, err)
	}
}
