package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/database/redis"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type hotelService struct {
	hotelRepo   repository.HotelRepository
	bookingRepo repository.BookingRepository
	cache       *redis.CacheRepository
}

// NewHotelService создает новый экземпляр HotelService
func NewHotelService(
	hotelRepo repository.HotelRepository,
	bookingRepo repository.BookingRepository,
	cache *redis.CacheRepository,
) HotelService {
	return &hotelService{
		hotelRepo:   hotelRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, req *CreateHotelRequest) (*entity.Hotel, error) {
	hotel := &entity.Hotel{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Active:  true,
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, err
	}

	logrus.Infof("Отель создан: ID=%d, Code=%s", hotel.ID, hotel.Code)

	return hotel, nil
}

func (s *hotelService) GetHotel(ctx context.Context, id int64) (*entity.Hotel, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetHotel(id); err == nil && cached != nil {
			return cached, nil
		}
	}

	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetHotel(hotel); err != nil {
			logrus.Errorf("Ошибка записи отеля в кэш: %v", err)
		}
	}

	return hotel, nil
}

func (s *hotelService) GetAllHotels(ctx context.Context, activeOnly bool) ([]*entity.Hotel, error) {
	return s.hotelRepo.GetAll(ctx, activeOnly)
}

func (s *hotelService) UpdateHotel(ctx context.Context, id int64, req *UpdateHotelRequest) (*entity.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.Active != nil {
		hotel.Active = *req.Active
	}

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, err
	}

	s.invalidate(id)

	return hotel, nil
}

// DeleteHotel удаляет отель; отель с бронированиями удалить нельзя
func (s *hotelService) DeleteHotel(ctx context.Context, id int64) error {
	count, err := s.hotelRepo.CountBookings(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка при подсчете бронирований отеля: %w", err)
	}
	if count > 0 {
		return entity.ErrHotelHasBookings
	}

	if err := s.hotelRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(id)
	logrus.Infof("Отель удален: ID=%d", id)

	return nil
}

func (s *hotelService) GetHotelStats(ctx context.Context, id int64) (*entity.HotelBookingStats, error) {
	if _, err := s.hotelRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetHotelStats(ctx, id)
}

func (s *hotelService) invalidate(id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteHotel(id); err != nil {
		logrus.Errorf("Ошибка инвалидации кэша отеля %d: %v", id, err)
	}
}
