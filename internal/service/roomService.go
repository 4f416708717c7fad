package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/database/redis"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type roomService struct {
	roomRepo     repository.RoomRepository
	hotelRepo    repository.HotelRepository
	seasonalRepo repository.SeasonalPriceRepository
	cache        *redis.CacheRepository
}

// NewRoomService создает новый экземпляр RoomService
func NewRoomService(
	roomRepo repository.RoomRepository,
	hotelRepo repository.HotelRepository,
	seasonalRepo repository.SeasonalPriceRepository,
	cache *redis.CacheRepository,
) RoomService {
	return &roomService{
		roomRepo:     roomRepo,
		hotelRepo:    hotelRepo,
		seasonalRepo: seasonalRepo,
		cache:        cache,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*entity.Room, error) {
	if _, err := s.hotelRepo.GetByID(ctx, req.HotelID); err != nil {
		return nil, err
	}

	if !req.BoardType.Valid() {
		return nil, entity.ErrInvalidBoardType
	}

	// Продажная цена должна покрывать закупочную
	if !req.BasePrice.GreaterThan(req.PurchasePrice) {
		return nil, entity.ErrBasePriceTooLow
	}
	if req.AlternativePrice != nil && !req.AlternativePrice.GreaterThan(req.PurchasePrice) {
		return nil, entity.ErrBasePriceTooLow
	}

	room := &entity.Room{
		HotelID:            req.HotelID,
		Name:               req.Name,
		BoardType:          req.BoardType,
		PurchasePrice:      req.PurchasePrice,
		BasePrice:          req.BasePrice,
		AlternativePrice:   req.AlternativePrice,
		UseAlternativeRate: req.UseAlternativeRate,
		Quantity:           req.Quantity,
		Active:             true,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	logrus.Infof("Номер создан: ID=%d, Hotel=%d, Quantity=%d", room.ID, room.HotelID, room.Quantity)

	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, id int64) (*entity.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRoom(id); err == nil && cached != nil {
			return cached, nil
		}
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRoom(room); err != nil {
			logrus.Errorf("Ошибка записи номера в кэш: %v", err)
		}
	}

	return room, nil
}

func (s *roomService) GetHotelRooms(ctx context.Context, hotelID int64, activeOnly bool) ([]*entity.Room, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}

	return s.roomRepo.GetByHotelID(ctx, hotelID, activeOnly)
}

func (s *roomService) UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.BoardType != nil {
		if !req.BoardType.Valid() {
			return nil, entity.ErrInvalidBoardType
		}
		room.BoardType = *req.BoardType
	}
	if req.PurchasePrice != nil {
		room.PurchasePrice = *req.PurchasePrice
	}
	if req.BasePrice != nil {
		room.BasePrice = *req.BasePrice
	}
	if req.AlternativePrice != nil {
		room.AlternativePrice = req.AlternativePrice
	}
	if req.UseAlternativeRate != nil {
		room.UseAlternativeRate = *req.UseAlternativeRate
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", entity.ErrInvalidInput)
		}
		room.Quantity = *req.Quantity
	}

	if !room.BasePrice.GreaterThan(room.PurchasePrice) {
		return nil, entity.ErrBasePriceTooLow
	}
	if room.AlternativePrice != nil && !room.AlternativePrice.GreaterThan(room.PurchasePrice) {
		return nil, entity.ErrBasePriceTooLow
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.invalidate(id)

	return room, nil
}

// DeactivateRoom снимает номер с продажи; существующие бронирования не трогаем
func (s *roomService) DeactivateRoom(ctx context.Context, id int64) error {
	if err := s.roomRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.invalidate(id)
	logrus.Infof("Номер снят с продажи: ID=%d", id)

	return nil
}

func (s *roomService) AddSeasonalPrice(ctx context.Context, req *CreateSeasonalPriceRequest) (*entity.SeasonalPrice, error) {
	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	if !req.EndDate.Time.After(req.StartDate.Time) {
		return nil, entity.ErrInvalidDateRange
	}
	if !req.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: seasonal price must be positive", entity.ErrInvalidInput)
	}

	price := &entity.SeasonalPrice{
		RoomID:    req.RoomID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	}

	if err := s.seasonalRepo.Create(ctx, price); err != nil {
		return nil, err
	}

	logrus.Infof("Сезонная цена добавлена: ID=%d, Room=%d, %s..%s",
		price.ID, price.RoomID, price.StartDate, price.EndDate)

	return price, nil
}

func (s *roomService) GetSeasonalPrices(ctx context.Context, roomID int64) ([]*entity.SeasonalPrice, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	return s.seasonalRepo.GetByRoomID(ctx, roomID)
}

func (s *roomService) DeleteSeasonalPrice(ctx context.Context, id int64) error {
	return s.seasonalRepo.Delete(ctx, id)
}

func (s *roomService) invalidate(id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteRoom(id); err != nil {
		logrus.Errorf("Ошибка инвалидации кэша номера %d: %v", id, err)
	}
}
