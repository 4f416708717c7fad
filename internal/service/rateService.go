package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type rateService struct {
	roomRepo     repository.RoomRepository
	seasonalRepo repository.SeasonalPriceRepository
}

// NewRateService создает новый экземпляр RateService
func NewRateService(
	roomRepo repository.RoomRepository,
	seasonalRepo repository.SeasonalPriceRepository,
) RateService {
	return &rateService{
		roomRepo:     roomRepo,
		seasonalRepo: seasonalRepo,
	}
}

// ResolveRate вычисляет ночной тариф номера на дату
func (s *rateService) ResolveRate(ctx context.Context, roomID int64, date entity.DateOnly) (decimal.Decimal, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return decimal.Zero, err
	}

	prices, err := s.seasonalRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка при получении сезонных цен: %w", err)
	}

	rate, _ := resolveNight(room, prices, date)
	return rate, nil
}

// ResolveStay рассчитывает тариф каждой ночи полуинтервала [checkIn, checkOut)
// и суммарную стоимость за один юнит номера
func (s *rateService) ResolveStay(ctx context.Context, roomID int64, checkIn, checkOut entity.DateOnly) (*StayQuote, error) {
	if !checkOut.Time.After(checkIn.Time) {
		return nil, entity.ErrInvalidDateRange
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	prices, err := s.seasonalRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении сезонных цен: %w", err)
	}

	quote := &StayQuote{
		RoomID:             roomID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Total:              decimal.Zero,
		UseAlternativeRate: room.UseAlternativeRate && room.AlternativePrice != nil,
	}

	err = checkIn.EachDay(checkOut, func(date entity.DateOnly) error {
		rate, seasonal := resolveNight(room, prices, date)
		quote.NightlyRates = append(quote.NightlyRates, NightlyRate{
			Date:     date,
			Price:    rate,
			Seasonal: seasonal,
		})
		quote.Total = quote.Total.Add(rate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	quote.Nights = len(quote.NightlyRates)

	return quote, nil
}

// resolveNight выбирает тариф одной ночи: кандидат из цен номера, поверх
// которого действует сезонное переопределение. Срез цен отсортирован по
// приоритету, побеждает первый подходящий интервал
func resolveNight(room *entity.Room, prices []*entity.SeasonalPrice, date entity.DateOnly) (decimal.Decimal, bool) {
	for _, price := range prices {
		if price.Contains(date) {
			return price.Price, true
		}
	}

	if room.UseAlternativeRate && room.AlternativePrice != nil {
		return *room.AlternativePrice, false
	}

	return room.BasePrice, false
}
