package service

import (
	"context"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	roomRepo         repository.RoomRepository
}

// NewAvailabilityService создает новый экземпляр AvailabilityService
func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	roomRepo repository.RoomRepository,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		roomRepo:         roomRepo,
	}
}

// CheckAvailability возвращает остаток юнитов номера на дату; для дат без
// строки слота остаток равен полному quantity номера
func (s *availabilityService) CheckAvailability(ctx context.Context, roomID int64, date entity.DateOnly) (int, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}

	slot, err := s.availabilityRepo.GetSlot(ctx, roomID, date)
	if err != nil {
		return 0, err
	}
	if slot == nil {
		return room.Quantity, nil
	}

	return slot.Remaining(), nil
}

// GetCalendar возвращает слоты доступности полуинтервала [from, to), дополняя
// отсутствующие даты виртуальными слотами из quantity номера
func (s *availabilityService) GetCalendar(ctx context.Context, roomID int64, from, to entity.DateOnly) ([]*entity.AvailabilitySlot, error) {
	if !to.Time.After(from.Time) {
		return nil, entity.ErrInvalidDateRange
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	stored, err := s.availabilityRepo.GetRange(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*entity.AvailabilitySlot, len(stored))
	for _, slot := range stored {
		byDate[slot.Date.String()] = slot
	}

	var calendar []*entity.AvailabilitySlot
	err = from.EachDay(to, func(date entity.DateOnly) error {
		if slot, ok := byDate[date.String()]; ok {
			calendar = append(calendar, slot)
			return nil
		}
		calendar = append(calendar, &entity.AvailabilitySlot{
			RoomID:         roomID,
			Date:           date,
			AvailableCount: room.Quantity,
			BlockedCount:   0,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return calendar, nil
}

func (s *availabilityService) BlockUnits(ctx context.Context, roomID int64, date entity.DateOnly, count int) error {
	if count < 1 {
		return entity.ErrInvalidRoomsCount
	}
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Block(ctx, roomID, date, count); err != nil {
		return err
	}

	logrus.Infof("Заблокированы юниты: Room=%d, Date=%s, Count=%d", roomID, date, count)

	return nil
}

func (s *availabilityService) UnblockUnits(ctx context.Context, roomID int64, date entity.DateOnly, count int) error {
	if count < 1 {
		return entity.ErrInvalidRoomsCount
	}
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Unblock(ctx, roomID, date, count); err != nil {
		return err
	}

	logrus.Infof("Разблокированы юниты: Room=%d, Date=%s, Count=%d", roomID, date, count)

	return nil
}
