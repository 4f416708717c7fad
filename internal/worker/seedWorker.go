package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

// AvailabilitySeedWorker поддерживает слоты доступности активных номеров
// заполненными на окно вперед, чтобы календарь не зависел от ленивых вставок
type AvailabilitySeedWorker struct {
	roomRepo         repository.RoomRepository
	availabilityRepo repository.AvailabilityRepository
	windowDays       int
	interval         time.Duration
}

const (
	defaultWindowDays   = 30
	defaultSeedInterval = time.Hour
)

// NewAvailabilitySeedWorker создает воркер; нулевые параметры заменяются
// значениями по умолчанию, чтобы пустая секция конфигурации не роняла тикер
func NewAvailabilitySeedWorker(
	roomRepo repository.RoomRepository,
	availabilityRepo repository.AvailabilityRepository,
	windowDays int,
	interval time.Duration,
) *AvailabilitySeedWorker {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if interval <= 0 {
		interval = defaultSeedInterval
	}
	return &AvailabilitySeedWorker{
		roomRepo:         roomRepo,
		availabilityRepo: availabilityRepo,
		windowDays:       windowDays,
		interval:         interval,
	}
}

func (w *AvailabilitySeedWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Availability seed worker started")

	// Первый прогон сразу, не дожидаясь тикера
	w.seedWindow(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Availability seed worker stopped")
			return
		case <-ticker.C:
			w.seedWindow(ctx)
		}
	}
}

// seedWindow досоздает отсутствующие слоты всех активных номеров
func (w *AvailabilitySeedWorker) seedWindow(ctx context.Context) {
	rooms, err := w.roomRepo.GetActive(ctx)
	if err != nil {
		logrus.Errorf("Failed to list active rooms for seeding: %v", err)
		return
	}

	if len(rooms) == 0 {
		return
	}

	now := time.Now()
	today := entity.NewDateOnly(now.Year(), now.Month(), now.Day())

	seeded := 0
	for _, room := range rooms {
		select {
		case <-ctx.Done():
			logrus.Info("Seeding interrupted by context cancellation")
			return
		default:
		}

		if err := w.availabilityRepo.EnsureWindow(ctx, room.ID, today, w.windowDays); err != nil {
			logrus.Errorf("Failed to seed availability for room %d: %v", room.ID, err)
			continue
		}
		seeded++
	}

	logrus.Infof("Availability window seeded: rooms=%d, days=%d", seeded, w.windowDays)
}
