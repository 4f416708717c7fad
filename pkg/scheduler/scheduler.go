package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

const defaultExpiryInterval = 5 * time.Minute

// Scheduler периодически отменяет зависшие в pending бронирования
type Scheduler struct {
	bookingService service.BookingService
	interval       time.Duration
}

// NewScheduler создает планировщик; неположительный интервал заменяется
// значением по умолчанию, чтобы пустая секция конфигурации не роняла тикер
func NewScheduler(bookingService service.BookingService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.bookingService.ExpireStaleBookings(ctx); err != nil {
				logrus.Errorf("Error expiring stale bookings: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
