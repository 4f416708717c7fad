package queue

import (
	"context"
	"time"
)

// Queue интерфейс очереди уведомлений
type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler func(*Task) error) error
	Close() error
}

// Task представляет отложенную задачу уведомления
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	ExecuteAt  time.Time              `json:"execute_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Типы задач back-office
const (
	TaskTypeNotifyBookingCreated   = "notify_booking_created"
	TaskTypeNotifyBookingCancelled = "notify_booking_cancelled"
	TaskTypeNotifyBookingExpired   = "notify_booking_expired"
	TaskTypeNotifyPaymentReceived  = "notify_payment_received"
)
