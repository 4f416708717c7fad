package queue

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TelegramBot интерфейс для отправки уведомлений персоналу
type TelegramBot interface {
	NotifyStaff(text string) error
}

// TaskHandler обрабатывает задачи уведомлений из очереди
type TaskHandler struct {
	telegramBot TelegramBot
}

// NewTaskHandler создает новый обработчик задач
func NewTaskHandler(telegramBot TelegramBot) *TaskHandler {
	return &TaskHandler{telegramBot: telegramBot}
}

// HandleTask обрабатывает задачу
func (h *TaskHandler) HandleTask(task *Task) error {
	logrus.Infof("Обработка задачи %s типа %s (попытка %d/%d)",
		task.ID, task.Type, task.Attempts, task.MaxRetries)

	switch task.Type {
	case TaskTypeNotifyBookingCreated:
		return h.notify(fmt.Sprintf(
			"🏨 Новое бронирование #%v: отель %v, номер %v, %v .. %v, юнитов: %v",
			task.Data["booking_id"], task.Data["hotel_id"], task.Data["room_id"],
			task.Data["check_in"], task.Data["check_out"], task.Data["rooms_count"]))
	case TaskTypeNotifyBookingCancelled:
		return h.notify(fmt.Sprintf(
			"❌ Бронирование #%v отменено: %v .. %v",
			task.Data["booking_id"], task.Data["check_in"], task.Data["check_out"]))
	case TaskTypeNotifyBookingExpired:
		return h.notify(fmt.Sprintf(
			"⏰ Бронирование #%v снято как зависшее: гость %v, отель %v, заезд %v",
			task.Data["booking_id"], task.Data["guest_name"],
			task.Data["hotel_name"], task.Data["check_in"]))
	case TaskTypeNotifyPaymentReceived:
		return h.notify(fmt.Sprintf(
			"💳 Платеж по брони #%v: %v (%v)",
			task.Data["booking_id"], task.Data["amount"], task.Data["method"]))
	default:
		return fmt.Errorf("неизвестный тип задачи: %s", task.Type)
	}
}

func (h *TaskHandler) notify(text string) error {
	if h.telegramBot == nil {
		// Бот не настроен, уведомление считаем доставленным
		logrus.Debugf("Telegram не настроен, пропуск уведомления: %s", text)
		return nil
	}
	return h.telegramBot.NotifyStaff(text)
}
