package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	queue       TaskPublisher
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	queue TaskPublisher,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		queue:       queue,
	}
}

// RegisterPayment фиксирует платеж по бронированию
func (s *paymentService) RegisterPayment(ctx context.Context, req *CreatePaymentRequest) (*entity.Payment, error) {
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, entity.ErrInvalidPaymentAmount
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", entity.ErrInvalidInput, req.Method)
	}

	if _, err := s.bookingRepo.GetByID(ctx, req.BookingID); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    req.Method,
	}
	if req.PaidAt != nil {
		payment.PaidAt = *req.PaidAt
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logrus.Infof("Платеж зарегистрирован: ID=%d, Booking=%d, Amount=%s",
		payment.ID, payment.BookingID, payment.Amount.StringFixed(2))

	if s.queue != nil {
		task := &Task{
			ID:   fmt.Sprintf("%s_%d_%d", TaskTypeNotifyPaymentReceived, payment.ID, time.Now().Unix()),
			Type: TaskTypeNotifyPaymentReceived,
			Data: map[string]interface{}{
				"payment_id": payment.ID,
				"booking_id": payment.BookingID,
				"amount":     payment.Amount.StringFixed(2),
				"method":     string(payment.Method),
			},
			ExecuteAt:  time.Now().Add(5 * time.Second),
			MaxRetries: 3,
		}
		if err := s.queue.Publish(ctx, task); err != nil {
			logrus.Errorf("Ошибка при публикации уведомления о платеже: %v", err)
		}
	}

	return payment, nil
}

// GetPaymentSummary возвращает платежи бронирования и производный статус оплаты
func (s *paymentService) GetPaymentSummary(ctx context.Context, bookingID int64) (*entity.PaymentSummary, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.SumByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &entity.PaymentSummary{
		BookingID:   bookingID,
		TotalAmount: booking.TotalAmount,
		PaidAmount:  paid,
		Remaining:   booking.TotalAmount.Sub(paid),
		Status:      entity.DerivePaymentStatus(booking.TotalAmount, paid),
		Payments:    payments,
	}, nil
}
