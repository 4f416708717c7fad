package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

func newPaymentTestEnv(t *testing.T, total string) (PaymentService, *fakePublisher, int64) {
	t.Helper()

	bookings := newFakeBookingRepo(nil)
	booking := &entity.Booking{
		HotelID: 1, RoomID: 1, GuestID: 1,
		TotalAmount: decimal.RequireFromString(total),
		Status:      entity.BookingStatusConfirmed,
	}
	require.NoError(t, bookings.Create(context.Background(), booking))

	publisher := &fakePublisher{}
	return NewPaymentService(newFakePaymentRepo(), bookings, publisher), publisher, booking.ID
}

// TestRegisterPaymentValidation тестирует отказы по сумме, способу и бронированию
func TestRegisterPaymentValidation(t *testing.T) {
	svc, _, bookingID := newPaymentTestEnv(t, "1000.00")

	tests := []struct {
		name    string
		req     *CreatePaymentRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     &CreatePaymentRequest{BookingID: bookingID, Amount: decimal.Zero, Method: entity.PaymentMethodCash},
			wantErr: entity.ErrInvalidPaymentAmount,
		},
		{
			name:    "negative amount",
			req:     &CreatePaymentRequest{BookingID: bookingID, Amount: decimal.RequireFromString("-50.00"), Method: entity.PaymentMethodCard},
			wantErr: entity.ErrInvalidPaymentAmount,
		},
		{
			name:    "unknown method",
			req:     &CreatePaymentRequest{BookingID: bookingID, Amount: decimal.RequireFromString("100.00"), Method: "crypto"},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "unknown booking",
			req:     &CreatePaymentRequest{BookingID: 99, Amount: decimal.RequireFromString("100.00"), Method: entity.PaymentMethodCash},
			wantErr: entity.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterPayment(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestRegisterPaymentPublishesNotification тестирует публикацию задачи о платеже
func TestRegisterPaymentPublishesNotification(t *testing.T) {
	svc, publisher, bookingID := newPaymentTestEnv(t, "1000.00")

	payment, err := svc.RegisterPayment(context.Background(), &CreatePaymentRequest{
		BookingID: bookingID,
		Amount:    decimal.RequireFromString("400.00"),
		Method:    entity.PaymentMethodTransfer,
	})

	require.NoError(t, err)
	assert.NotZero(t, payment.ID)
	assert.False(t, payment.PaidAt.IsZero())

	tasks := publisher.published()
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskTypeNotifyPaymentReceived, tasks[0].Type)
	assert.Equal(t, "400.00", tasks[0].Data["amount"])
}

// TestPaymentSummaryProgression тестирует производный статус оплаты
// по мере поступления платежей
func TestPaymentSummaryProgression(t *testing.T) {
	svc, _, bookingID := newPaymentTestEnv(t, "1000.00")

	summary, err := svc.GetPaymentSummary(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, summary.Status)
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("1000.00")))

	_, err = svc.RegisterPayment(context.Background(), &CreatePaymentRequest{
		BookingID: bookingID,
		Amount:    decimal.RequireFromString("300.00"),
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	summary, err = svc.GetPaymentSummary(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, summary.Status)
	assert.True(t, summary.PaidAmount.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("700.00")))
	assert.Len(t, summary.Payments, 1)

	_, err = svc.RegisterPayment(context.Background(), &CreatePaymentRequest{
		BookingID: bookingID,
		Amount:    decimal.RequireFromString("700.00"),
		Method:    entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	summary, err = svc.GetPaymentSummary(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, summary.Status)
	assert.True(t, summary.Remaining.Equal(decimal.Zero))
	assert.Len(t, summary.Payments, 2)

	_, err = svc.GetPaymentSummary(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}
