package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

func newRoomTestEnv(t *testing.T) (RoomService, *fakeHotelRepo, int64) {
	t.Helper()

	hotels := newFakeHotelRepo()
	hotel := &entity.Hotel{Code: "ALPHA", Name: "Alpha Hotel", Address: "Main st. 1", Active: true}
	require.NoError(t, hotels.Create(context.Background(), hotel))

	svc := NewRoomService(newFakeRoomRepo(), hotels, newFakeSeasonalRepo(), nil)
	return svc, hotels, hotel.ID
}

// TestCreateRoomPriceValidation тестирует правило: продажные цены выше закупочной
func TestCreateRoomPriceValidation(t *testing.T) {
	svc, _, hotelID := newRoomTestEnv(t)

	altBelow := decimal.RequireFromString("90.00")
	altAbove := decimal.RequireFromString("300.00")

	tests := []struct {
		name    string
		req     *CreateRoomRequest
		wantErr error
	}{
		{
			name: "base below purchase",
			req: &CreateRoomRequest{
				HotelID: hotelID, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
				PurchasePrice: decimal.RequireFromString("100.00"),
				BasePrice:     decimal.RequireFromString("80.00"),
				Quantity:      2,
			},
			wantErr: entity.ErrBasePriceTooLow,
		},
		{
			name: "base equals purchase",
			req: &CreateRoomRequest{
				HotelID: hotelID, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
				PurchasePrice: decimal.RequireFromString("100.00"),
				BasePrice:     decimal.RequireFromString("100.00"),
				Quantity:      2,
			},
			wantErr: entity.ErrBasePriceTooLow,
		},
		{
			name: "alternative below purchase",
			req: &CreateRoomRequest{
				HotelID: hotelID, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
				PurchasePrice:    decimal.RequireFromString("100.00"),
				BasePrice:        decimal.RequireFromString("250.00"),
				AlternativePrice: &altBelow,
				Quantity:         2,
			},
			wantErr: entity.ErrBasePriceTooLow,
		},
		{
			name: "unknown board type",
			req: &CreateRoomRequest{
				HotelID: hotelID, Name: "Standard", BoardType: "all_inclusive",
				PurchasePrice: decimal.RequireFromString("100.00"),
				BasePrice:     decimal.RequireFromString("250.00"),
				Quantity:      2,
			},
			wantErr: entity.ErrInvalidBoardType,
		},
		{
			name: "unknown hotel",
			req: &CreateRoomRequest{
				HotelID: 99, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
				PurchasePrice: decimal.RequireFromString("100.00"),
				BasePrice:     decimal.RequireFromString("250.00"),
				Quantity:      2,
			},
			wantErr: entity.ErrHotelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRoom(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	room, err := svc.CreateRoom(context.Background(), &CreateRoomRequest{
		HotelID: hotelID, Name: "Suite", BoardType: entity.BoardTypeHalfBoard,
		PurchasePrice:    decimal.RequireFromString("100.00"),
		BasePrice:        decimal.RequireFromString("250.00"),
		AlternativePrice: &altAbove,
		Quantity:         3,
	})
	require.NoError(t, err)
	assert.True(t, room.Active)
	assert.Equal(t, 3, room.Quantity)
}

// TestUpdateRoomRevalidatesPrices тестирует повторную проверку цен после обновления
func TestUpdateRoomRevalidatesPrices(t *testing.T) {
	svc, _, hotelID := newRoomTestEnv(t)

	room, err := svc.CreateRoom(context.Background(), &CreateRoomRequest{
		HotelID: hotelID, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
		PurchasePrice: decimal.RequireFromString("100.00"),
		BasePrice:     decimal.RequireFromString("250.00"),
		Quantity:      2,
	})
	require.NoError(t, err)

	// Поднятие закупочной выше продажной должно быть отклонено
	raised := decimal.RequireFromString("300.00")
	_, err = svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomRequest{PurchasePrice: &raised})
	assert.ErrorIs(t, err, entity.ErrBasePriceTooLow)

	zero := 0
	_, err = svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomRequest{Quantity: &zero})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	newBase := decimal.RequireFromString("280.00")
	updated, err := svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomRequest{BasePrice: &newBase})
	require.NoError(t, err)
	assert.True(t, updated.BasePrice.Equal(newBase))
}

// TestAddSeasonalPriceValidation тестирует проверки сезонного интервала
func TestAddSeasonalPriceValidation(t *testing.T) {
	svc, _, hotelID := newRoomTestEnv(t)

	room, err := svc.CreateRoom(context.Background(), &CreateRoomRequest{
		HotelID: hotelID, Name: "Standard", BoardType: entity.BoardTypeRoomOnly,
		PurchasePrice: decimal.RequireFromString("100.00"),
		BasePrice:     decimal.RequireFromString("250.00"),
		Quantity:      2,
	})
	require.NoError(t, err)

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.AddSeasonalPrice(context.Background(), &CreateSeasonalPriceRequest{
			RoomID:    room.ID,
			StartDate: entity.NewDateOnly(2026, time.August, 31),
			EndDate:   entity.NewDateOnly(2026, time.June, 1),
			Price:     decimal.RequireFromString("350.00"),
		})
		assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := svc.AddSeasonalPrice(context.Background(), &CreateSeasonalPriceRequest{
			RoomID:    room.ID,
			StartDate: entity.NewDateOnly(2026, time.June, 1),
			EndDate:   entity.NewDateOnly(2026, time.August, 31),
			Price:     decimal.Zero,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.AddSeasonalPrice(context.Background(), &CreateSeasonalPriceRequest{
			RoomID:    99,
			StartDate: entity.NewDateOnly(2026, time.June, 1),
			EndDate:   entity.NewDateOnly(2026, time.August, 31),
			Price:     decimal.RequireFromString("350.00"),
		})
		assert.ErrorIs(t, err, entity.ErrRoomNotFound)
	})

	price, err := svc.AddSeasonalPrice(context.Background(), &CreateSeasonalPriceRequest{
		RoomID:    room.ID,
		StartDate: entity.NewDateOnly(2026, time.June, 1),
		EndDate:   entity.NewDateOnly(2026, time.August, 31),
		Price:     decimal.RequireFromString("350.00"),
	})
	require.NoError(t, err)

	prices, err := svc.GetSeasonalPrices(context.Background(), room.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, price.ID, prices[0].ID)
}
