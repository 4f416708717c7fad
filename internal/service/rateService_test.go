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

func newTestRoom(t *testing.T, repo *fakeRoomRepo, base, alt string, useAlt bool) *entity.Room {
	t.Helper()

	room := &entity.Room{
		HotelID:       1,
		Name:          "Standard Double",
		BoardType:     entity.BoardTypeBedBreakfast,
		PurchasePrice: decimal.RequireFromString("100.00"),
		BasePrice:     decimal.RequireFromString(base),
		Quantity:      5,
		Active:        true,
	}
	if alt != "" {
		price := decimal.RequireFromString(alt)
		room.AlternativePrice = &price
	}
	room.UseAlternativeRate = useAlt

	require.NoError(t, repo.Create(context.Background(), room))
	return room
}

// TestResolveStayBaseRate тестирует расчет по базовому тарифу
func TestResolveStayBaseRate(t *testing.T) {
	roomRepo := newFakeRoomRepo()
	seasonalRepo := newFakeSeasonalRepo()
	rates := NewRateService(roomRepo, seasonalRepo)

	// base 250.00, alt 300.00, альтернативный тариф выключен
	room := newTestRoom(t, roomRepo, "250.00", "300.00", false)

	quote, err := rates.ResolveStay(context.Background(),
		room.ID,
		entity.NewDateOnly(2026, time.July, 10),
		entity.NewDateOnly(2026, time.July, 13),
	)

	require.NoError(t, err)
	assert.Equal(t, 3, quote.Nights)
	assert.False(t, quote.UseAlternativeRate)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("750.00")),
		"expected 750.00, got %s", quote.Total)
}

// TestResolveStayAlternativeRate тестирует расчет по альтернативному тарифу
func TestResolveStayAlternativeRate(t *testing.T) {
	roomRepo := newFakeRoomRepo()
	seasonalRepo := newFakeSeasonalRepo()
	rates := NewRateService(roomRepo, seasonalRepo)

	// base 180.00, alt 220.00, альтернативный тариф включен
	room := newTestRoom(t, roomRepo, "180.00", "220.00", true)

	quote, err := rates.ResolveStay(context.Background(),
		room.ID,
		entity.NewDateOnly(2026, time.August, 1),
		entity.NewDateOnly(2026, time.August, 6),
	)

	require.NoError(t, err)
	assert.Equal(t, 5, quote.Nights)
	assert.True(t, quote.UseAlternativeRate)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1100.00")),
		"expected 1100.00, got %s", quote.Total)
}

// TestResolveStaySeasonalOverride тестирует сезонное переопределение посреди
// проживания
func TestResolveStaySeasonalOverride(t *testing.T) {
	roomRepo := newFakeRoomRepo()
	seasonalRepo := newFakeSeasonalRepo()
	rates := NewRateService(roomRepo, seasonalRepo)

	room := newTestRoom(t, roomRepo, "200.00", "", false)

	// Сезон накрывает только вторую и третью ночь
	require.NoError(t, seasonalRepo.Create(context.Background(), &entity.SeasonalPrice{
		RoomID:    room.ID,
		StartDate: entity.NewDateOnly(2026, time.July, 11),
		EndDate:   entity.NewDateOnly(2026, time.July, 13),
		Price:     decimal.RequireFromString("350.00"),
	}))

	quote, err := rates.ResolveStay(context.Background(),
		room.ID,
		entity.NewDateOnly(2026, time.July, 10),
		entity.NewDateOnly(2026, time.July, 14),
	)

	require.NoError(t, err)
	require.Len(t, quote.NightlyRates, 4)

	assert.False(t, quote.NightlyRates[0].Seasonal)
	assert.True(t, quote.NightlyRates[1].Seasonal)
	assert.True(t, quote.NightlyRates[2].Seasonal)
	assert.False(t, quote.NightlyRates[3].Seasonal)

	// 200 + 350 + 350 + 200
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1100.00")),
		"expected 1100.00, got %s", quote.Total)
}

// TestResolveRateOverlapTieBreak тестирует политику пересечения сезонов:
// побеждает позже созданная запись, при равном времени создания большая по id
func TestResolveRateOverlapTieBreak(t *testing.T) {
	roomRepo := newFakeRoomRepo()
	seasonalRepo := newFakeSeasonalRepo()
	rates := NewRateService(roomRepo, seasonalRepo)

	room := newTestRoom(t, roomRepo, "200.00", "", false)

	date := entity.NewDateOnly(2026, time.July, 15)
	created := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	older := &entity.SeasonalPrice{
		RoomID:    room.ID,
		StartDate: entity.NewDateOnly(2026, time.July, 1),
		EndDate:   entity.NewDateOnly(2026, time.August, 1),
		Price:     decimal.RequireFromString("300.00"),
		CreatedAt: created,
	}
	newer := &entity.SeasonalPrice{
		RoomID:    room.ID,
		StartDate: entity.NewDateOnly(2026, time.July, 10),
		EndDate:   entity.NewDateOnly(2026, time.July, 20),
		Price:     decimal.RequireFromString("420.00"),
		CreatedAt: created.Add(time.Hour),
	}
	require.NoError(t, seasonalRepo.Create(context.Background(), older))
	require.NoError(t, seasonalRepo.Create(context.Background(), newer))

	rate, err := rates.ResolveRate(context.Background(), room.ID, date)
	require.NoError(t, err)
	assert.True(t, rate.Equal(newer.Price), "expected %s, got %s", newer.Price, rate)

	// Равное время создания: решает больший id
	sameTime := &entity.SeasonalPrice{
		RoomID:    room.ID,
		StartDate: entity.NewDateOnly(2026, time.July, 10),
		EndDate:   entity.NewDateOnly(2026, time.July, 20),
		Price:     decimal.RequireFromString("510.00"),
		CreatedAt: newer.CreatedAt,
	}
	require.NoError(t, seasonalRepo.Create(context.Background(), sameTime))

	rate, err = rates.ResolveRate(context.Background(), room.ID, date)
	require.NoError(t, err)
	assert.True(t, rate.Equal(sameTime.Price), "expected %s, got %s", sameTime.Price, rate)
}

// TestResolveStayInvalidRange тестирует отказ при некорректном диапазоне дат
func TestResolveStayInvalidRange(t *testing.T) {
	roomRepo := newFakeRoomRepo()
	rates := NewRateService(roomRepo, newFakeSeasonalRepo())

	room := newTestRoom(t, roomRepo, "200.00", "", false)

	_, err := rates.ResolveStay(context.Background(),
		room.ID,
		entity.NewDateOnly(2026, time.July, 13),
		entity.NewDateOnly(2026, time.July, 10),
	)
	assert.ErrorIs(t, err, entity.ErrInvalidDateRange)

	_, err = rates.ResolveStay(context.Background(),
		room.ID,
		entity.NewDateOnly(2026, time.July, 10),
		entity.NewDateOnly(2026, time.July, 10),
	)
	assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
}

// TestResolveRateRoomNotFound тестирует ошибку по отсутствующему номеру
func TestResolveRateRoomNotFound(t *testing.T) {
	rates := NewRateService(newFakeRoomRepo(), newFakeSeasonalRepo())

	_, err := rates.ResolveRate(context.Background(), 99, entity.NewDateOnly(2026, time.July, 10))
	assert.ErrorIs(t, err, entity.ErrRoomNotFound)
}
