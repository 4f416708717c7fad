package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

// Ручные in-memory фейки репозиториев для тестов сервисного слоя

type fakeHotelRepo struct {
	mu           sync.Mutex
	seq          int64
	hotels       map[int64]*entity.Hotel
	bookingCount map[int64]int
}

func newFakeHotelRepo() *fakeHotelRepo {
	return &fakeHotelRepo{
		hotels:       make(map[int64]*entity.Hotel),
		bookingCount: make(map[int64]int),
	}
}

func (f *fakeHotelRepo) Create(_ context.Context, hotel *entity.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.hotels {
		if existing.Code == hotel.Code {
			return entity.ErrHotelCodeExists
		}
	}
	f.seq++
	hotel.ID = f.seq
	f.hotels[hotel.ID] = hotel
	return nil
}

func (f *fakeHotelRepo) GetByID(_ context.Context, id int64) (*entity.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hotel, ok := f.hotels[id]
	if !ok {
		return nil, entity.ErrHotelNotFound
	}
	return hotel, nil
}

func (f *fakeHotelRepo) GetByCode(_ context.Context, code string) (*entity.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, hotel := range f.hotels {
		if hotel.Code == code {
			return hotel, nil
		}
	}
	return nil, entity.ErrHotelNotFound
}

func (f *fakeHotelRepo) GetAll(_ context.Context, activeOnly bool) ([]*entity.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var hotels []*entity.Hotel
	for _, hotel := range f.hotels {
		if activeOnly && !hotel.Active {
			continue
		}
		hotels = append(hotels, hotel)
	}
	return hotels, nil
}

func (f *fakeHotelRepo) Update(_ context.Context, hotel *entity.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[hotel.ID]; !ok {
		return entity.ErrHotelNotFound
	}
	f.hotels[hotel.ID] = hotel
	return nil
}

func (f *fakeHotelRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[id]; !ok {
		return entity.ErrHotelNotFound
	}
	delete(f.hotels, id)
	return nil
}

func (f *fakeHotelRepo) CountBookings(_ context.Context, hotelID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookingCount[hotelID], nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	seq   int64
	rooms map[int64]*entity.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[int64]*entity.Room)}
}

func (f *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	room.ID = f.seq
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, entity.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRoomRepo) GetByHotelID(_ context.Context, hotelID int64, activeOnly bool) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rooms []*entity.Room
	for _, room := range f.rooms {
		if room.HotelID != hotelID {
			continue
		}
		if activeOnly && !room.Active {
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[room.ID]; !ok {
		return entity.ErrRoomNotFound
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) Deactivate(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return entity.ErrRoomNotFound
	}
	room.Active = false
	return nil
}

func (f *fakeRoomRepo) GetActive(_ context.Context) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rooms []*entity.Room
	for _, room := range f.rooms {
		if room.Active {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

type fakeSeasonalRepo struct {
	mu     sync.Mutex
	seq    int64
	prices map[int64]*entity.SeasonalPrice
}

func newFakeSeasonalRepo() *fakeSeasonalRepo {
	return &fakeSeasonalRepo{prices: make(map[int64]*entity.SeasonalPrice)}
}

func (f *fakeSeasonalRepo) Create(_ context.Context, price *entity.SeasonalPrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	price.ID = f.seq
	if price.CreatedAt.IsZero() {
		price.CreatedAt = time.Now()
	}
	f.prices[price.ID] = price
	return nil
}

func (f *fakeSeasonalRepo) GetByID(_ context.Context, id int64) (*entity.SeasonalPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	price, ok := f.prices[id]
	if !ok {
		return nil, entity.ErrSeasonalNotFound
	}
	return price, nil
}

// GetByRoomID повторяет порядок боевого репозитория: свежие созданные раньше,
// при равном created_at раньше строка с большим id
func (f *fakeSeasonalRepo) GetByRoomID(_ context.Context, roomID int64) ([]*entity.SeasonalPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var prices []*entity.SeasonalPrice
	for _, price := range f.prices {
		if price.RoomID == roomID {
			prices = append(prices, price)
		}
	}
	for i := 0; i < len(prices); i++ {
		for j := i + 1; j < len(prices); j++ {
			a, b := prices[i], prices[j]
			if b.CreatedAt.After(a.CreatedAt) || (b.CreatedAt.Equal(a.CreatedAt) && b.ID > a.ID) {
				prices[i], prices[j] = prices[j], prices[i]
			}
		}
	}
	return prices, nil
}

func (f *fakeSeasonalRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prices[id]; !ok {
		return entity.ErrSeasonalNotFound
	}
	delete(f.prices, id)
	return nil
}

type fakeGuestRepo struct {
	mu     sync.Mutex
	seq    int64
	guests map[int64]*entity.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[int64]*entity.Guest)}
}

func (f *fakeGuestRepo) Create(_ context.Context, guest *entity.Guest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	guest.ID = f.seq
	f.guests[guest.ID] = guest
	return nil
}

func (f *fakeGuestRepo) GetByID(_ context.Context, id int64) (*entity.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	guest, ok := f.guests[id]
	if !ok {
		return nil, entity.ErrGuestNotFound
	}
	return guest, nil
}

func (f *fakeGuestRepo) GetAll(_ context.Context) ([]*entity.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var guests []*entity.Guest
	for _, guest := range f.guests {
		guests = append(guests, guest)
	}
	return guests, nil
}

func (f *fakeGuestRepo) SearchByName(_ context.Context, name string) ([]*entity.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var guests []*entity.Guest
	for _, guest := range f.guests {
		if guest.FullName == name {
			guests = append(guests, guest)
		}
	}
	return guests, nil
}

func (f *fakeGuestRepo) Update(_ context.Context, guest *entity.Guest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guests[guest.ID]; !ok {
		return entity.ErrGuestNotFound
	}
	f.guests[guest.ID] = guest
	return nil
}

// fakeLedger хранит слоты доступности в памяти и воспроизводит семантику
// условного декремента: либо все даты диапазона, либо ни одной
type fakeLedger struct {
	mu       sync.Mutex
	quantity map[int64]int
	slots    map[int64]map[string]*entity.AvailabilitySlot
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		quantity: make(map[int64]int),
		slots:    make(map[int64]map[string]*entity.AvailabilitySlot),
	}
}

func (f *fakeLedger) setQuantity(roomID int64, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quantity[roomID] = quantity
}

func (f *fakeLedger) slot(roomID int64, date entity.DateOnly) *entity.AvailabilitySlot {
	byDate, ok := f.slots[roomID]
	if !ok {
		byDate = make(map[string]*entity.AvailabilitySlot)
		f.slots[roomID] = byDate
	}
	s, ok := byDate[date.String()]
	if !ok {
		s = &entity.AvailabilitySlot{
			RoomID:         roomID,
			Date:           date,
			AvailableCount: f.quantity[roomID],
		}
		byDate[date.String()] = s
	}
	return s
}

func (f *fakeLedger) GetSlot(_ context.Context, roomID int64, date entity.DateOnly) (*entity.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if byDate, ok := f.slots[roomID]; ok {
		if s, ok := byDate[date.String()]; ok {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) GetRange(_ context.Context, roomID int64, from, to entity.DateOnly) ([]*entity.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.AvailabilitySlot
	_ = from.EachDay(to, func(d entity.DateOnly) error {
		if byDate, ok := f.slots[roomID]; ok {
			if s, ok := byDate[d.String()]; ok {
				result = append(result, s)
			}
		}
		return nil
	})
	return result, nil
}

func (f *fakeLedger) Reserve(_ context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reserveLocked(roomID, checkIn, checkOut, count)
}

func (f *fakeLedger) reserveLocked(roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	var touched []*entity.AvailabilitySlot
	err := checkIn.EachDay(checkOut, func(d entity.DateOnly) error {
		s := f.slot(roomID, d)
		if s.AvailableCount-s.BlockedCount < count {
			return entity.ErrInsufficientAvailability
		}
		s.AvailableCount -= count
		touched = append(touched, s)
		return nil
	})
	if err != nil {
		// Откат уже задетых дат
		for _, s := range touched {
			s.AvailableCount += count
		}
		return err
	}
	return nil
}

func (f *fakeLedger) Release(_ context.Context, roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releaseLocked(roomID, checkIn, checkOut, count)
}

func (f *fakeLedger) releaseLocked(roomID int64, checkIn, checkOut entity.DateOnly, count int) error {
	return checkIn.EachDay(checkOut, func(d entity.DateOnly) error {
		f.slot(roomID, d).AvailableCount += count
		return nil
	})
}

func (f *fakeLedger) Block(_ context.Context, roomID int64, date entity.DateOnly, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(roomID, date)
	if s.AvailableCount-s.BlockedCount < count {
		return entity.ErrInsufficientAvailability
	}
	s.BlockedCount += count
	return nil
}

func (f *fakeLedger) Unblock(_ context.Context, roomID int64, date entity.DateOnly, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.slot(roomID, date)
	if s.BlockedCount < count {
		return entity.ErrInsufficientAvailability
	}
	s.BlockedCount -= count
	return nil
}

func (f *fakeLedger) EnsureWindow(_ context.Context, roomID int64, from entity.DateOnly, days int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return from.EachDay(from.AddDays(days), func(d entity.DateOnly) error {
		f.slot(roomID, d)
		return nil
	})
}

// remaining возвращает остаток на дату для проверок в тестах
func (f *fakeLedger) remaining(roomID int64, date entity.DateOnly) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if byDate, ok := f.slots[roomID]; ok {
		if s, ok := byDate[date.String()]; ok {
			return s.Remaining()
		}
	}
	return f.quantity[roomID]
}

// fakeBookingRepo резервирует слоты в fakeLedger и хранит бронирования в памяти
type fakeBookingRepo struct {
	mu       sync.Mutex
	seq      int64
	bookings map[int64]*entity.Booking
	ledger   *fakeLedger
}

func newFakeBookingRepo(ledger *fakeLedger) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[int64]*entity.Booking),
		ledger:   ledger,
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if f.ledger != nil {
		if err := f.ledger.Reserve(ctx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.RoomsCount); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	booking.ID = f.seq
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter *entity.BookingFilter) ([]*entity.Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range f.bookings {
		if filter.HotelID != 0 && booking.HotelID != filter.HotelID {
			continue
		}
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, len(bookings), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (f *fakeBookingRepo) CancelWithRelease(ctx context.Context, id int64) error {
	f.mu.Lock()
	booking, ok := f.bookings[id]
	if !ok {
		f.mu.Unlock()
		return entity.ErrBookingNotFound
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		f.mu.Unlock()
		return entity.ErrInvalidStatusTransition
	}
	booking.Status = entity.BookingStatusCancelled
	f.mu.Unlock()

	if f.ledger != nil {
		return f.ledger.Release(ctx, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.RoomsCount)
	}
	return nil
}

func (f *fakeBookingRepo) GetStaleBookings(_ context.Context, before entity.DateOnly) ([]*entity.StaleBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stale []*entity.StaleBooking
	for _, booking := range f.bookings {
		if booking.Status == entity.BookingStatusPending && booking.CheckIn.Time.Before(before.Time) {
			stale = append(stale, &entity.StaleBooking{
				BookingID:  booking.ID,
				RoomID:     booking.RoomID,
				GuestID:    booking.GuestID,
				CheckIn:    booking.CheckIn,
				CheckOut:   booking.CheckOut,
				RoomsCount: booking.RoomsCount,
			})
		}
	}
	return stale, nil
}

func (f *fakeBookingRepo) GetHotelStats(_ context.Context, hotelID int64) (*entity.HotelBookingStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &entity.HotelBookingStats{HotelID: hotelID, Revenue: decimal.Zero}
	for _, booking := range f.bookings {
		if booking.HotelID != hotelID {
			continue
		}
		stats.TotalBookings++
		switch booking.Status {
		case entity.BookingStatusPending:
			stats.PendingCount++
		case entity.BookingStatusConfirmed:
			stats.ConfirmedCount++
		case entity.BookingStatusCheckedIn:
			stats.CheckedInCount++
		case entity.BookingStatusCheckedOut:
			stats.CheckedOutCount++
		case entity.BookingStatusCancelled:
			stats.CancelledCount++
		}
	}
	return stats, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	seq      int64
	payments map[int64][]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64][]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	payment.ID = f.seq
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	f.payments[payment.BookingID] = append(f.payments[payment.BookingID], payment)
	return nil
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments[bookingID], nil
}

func (f *fakePaymentRepo) SumByBookingID(_ context.Context, bookingID int64) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, payment := range f.payments[bookingID] {
		sum = sum.Add(payment.Amount)
	}
	return sum, nil
}

type fakeAgreementRepo struct {
	mu         sync.Mutex
	seq        int64
	agreements map[int64]*entity.Agreement
	failCreate bool
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{agreements: make(map[int64]*entity.Agreement)}
}

func (f *fakeAgreementRepo) Create(_ context.Context, agreement *entity.Agreement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return context.DeadlineExceeded
	}
	f.seq++
	agreement.ID = f.seq
	agreement.UploadedAt = time.Now()
	f.agreements[agreement.ID] = agreement
	return nil
}

func (f *fakeAgreementRepo) GetByID(_ context.Context, id int64) (*entity.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	agreement, ok := f.agreements[id]
	if !ok {
		return nil, entity.ErrAgreementNotFound
	}
	return agreement, nil
}

func (f *fakeAgreementRepo) GetByBookingID(_ context.Context, bookingID int64) ([]*entity.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var agreements []*entity.Agreement
	for _, agreement := range f.agreements {
		if agreement.BookingID == bookingID {
			agreements = append(agreements, agreement)
		}
	}
	return agreements, nil
}

func (f *fakeAgreementRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.agreements[id]; !ok {
		return entity.ErrAgreementNotFound
	}
	delete(f.agreements, id)
	return nil
}

// fakeFileStorage хранит файлы в памяти
type fakeFileStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: make(map[string][]byte)}
}

func (f *fakeFileStorage) Save(path string, data io.Reader) error {
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
	return nil
}

func (f *fakeFileStorage) Get(path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	if !ok {
		return nil, entity.ErrAgreementNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeFileStorage) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

func (f *fakeFileStorage) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *fakeFileStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// fakePublisher записывает опубликованные задачи
type fakePublisher struct {
	mu    sync.Mutex
	tasks []*Task
}

func (f *fakePublisher) Publish(_ context.Context, task *Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakePublisher) published() []*Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Task(nil), f.tasks...)
}
