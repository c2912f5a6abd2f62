package app_test

import (
	"context"
	"sync"
	"time"

	"hyperfunnel/internal/domain"
)

// ---- in-memory fakes shared by the service tests ----

type fakeHotelRepo struct {
	mu     sync.Mutex
	hotels map[string]domain.Hotel
	rooms  *fakeRoomRepo
}

func newFakeHotelRepo(rooms *fakeRoomRepo) *fakeHotelRepo {
	return &fakeHotelRepo{hotels: map[string]domain.Hotel{}, rooms: rooms}
}

func (f *fakeHotelRepo) CreateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.CreatedAt = time.Now()
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeHotelRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeHotelRepo) GetHotelWithRooms(ctx context.Context, id string) (domain.HotelWithRooms, error) {
	h, err := f.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	rooms, _ := f.rooms.ListRooms(ctx, &id)
	return domain.HotelWithRooms{Hotel: h, Rooms: rooms}, nil
}

func (f *fakeHotelRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Hotel
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHotelRepo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[h.ID]; !ok {
		return domain.ErrNotFound
	}
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeHotelRepo) DeleteHotel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.hotels, id)
	return nil
}

func (f *fakeHotelRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[domain.Destination]bool{}
	var out []domain.Destination
	for _, h := range f.hotels {
		d := domain.Destination{Country: h.Country, City: h.City}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]domain.Room
}

func newFakeRoomRepo() *fakeRoomRepo { return &fakeRoomRepo{rooms: map[string]domain.Room{}} }

func (f *fakeRoomRepo) CreateRoom(ctx context.Context, r domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeRoomRepo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoomRepo) ListRooms(ctx context.Context, hotelID *string) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Room
	for _, r := range f.rooms {
		if hotelID == nil || r.HotelID == *hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) UpdateRoom(ctx context.Context, r domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[r.ID]; !ok {
		return domain.ErrNotFound
	}
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeRoomRepo) DeleteRoom(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

type fakeAvailRepo struct {
	mu  sync.Mutex
	avs map[string]domain.Availability
}

func newFakeAvailRepo() *fakeAvailRepo {
	return &fakeAvailRepo{avs: map[string]domain.Availability{}}
}

func (f *fakeAvailRepo) CreateAvailability(ctx context.Context, a domain.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.avs[a.ID] = a
	return nil
}

func (f *fakeAvailRepo) GetAvailability(ctx context.Context, id string) (domain.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.avs[id]
	if !ok {
		return domain.Availability{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAvailRepo) ListAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Availability
	for _, a := range f.avs {
		if q.RoomID != nil && a.RoomID != *q.RoomID {
			continue
		}
		if q.AvailableOnly && a.Blocked {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAvailRepo) UpdateAvailability(ctx context.Context, a domain.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.avs[a.ID]; !ok {
		return domain.ErrNotFound
	}
	f.avs[a.ID] = a
	return nil
}

func (f *fakeAvailRepo) DeleteAvailability(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.avs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.avs, id)
	return nil
}

func (f *fakeAvailRepo) RoomAvailability(ctx context.Context, roomID string, start, end time.Time) ([]domain.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Availability
	for _, a := range f.avs {
		if a.RoomID == roomID && domain.Overlaps(a.StartDate, a.EndDate, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAvailRepo) BlockRoomRange(ctx context.Context, roomID string, start, end time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, a := range f.avs {
		if a.RoomID == roomID && domain.Overlaps(a.StartDate, a.EndDate, start, end) {
			a.Blocked = true
			f.avs[id] = a
			n++
		}
	}
	return n, nil
}

// fakeBookingRepo mirrors the storage contract: the overlap check and
// insert happen under one lock, so concurrent TryBook calls race the
// same way they would against MySQL.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]domain.Booking{}}
}

func blocks(statuses []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) overlapLocked(b domain.Booking, blocking []domain.BookingStatus, excludeID string) bool {
	for _, ex := range f.bookings {
		if ex.RoomID != b.RoomID || ex.ID == excludeID || !blocks(blocking, ex.Status) {
			continue
		}
		if domain.Overlaps(ex.CheckIn, ex.CheckOut, b.CheckIn, b.CheckOut) {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) InsertBooking(ctx context.Context, b domain.Booking, blocking []domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapLocked(b, blocking, "") {
		return domain.ErrConflict
	}
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) UpdateBooking(ctx context.Context, b domain.Booking, blocking []domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	if b.Status != domain.StatusCancelled && f.overlapLocked(b, blocking, b.ID) {
		return domain.ErrConflict
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) ConfirmBooking(ctx context.Context, id string, blocking []domain.BookingStatus) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	if b.Status != domain.StatusPending {
		return domain.Booking{}, domain.ErrInvalidInput
	}
	if f.overlapLocked(b, blocking, id) {
		return domain.Booking{}, domain.ErrConflict
	}
	b.Status = domain.StatusConfirmed
	f.bookings[id] = b
	return b, nil
}

func (f *fakeBookingRepo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if q.HotelID != nil && b.HotelID != *q.HotelID {
			continue
		}
		if q.RoomID != nil && b.RoomID != *q.RoomID {
			continue
		}
		if q.Status != nil && b.Status != *q.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) SetBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	f.bookings[id] = b
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.HotelWithRooms:
		*d = v.(domain.HotelWithRooms)
	case *[]domain.Destination:
		*d = v.([]domain.Destination)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func ptr[T any](v T) *T { return &v }
