package app

import (
	"context"
	"fmt"
	"time"

	"hyperfunnel/internal/domain"
)

type QueryService struct {
	hotels   domain.HotelRepository
	rooms    domain.RoomRepository
	avail    domain.AvailabilityRepository
	bookings domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(h domain.HotelRepository, r domain.RoomRepository, a domain.AvailabilityRepository, b domain.BookingRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{hotels: h, rooms: r, avail: a, bookings: b, cache: c, cacheTTL: ttl}
}

// GetHotel serves the hotel with its rooms, cache-aside.
func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.HotelWithRooms, error) {
	key := fmt.Sprintf("hotel:%s", id)
	if s.cache != nil {
		var hv domain.HotelWithRooms
		if ok, _ := s.cache.Get(ctx, key, &hv); ok {
			return hv, nil
		}
	}
	h, err := s.hotels.GetHotelWithRooms(ctx, id)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.hotels.ListHotels(ctx)
}

// Destinations is the distinct country/city aggregate behind
// GET /destinations. The list changes only on hotel writes, so it is
// cached under a single key the commands invalidate.
func (s *QueryService) Destinations(ctx context.Context) ([]domain.Destination, error) {
	if s.cache != nil {
		var out []domain.Destination
		if ok, _ := s.cache.Get(ctx, "destinations", &out); ok {
			return out, nil
		}
	}
	ds, err := s.hotels.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, "destinations", ds, int(s.cacheTTL.Seconds()))
	}
	return ds, nil
}

func (s *QueryService) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return s.rooms.GetRoom(ctx, id)
}

func (s *QueryService) ListRooms(ctx context.Context, hotelID *string) ([]domain.Room, error) {
	return s.rooms.ListRooms(ctx, hotelID)
}

func (s *QueryService) GetAvailability(ctx context.Context, id string) (domain.Availability, error) {
	return s.avail.GetAvailability(ctx, id)
}

func (s *QueryService) ListAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Availability, error) {
	return s.avail.ListAvailability(ctx, q)
}

// RoomCalendar lists a room's availability ranges inside a window.
func (s *QueryService) RoomCalendar(ctx context.Context, roomID string, from, to time.Time) ([]domain.Availability, error) {
	from, to = domain.Day(from), domain.Day(to)
	if !domain.ValidRange(from, to) {
		return nil, domain.ErrInvalidRange
	}
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.avail.RoomAvailability(ctx, roomID, from, to)
}

func (s *QueryService) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

func (s *QueryService) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx, q)
}
