package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hyperfunnel/internal/domain"
)

// Inputs are already shape-validated at the HTTP boundary; commands
// enforce the business invariants (existence, ranges, non-negative
// price) and keep the cache honest.

type HotelInput struct {
	Name    string
	Country string
	City    string
	Stars   *int
	Images  []string
}

type RoomInput struct {
	HotelID     string
	Name        string
	Description *string
	Price       float64
	MaxGuests   int
	Amenities   []string
	Images      []string
}

type AvailabilityInput struct {
	RoomID        string
	StartDate     time.Time
	EndDate       time.Time
	PriceOverride *float64
	Blocked       bool
}

type CommandService struct {
	hotels domain.HotelRepository
	rooms  domain.RoomRepository
	avail  domain.AvailabilityRepository
	cache  domain.Cache
}

func NewCommandService(h domain.HotelRepository, r domain.RoomRepository, a domain.AvailabilityRepository, cache domain.Cache) *CommandService {
	return &CommandService{hotels: h, rooms: r, avail: a, cache: cache}
}

func (s *CommandService) CreateHotel(ctx context.Context, in HotelInput) (domain.Hotel, error) {
	if in.Name == "" || in.Country == "" || in.City == "" {
		return domain.Hotel{}, domain.ErrInvalidInput
	}
	h := domain.Hotel{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Country: in.Country,
		City:    in.City,
		Stars:   in.Stars,
		Images:  in.Images,
	}
	if err := s.hotels.CreateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateDestinations(ctx)
	return s.hotels.GetHotel(ctx, h.ID)
}

func (s *CommandService) UpdateHotel(ctx context.Context, id string, in HotelInput) (domain.Hotel, error) {
	if in.Name == "" || in.Country == "" || in.City == "" {
		return domain.Hotel{}, domain.ErrInvalidInput
	}
	if _, err := s.hotels.GetHotel(ctx, id); err != nil {
		return domain.Hotel{}, err
	}
	h := domain.Hotel{
		ID:      id,
		Name:    in.Name,
		Country: in.Country,
		City:    in.City,
		Stars:   in.Stars,
		Images:  in.Images,
	}
	if err := s.hotels.UpdateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateHotel(ctx, id)
	s.invalidateDestinations(ctx)
	return s.hotels.GetHotel(ctx, id)
}

func (s *CommandService) DeleteHotel(ctx context.Context, id string) error {
	// Rooms and their bookings/availability cascade in storage.
	if err := s.hotels.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidateHotel(ctx, id)
	s.invalidateDestinations(ctx)
	return nil
}

func (s *CommandService) CreateRoom(ctx context.Context, in RoomInput) (domain.Room, error) {
	if in.Name == "" || in.Price < 0 {
		return domain.Room{}, domain.ErrInvalidInput
	}
	if _, err := s.hotels.GetHotel(ctx, in.HotelID); err != nil {
		return domain.Room{}, err
	}
	guests := in.MaxGuests
	if guests <= 0 {
		guests = 4
	}
	rm := domain.Room{
		ID:          uuid.NewString(),
		HotelID:     in.HotelID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		MaxGuests:   guests,
		Amenities:   in.Amenities,
		Images:      in.Images,
	}
	if err := s.rooms.CreateRoom(ctx, rm); err != nil {
		return domain.Room{}, err
	}
	s.invalidateHotel(ctx, in.HotelID)
	return s.rooms.GetRoom(ctx, rm.ID)
}

func (s *CommandService) UpdateRoom(ctx context.Context, id string, in RoomInput) (domain.Room, error) {
	if in.Name == "" || in.Price < 0 {
		return domain.Room{}, domain.ErrInvalidInput
	}
	existing, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	guests := in.MaxGuests
	if guests <= 0 {
		guests = existing.MaxGuests
	}
	rm := domain.Room{
		ID:          id,
		HotelID:     existing.HotelID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		MaxGuests:   guests,
		Amenities:   in.Amenities,
		Images:      in.Images,
	}
	if err := s.rooms.UpdateRoom(ctx, rm); err != nil {
		return domain.Room{}, err
	}
	s.invalidateHotel(ctx, existing.HotelID)
	return s.rooms.GetRoom(ctx, id)
}

func (s *CommandService) DeleteRoom(ctx context.Context, id string) error {
	rm, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.invalidateHotel(ctx, rm.HotelID)
	return nil
}

func (s *CommandService) CreateAvailability(ctx context.Context, in AvailabilityInput) (domain.Availability, error) {
	start, end := domain.Day(in.StartDate), domain.Day(in.EndDate)
	if !domain.ValidRange(start, end) {
		return domain.Availability{}, domain.ErrInvalidRange
	}
	if in.PriceOverride != nil && *in.PriceOverride < 0 {
		return domain.Availability{}, domain.ErrInvalidInput
	}
	if _, err := s.rooms.GetRoom(ctx, in.RoomID); err != nil {
		return domain.Availability{}, err
	}
	a := domain.Availability{
		ID:            uuid.NewString(),
		RoomID:        in.RoomID,
		StartDate:     start,
		EndDate:       end,
		PriceOverride: in.PriceOverride,
		Blocked:       in.Blocked,
	}
	if err := s.avail.CreateAvailability(ctx, a); err != nil {
		return domain.Availability{}, err
	}
	return s.avail.GetAvailability(ctx, a.ID)
}

func (s *CommandService) UpdateAvailability(ctx context.Context, id string, in AvailabilityInput) (domain.Availability, error) {
	start, end := domain.Day(in.StartDate), domain.Day(in.EndDate)
	if !domain.ValidRange(start, end) {
		return domain.Availability{}, domain.ErrInvalidRange
	}
	if in.PriceOverride != nil && *in.PriceOverride < 0 {
		return domain.Availability{}, domain.ErrInvalidInput
	}
	existing, err := s.avail.GetAvailability(ctx, id)
	if err != nil {
		return domain.Availability{}, err
	}
	a := domain.Availability{
		ID:            id,
		RoomID:        existing.RoomID,
		StartDate:     start,
		EndDate:       end,
		PriceOverride: in.PriceOverride,
		Blocked:       in.Blocked,
	}
	if err := s.avail.UpdateAvailability(ctx, a); err != nil {
		return domain.Availability{}, err
	}
	return s.avail.GetAvailability(ctx, id)
}

func (s *CommandService) DeleteAvailability(ctx context.Context, id string) error {
	return s.avail.DeleteAvailability(ctx, id)
}

// BlockRoomRange closes every availability range touching [start, end)
// and returns how many rows it touched.
func (s *CommandService) BlockRoomRange(ctx context.Context, roomID string, start, end time.Time) (int, error) {
	start, end = domain.Day(start), domain.Day(end)
	if !domain.ValidRange(start, end) {
		return 0, domain.ErrInvalidRange
	}
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return 0, err
	}
	return s.avail.BlockRoomRange(ctx, roomID, start, end)
}

func (s *CommandService) invalidateHotel(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%s", id))
}

func (s *CommandService) invalidateDestinations(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "destinations")
}
