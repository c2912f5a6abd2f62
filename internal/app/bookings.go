package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hyperfunnel/internal/adapters/observability"
	"hyperfunnel/internal/domain"
)

// Policy captures the two booking rules the storage schema leaves open:
// whether a booking must be covered by declared availability, and
// whether pending bookings hold their dates against other requests.
type Policy struct {
	RequireAvailability bool
	PendingBlocks       bool
}

// BlockingStatuses lists the statuses whose date ranges exclude others.
func (p Policy) BlockingStatuses() []domain.BookingStatus {
	if p.PendingBlocks {
		return []domain.BookingStatus{domain.StatusConfirmed, domain.StatusPending}
	}
	return []domain.BookingStatus{domain.StatusConfirmed}
}

type BookingInput struct {
	HotelID  string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Price    *float64
	Status   domain.BookingStatus
}

type BookingService struct {
	bookings domain.BookingRepository
	rooms    domain.RoomRepository
	avail    domain.AvailabilityRepository
	policy   Policy
}

func NewBookingService(b domain.BookingRepository, r domain.RoomRepository, a domain.AvailabilityRepository, p Policy) *BookingService {
	return &BookingService{bookings: b, rooms: r, avail: a, policy: p}
}

// TryBook validates the request, prices it, and hands the overlap
// check plus insert to the repository as one atomic step. Under
// concurrent overlapping requests for the same room at most one
// succeeds; the rest observe ErrConflict.
func (s *BookingService) TryBook(ctx context.Context, in BookingInput) (domain.Booking, error) {
	checkIn, checkOut := domain.Day(in.CheckIn), domain.Day(in.CheckOut)
	if !domain.ValidRange(checkIn, checkOut) {
		return domain.Booking{}, domain.ErrInvalidRange
	}
	if in.Guests <= 0 {
		in.Guests = 1
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.Booking{}, domain.ErrInvalidInput
	}

	room, err := s.rooms.GetRoom(ctx, in.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if in.HotelID != "" && in.HotelID != room.HotelID {
		// Room exists but not under the requested hotel.
		return domain.Booking{}, domain.ErrNotFound
	}

	avs, err := s.avail.RoomAvailability(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return domain.Booking{}, err
	}
	if s.policy.RequireAvailability && !domain.CoversRange(avs, checkIn, checkOut) {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, domain.ErrUnavailable
	}

	price := domain.TotalPrice(room.Price, avs, checkIn, checkOut)
	if in.Price != nil {
		price = *in.Price
	}

	status := domain.StatusConfirmed
	if in.Status == domain.StatusPending {
		status = domain.StatusPending
	}

	b := domain.Booking{
		ID:       uuid.NewString(),
		HotelID:  room.HotelID,
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
		Price:    price,
		Status:   status,
	}
	if err := s.bookings.InsertBooking(ctx, b, s.policy.BlockingStatuses()); err != nil {
		if err == domain.ErrConflict {
			observability.ObserveBooking("conflict")
		}
		return domain.Booking{}, err
	}
	observability.ObserveBooking("created")
	return s.bookings.GetBooking(ctx, b.ID)
}

// Cancel transitions a booking to cancelled. Cancelling an already
// cancelled booking is a no-op success.
func (s *BookingService) Cancel(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.Status == domain.StatusCancelled {
		return b, nil
	}
	if err := s.bookings.SetBookingStatus(ctx, id, domain.StatusCancelled); err != nil {
		return domain.Booking{}, err
	}
	observability.ObserveBooking("cancelled")
	b.Status = domain.StatusCancelled
	return b, nil
}

// Confirm promotes a pending booking, re-running the overlap check in
// the same transaction so a confirmation cannot sneak past a booking
// that landed since the hold was created.
func (s *BookingService) Confirm(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.bookings.ConfirmBooking(ctx, id, s.policy.BlockingStatuses())
	if err != nil {
		if err == domain.ErrConflict {
			observability.ObserveBooking("conflict")
		}
		return domain.Booking{}, err
	}
	observability.ObserveBooking("confirmed")
	return b, nil
}

// Update rewrites a booking (dates, room, guests, status) with the
// overlap check excluding the booking itself.
func (s *BookingService) Update(ctx context.Context, id string, in BookingInput) (domain.Booking, error) {
	existing, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}

	checkIn, checkOut := domain.Day(in.CheckIn), domain.Day(in.CheckOut)
	if !domain.ValidRange(checkIn, checkOut) {
		return domain.Booking{}, domain.ErrInvalidRange
	}
	if in.Guests <= 0 {
		in.Guests = existing.Guests
	}
	status := in.Status
	if status == "" {
		status = existing.Status
	}
	if !status.Valid() {
		return domain.Booking{}, domain.ErrInvalidInput
	}

	roomID := in.RoomID
	if roomID == "" {
		roomID = existing.RoomID
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if in.HotelID != "" && in.HotelID != room.HotelID {
		return domain.Booking{}, domain.ErrNotFound
	}

	avs, err := s.avail.RoomAvailability(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return domain.Booking{}, err
	}
	if s.policy.RequireAvailability && status != domain.StatusCancelled &&
		!domain.CoversRange(avs, checkIn, checkOut) {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, domain.ErrUnavailable
	}

	price := domain.TotalPrice(room.Price, avs, checkIn, checkOut)
	if in.Price != nil {
		if *in.Price < 0 {
			return domain.Booking{}, domain.ErrInvalidInput
		}
		price = *in.Price
	}

	b := domain.Booking{
		ID:       id,
		HotelID:  room.HotelID,
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
		Price:    price,
		Status:   status,
	}
	if err := s.bookings.UpdateBooking(ctx, b, s.policy.BlockingStatuses()); err != nil {
		if err == domain.ErrConflict {
			observability.ObserveBooking("conflict")
		}
		return domain.Booking{}, err
	}
	return s.bookings.GetBooking(ctx, id)
}

type NightRate struct {
	Date        time.Time
	Price       float64
	SpecialRate bool
}

type Quote struct {
	RoomID         string
	RoomName       string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	Nights         int
	TotalPrice     float64
	AvgPerNight    float64
	PriceBreakdown []NightRate
}

// QuoteBooking prices a stay without persisting anything.
func (s *BookingService) QuoteBooking(ctx context.Context, roomID string, checkIn, checkOut time.Time, guests int) (Quote, error) {
	checkIn, checkOut = domain.Day(checkIn), domain.Day(checkOut)
	if !domain.ValidRange(checkIn, checkOut) {
		return Quote{}, domain.ErrInvalidRange
	}
	if guests <= 0 {
		guests = 1
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return Quote{}, err
	}
	avs, err := s.avail.RoomAvailability(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}
	if s.policy.RequireAvailability && !domain.CoversRange(avs, checkIn, checkOut) {
		return Quote{}, domain.ErrUnavailable
	}

	q := Quote{
		RoomID:   room.ID,
		RoomName: room.Name,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		p := domain.NightlyPrice(room.Price, avs, d)
		q.PriceBreakdown = append(q.PriceBreakdown, NightRate{
			Date:        d,
			Price:       p,
			SpecialRate: p != room.Price,
		})
		q.TotalPrice += p
		q.Nights++
	}
	if q.Nights > 0 {
		q.AvgPerNight = q.TotalPrice / float64(q.Nights)
	}
	return q, nil
}
