package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	CreateHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id string) (Hotel, error)
	GetHotelWithRooms(ctx context.Context, id string) (HotelWithRooms, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	DeleteHotel(ctx context.Context, id string) error
	ListDestinations(ctx context.Context) ([]Destination, error)
}

type RoomRepository interface {
	CreateRoom(ctx context.Context, r Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context, hotelID *string) ([]Room, error)
	UpdateRoom(ctx context.Context, r Room) error
	DeleteRoom(ctx context.Context, id string) error
}

type AvailabilityQuery struct {
	RoomID        *string
	From          *time.Time // inclusive
	To            *time.Time // exclusive
	AvailableOnly bool
}

type AvailabilityRepository interface {
	CreateAvailability(ctx context.Context, a Availability) error
	GetAvailability(ctx context.Context, id string) (Availability, error)
	ListAvailability(ctx context.Context, q AvailabilityQuery) ([]Availability, error)
	UpdateAvailability(ctx context.Context, a Availability) error
	DeleteAvailability(ctx context.Context, id string) error

	// RoomAvailability returns the ranges of a room intersecting
	// [start, end), blocked rows included.
	RoomAvailability(ctx context.Context, roomID string, start, end time.Time) ([]Availability, error)
	// BlockRoomRange marks every availability range of the room
	// intersecting [start, end) as blocked and returns the row count.
	BlockRoomRange(ctx context.Context, roomID string, start, end time.Time) (int, error)
}

type BookingsQuery struct {
	HotelID *string
	RoomID  *string
	Status  *BookingStatus
}

type BookingRepository interface {
	// InsertBooking atomically checks for an overlapping booking in
	// one of the blocking statuses and inserts b. Returns ErrConflict
	// when an overlap exists; no row is written in that case.
	InsertBooking(ctx context.Context, b Booking, blocking []BookingStatus) error
	// UpdateBooking re-runs the overlap check excluding b itself and
	// rewrites the row, with the same atomicity guarantee.
	UpdateBooking(ctx context.Context, b Booking, blocking []BookingStatus) error
	// ConfirmBooking transitions a pending booking to confirmed,
	// re-checking overlap within the same transaction.
	ConfirmBooking(ctx context.Context, id string, blocking []BookingStatus) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context, q BookingsQuery) ([]Booking, error)
	SetBookingStatus(ctx context.Context, id string, status BookingStatus) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
