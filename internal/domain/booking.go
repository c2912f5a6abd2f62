package domain

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking reserves a room for the half-open date interval
// [CheckIn, CheckOut). Cancellation keeps the row and flips Status.
type Booking struct {
	ID        string
	HotelID   string
	RoomID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Price     float64
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Availability declares open inventory for a room over the half-open
// range [StartDate, EndDate). A blocked range counts as closed even
// though the row exists.
type Availability struct {
	ID            string
	RoomID        string
	StartDate     time.Time
	EndDate       time.Time
	PriceOverride *float64
	Blocked       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
