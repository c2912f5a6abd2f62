package domain

import "time"

type Hotel struct {
	ID        string
	Name      string
	Country   string
	City      string
	Stars     *int
	Images    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID          string
	HotelID     string
	Name        string
	Description *string
	Price       float64
	MaxGuests   int
	Amenities   []string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Destination is a distinct (country, city) pair with at least one hotel.
type Destination struct {
	Country string
	City    string
}

type HotelWithRooms struct {
	Hotel
	Rooms []Room
}
