package httpserver

import (
	"time"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

// Wire views keep the JSON contract independent of the domain structs.
// Dates that denote hotel nights are rendered as plain YYYY-MM-DD.

const dateLayout = "2006-01-02"

type hotelView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Stars     *int      `json:"stars,omitempty"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type hotelDetailView struct {
	hotelView
	Rooms []roomView `json:"rooms"`
}

type roomView struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotel_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"max_guests"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type availabilityView struct {
	ID            string   `json:"id"`
	RoomID        string   `json:"room_id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	PriceOverride *float64 `json:"price_override,omitempty"`
	Blocked       bool     `json:"blocked"`
}

type bookingView struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	RoomID    string    `json:"room_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Guests    int       `json:"guests"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type destinationView struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

type nightRateView struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	SpecialRate bool    `json:"special_rate"`
}

type quoteView struct {
	RoomID         string          `json:"room_id"`
	RoomName       string          `json:"room_name"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Guests         int             `json:"guests"`
	Nights         int             `json:"nights"`
	TotalPrice     float64         `json:"total_price"`
	AvgPerNight    float64         `json:"avg_per_night"`
	PriceBreakdown []nightRateView `json:"price_breakdown"`
}

func toHotelView(h domain.Hotel) hotelView {
	return hotelView{
		ID: h.ID, Name: h.Name, Country: h.Country, City: h.City,
		Stars: h.Stars, Images: emptyIfNil(h.Images),
		CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt,
	}
}

func toHotelDetailView(h domain.HotelWithRooms) hotelDetailView {
	v := hotelDetailView{hotelView: toHotelView(h.Hotel), Rooms: []roomView{}}
	for _, rm := range h.Rooms {
		v.Rooms = append(v.Rooms, toRoomView(rm))
	}
	return v
}

func toRoomView(r domain.Room) roomView {
	return roomView{
		ID: r.ID, HotelID: r.HotelID, Name: r.Name, Description: r.Description,
		Price: r.Price, MaxGuests: r.MaxGuests,
		Amenities: emptyIfNil(r.Amenities), Images: emptyIfNil(r.Images),
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func toAvailabilityView(a domain.Availability) availabilityView {
	return availabilityView{
		ID: a.ID, RoomID: a.RoomID,
		StartDate: a.StartDate.Format(dateLayout), EndDate: a.EndDate.Format(dateLayout),
		PriceOverride: a.PriceOverride, Blocked: a.Blocked,
	}
}

func toBookingView(b domain.Booking) bookingView {
	return bookingView{
		ID: b.ID, HotelID: b.HotelID, RoomID: b.RoomID,
		CheckIn: b.CheckIn.Format(dateLayout), CheckOut: b.CheckOut.Format(dateLayout),
		Guests: b.Guests, Price: b.Price, Status: string(b.Status),
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func toQuoteView(q app.Quote) quoteView {
	v := quoteView{
		RoomID: q.RoomID, RoomName: q.RoomName,
		CheckIn: q.CheckIn.Format(dateLayout), CheckOut: q.CheckOut.Format(dateLayout),
		Guests: q.Guests, Nights: q.Nights,
		TotalPrice: q.TotalPrice, AvgPerNight: q.AvgPerNight,
		PriceBreakdown: []nightRateView{},
	}
	for _, n := range q.PriceBreakdown {
		v.PriceBreakdown = append(v.PriceBreakdown, nightRateView{
			Date: n.Date.Format(dateLayout), Price: n.Price, SpecialRate: n.SpecialRate,
		})
	}
	return v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
