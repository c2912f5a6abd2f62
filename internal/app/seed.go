package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hyperfunnel/internal/domain"
)

// SeedService populates demo hotels, rooms and availability. Hotels are
// inserted concurrently under a weighted semaphore; each hotel's rooms
// and availability follow inside the same goroutine to keep FK order.
type SeedService struct {
	commands *CommandService
	workers  int
}

func NewSeedService(c *CommandService, workers int) *SeedService {
	if workers <= 0 {
		workers = 8
	}
	return &SeedService{commands: c, workers: workers}
}

type SeedReport struct {
	Hotels       int `json:"hotels"`
	Rooms        int `json:"rooms"`
	Availability int `json:"availability"`
}

type seedRoom struct {
	name      string
	desc      string
	price     float64
	maxGuests int
	amenities []string
}

type seedHotel struct {
	name    string
	country string
	city    string
	stars   int
	rooms   []seedRoom
}

var sampleHotels = []seedHotel{
	{
		name: "Grand Meridian", country: "ES", city: "Barcelona", stars: 5,
		rooms: []seedRoom{
			{name: "Deluxe Double", desc: "Sea view, balcony", price: 180, maxGuests: 2, amenities: []string{"wifi", "minibar", "ac"}},
			{name: "Junior Suite", desc: "Separate living area", price: 260, maxGuests: 3, amenities: []string{"wifi", "minibar", "ac", "bathtub"}},
		},
	},
	{
		name: "Harbor Lights", country: "PT", city: "Lisbon", stars: 4,
		rooms: []seedRoom{
			{name: "Standard Twin", desc: "Quiet courtyard side", price: 95, maxGuests: 2, amenities: []string{"wifi", "ac"}},
			{name: "Family Room", desc: "Two connecting rooms", price: 150, maxGuests: 4, amenities: []string{"wifi", "ac", "crib"}},
		},
	},
	{
		name: "Alpenrose", country: "AT", city: "Innsbruck", stars: 3,
		rooms: []seedRoom{
			{name: "Mountain Double", desc: "South-facing, ski storage", price: 120, maxGuests: 2, amenities: []string{"wifi", "sauna"}},
		},
	},
	{
		name: "Bosphorus View", country: "TR", city: "Istanbul", stars: 5,
		rooms: []seedRoom{
			{name: "Corner Suite", desc: "Strait panorama", price: 310, maxGuests: 2, amenities: []string{"wifi", "minibar", "ac", "butler"}},
			{name: "Classic Double", desc: "", price: 140, maxGuests: 2, amenities: []string{"wifi", "ac"}},
		},
	},
}

// Seed inserts the sample data set and opens 90 days of availability
// per room starting today. Safe to call repeatedly: each call inserts
// fresh rows with new IDs.
func (s *SeedService) Seed(ctx context.Context) (SeedReport, error) {
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var report SeedReport
	var firstErr error

	today := domain.Day(time.Now())

	for _, sh := range sampleHotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			return report, err
		}
		wg.Add(1)
		go func(sh seedHotel) {
			defer wg.Done()
			defer sem.Release(1)

			stars := sh.stars
			h, err := s.commands.CreateHotel(ctx, HotelInput{
				Name: sh.name, Country: sh.country, City: sh.city, Stars: &stars,
			})
			if err != nil {
				log.Warn().Err(err).Str("hotel", sh.name).Msg("seed hotel failed")
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			rooms, avail := 0, 0
			for _, sr := range sh.rooms {
				in := RoomInput{
					HotelID: h.ID, Name: sr.name, Price: sr.price,
					MaxGuests: sr.maxGuests, Amenities: sr.amenities,
				}
				if sr.desc != "" {
					d := sr.desc
					in.Description = &d
				}
				rm, err := s.commands.CreateRoom(ctx, in)
				if err != nil {
					log.Warn().Err(err).Str("room", sr.name).Msg("seed room failed")
					continue
				}
				rooms++

				if _, err := s.commands.CreateAvailability(ctx, AvailabilityInput{
					RoomID:    rm.ID,
					StartDate: today,
					EndDate:   today.AddDate(0, 0, 90),
				}); err != nil {
					log.Warn().Err(err).Str("room", sr.name).Msg("seed availability failed")
					continue
				}
				avail++
			}

			mu.Lock()
			report.Hotels++
			report.Rooms += rooms
			report.Availability += avail
			mu.Unlock()
			log.Info().Str("hotel", sh.name).Int("rooms", rooms).Msg("seeded")
		}(sh)
	}

	wg.Wait()
	return report, firstErr
}
