package app_test

import (
	"context"
	"testing"
	"time"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

func queryFixture() (*app.QueryService, *app.CommandService, *fakeCache) {
	rooms := newFakeRoomRepo()
	hotels := newFakeHotelRepo(rooms)
	avail := newFakeAvailRepo()
	bookings := newFakeBookingRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(hotels, rooms, avail, bookings, cache, 10*time.Minute)
	c := app.NewCommandService(hotels, rooms, avail, cache)
	return q, c, cache
}

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	q, c, _ := queryFixture()
	ctx := context.Background()

	h, err := c.CreateHotel(ctx, app.HotelInput{Name: "Grand", Country: "ES", City: "Barcelona", Stars: ptr(5)})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}

	// miss populates the cache
	got, err := q.GetHotel(ctx, h.ID)
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Name != "Grand" || got.Stars == nil || *got.Stars != 5 {
		t.Fatalf("unexpected hotel: %+v", got)
	}

	// adding a room invalidates the cached entry
	_, err = c.CreateRoom(ctx, app.RoomInput{HotelID: h.ID, Name: "Suite", Price: 200})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	got2, err := q.GetHotel(ctx, h.ID)
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if len(got2.Rooms) != 1 {
		t.Fatalf("expected fresh read after invalidation, rooms=%d", len(got2.Rooms))
	}
	got3, _ := q.GetHotel(ctx, h.ID)
	if len(got3.Rooms) != 1 {
		t.Fatalf("cached read: rooms=%d", len(got3.Rooms))
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q, _, _ := queryFixture()
	if _, err := q.GetHotel(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDestinations_CachedAndInvalidated(t *testing.T) {
	q, c, cache := queryFixture()
	ctx := context.Background()

	if _, err := c.CreateHotel(ctx, app.HotelInput{Name: "A", Country: "ES", City: "Barcelona"}); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	ds, err := q.Destinations(ctx)
	if err != nil || len(ds) != 1 {
		t.Fatalf("Destinations: %v %v", ds, err)
	}
	if _, ok := cache.store["destinations"]; !ok {
		t.Fatal("destinations not cached")
	}

	// a new hotel in a new city invalidates the aggregate
	if _, err := c.CreateHotel(ctx, app.HotelInput{Name: "B", Country: "PT", City: "Lisbon"}); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	ds, err = q.Destinations(ctx)
	if err != nil || len(ds) != 2 {
		t.Fatalf("after invalidation: %v %v", ds, err)
	}
}

func TestRoomCalendar_Validation(t *testing.T) {
	q, c, _ := queryFixture()
	ctx := context.Background()

	h, _ := c.CreateHotel(ctx, app.HotelInput{Name: "A", Country: "ES", City: "Barcelona"})
	rm, _ := c.CreateRoom(ctx, app.RoomInput{HotelID: h.ID, Name: "Std", Price: 80})
	if _, err := c.CreateAvailability(ctx, app.AvailabilityInput{
		RoomID: rm.ID, StartDate: d("2024-01-01"), EndDate: d("2024-02-01"),
	}); err != nil {
		t.Fatalf("CreateAvailability: %v", err)
	}

	avs, err := q.RoomCalendar(ctx, rm.ID, d("2024-01-10"), d("2024-01-20"))
	if err != nil || len(avs) != 1 {
		t.Fatalf("RoomCalendar: %v %v", avs, err)
	}
	if _, err := q.RoomCalendar(ctx, rm.ID, d("2024-01-20"), d("2024-01-10")); err != domain.ErrInvalidRange {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
	if _, err := q.RoomCalendar(ctx, "missing", d("2024-01-10"), d("2024-01-20")); err != domain.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
