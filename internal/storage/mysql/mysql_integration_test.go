//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hyperfunnel/internal/domain"
	mysqlrepo "hyperfunnel/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pint(i int) *int           { return &i }
func pfloat(f float64) *float64 { return &f }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hyperfunnel",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hyperfunnel")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedHotelRoom(t *testing.T, repo *mysqlrepo.Repo) (domain.Hotel, domain.Room) {
	t.Helper()
	ctx := context.Background()
	h := domain.Hotel{
		ID: uuid.NewString(), Name: "Grand Meridian",
		Country: "ES", City: "Barcelona",
		Stars: pint(5), Images: []string{},
	}
	if err := repo.CreateHotel(ctx, h); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	r := domain.Room{
		ID: uuid.NewString(), HotelID: h.ID, Name: "Deluxe Double",
		Description: pstr("Sea view"), Price: 120, MaxGuests: 2,
		Amenities: []string{"wifi"}, Images: []string{},
	}
	if err := repo.CreateRoom(ctx, r); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return h, r
}

// ---------- the tests ----------

func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()
	blocking := []domain.BookingStatus{domain.StatusConfirmed}

	h, r := seedHotelRoom(t, repo)

	t.Run("hotel round trip", func(t *testing.T) {
		got, err := repo.GetHotelWithRooms(ctx, h.ID)
		if err != nil {
			t.Fatalf("GetHotelWithRooms: %v", err)
		}
		if got.Name != "Grand Meridian" || len(got.Rooms) != 1 || got.Rooms[0].ID != r.ID {
			t.Fatalf("unexpected hotel: %+v", got)
		}
		if got.Stars == nil || *got.Stars != 5 {
			t.Fatalf("stars not persisted: %+v", got)
		}

		ds, err := repo.ListDestinations(ctx)
		if err != nil || len(ds) != 1 || ds[0].City != "Barcelona" {
			t.Fatalf("ListDestinations: %v %v", ds, err)
		}
	})

	t.Run("availability round trip", func(t *testing.T) {
		a := domain.Availability{
			ID: uuid.NewString(), RoomID: r.ID,
			StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-07-01"),
			PriceOverride: pfloat(99.5),
		}
		if err := repo.CreateAvailability(ctx, a); err != nil {
			t.Fatalf("CreateAvailability: %v", err)
		}
		avs, err := repo.RoomAvailability(ctx, r.ID, day(t, "2024-02-01"), day(t, "2024-02-10"))
		if err != nil || len(avs) != 1 {
			t.Fatalf("RoomAvailability: %v %v", avs, err)
		}
		if avs[0].PriceOverride == nil || *avs[0].PriceOverride != 99.5 {
			t.Fatalf("override lost: %+v", avs[0])
		}
		// a range outside the window is not returned
		avs, err = repo.RoomAvailability(ctx, r.ID, day(t, "2024-08-01"), day(t, "2024-08-10"))
		if err != nil || len(avs) != 0 {
			t.Fatalf("RoomAvailability outside: %v %v", avs, err)
		}
	})

	t.Run("overlap conflict and adjacent ok", func(t *testing.T) {
		first := domain.Booking{
			ID: uuid.NewString(), HotelID: h.ID, RoomID: r.ID,
			CheckIn: day(t, "2024-01-15"), CheckOut: day(t, "2024-01-17"),
			Guests: 2, Price: 240, Status: domain.StatusConfirmed,
		}
		if err := repo.InsertBooking(ctx, first, blocking); err != nil {
			t.Fatalf("InsertBooking: %v", err)
		}

		overlap := first
		overlap.ID = uuid.NewString()
		overlap.CheckIn, overlap.CheckOut = day(t, "2024-01-16"), day(t, "2024-01-18")
		if err := repo.InsertBooking(ctx, overlap, blocking); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("want ErrConflict, got %v", err)
		}
		if _, err := repo.GetBooking(ctx, overlap.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("conflicting booking must not persist, got %v", err)
		}

		adjacent := first
		adjacent.ID = uuid.NewString()
		adjacent.CheckIn, adjacent.CheckOut = day(t, "2024-01-17"), day(t, "2024-01-19")
		if err := repo.InsertBooking(ctx, adjacent, blocking); err != nil {
			t.Fatalf("adjacent booking: %v", err)
		}

		// cancelling frees the range for rebooking
		if err := repo.SetBookingStatus(ctx, first.ID, domain.StatusCancelled); err != nil {
			t.Fatalf("SetBookingStatus: %v", err)
		}
		rebook := first
		rebook.ID = uuid.NewString()
		if err := repo.InsertBooking(ctx, rebook, blocking); err != nil {
			t.Fatalf("rebook after cancel: %v", err)
		}
	})

	t.Run("confirm pending", func(t *testing.T) {
		hold := domain.Booking{
			ID: uuid.NewString(), HotelID: h.ID, RoomID: r.ID,
			CheckIn: day(t, "2024-03-01"), CheckOut: day(t, "2024-03-05"),
			Guests: 1, Price: 480, Status: domain.StatusPending,
		}
		if err := repo.InsertBooking(ctx, hold, blocking); err != nil {
			t.Fatalf("InsertBooking: %v", err)
		}
		got, err := repo.ConfirmBooking(ctx, hold.ID, blocking)
		if err != nil {
			t.Fatalf("ConfirmBooking: %v", err)
		}
		if got.Status != domain.StatusConfirmed {
			t.Fatalf("status after confirm: %s", got.Status)
		}
		// confirming twice is rejected
		if _, err := repo.ConfirmBooking(ctx, hold.ID, blocking); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("second confirm: %v", err)
		}
	})

	t.Run("cascade delete", func(t *testing.T) {
		if err := repo.DeleteHotel(ctx, h.ID); err != nil {
			t.Fatalf("DeleteHotel: %v", err)
		}
		if _, err := repo.GetRoom(ctx, r.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("room should cascade, got %v", err)
		}
		bs, err := repo.ListBookings(ctx, domain.BookingsQuery{RoomID: &r.ID})
		if err != nil || len(bs) != 0 {
			t.Fatalf("bookings should cascade: %v %v", bs, err)
		}
	})
}

// Concurrent inserts for the same room and dates must admit exactly
// one booking; the room row lock serializes the check-then-insert.
func TestRepo_MySQL_ConcurrentBooking_OneWins(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()
	blocking := []domain.BookingStatus{domain.StatusConfirmed}

	h, r := seedHotelRoom(t, repo)

	const attempts = 12
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := domain.Booking{
				ID: uuid.NewString(), HotelID: h.ID, RoomID: r.ID,
				CheckIn: day(t, "2024-05-10"), CheckOut: day(t, "2024-05-12"),
				Guests: 2, Price: 240, Status: domain.StatusConfirmed,
			}
			errs[i] = repo.InsertBooking(ctx, b, blocking)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("want exactly one winner, got %d", won)
	}

	bs, err := repo.ListBookings(ctx, domain.BookingsQuery{RoomID: &r.ID})
	if err != nil || len(bs) != 1 {
		t.Fatalf("persisted rows: %v %v", bs, err)
	}
}
