package mysql

import (
	"context"
	"database/sql"

	"hyperfunnel/internal/domain"
)

// InsertBooking is the serialization point for double-booking
// prevention. The transaction takes the room's row lock before the
// overlap check, so concurrent writers for the same room execute
// check-then-insert one at a time; the loser of the race sees the
// winner's committed row and gets ErrConflict.
func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking, blocking []domain.BookingStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockRoom(ctx, tx, b.RoomID); err != nil {
		return err
	}
	n, err := countOverlaps(ctx, tx, b.RoomID, b, blocking, "")
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, insertBookingSQL,
		b.ID, b.HotelID, b.RoomID, fmtDate(b.CheckIn), fmtDate(b.CheckOut),
		b.Guests, b.Price, string(b.Status)); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateBooking rewrites a booking under the same room lock, excluding
// the booking itself from the overlap check.
func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking, blocking []domain.BookingStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockRoom(ctx, tx, b.RoomID); err != nil {
		return err
	}
	if b.Status != domain.StatusCancelled {
		n, err := countOverlaps(ctx, tx, b.RoomID, b, blocking, b.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
	}

	if _, err := tx.ExecContext(ctx, updateBookingSQL,
		b.HotelID, b.RoomID, fmtDate(b.CheckIn), fmtDate(b.CheckOut),
		b.Guests, b.Price, string(b.Status), b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) ConfirmBooking(ctx context.Context, id string, blocking []domain.BookingStatus) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	b, err := scanBooking(tx.QueryRowContext(ctx, selectBookingForUpdateSQL, id))
	if err != nil {
		return domain.Booking{}, err
	}
	if b.Status != domain.StatusPending {
		return domain.Booking{}, domain.ErrInvalidInput
	}

	if err := lockRoom(ctx, tx, b.RoomID); err != nil {
		return domain.Booking{}, err
	}
	n, err := countOverlaps(ctx, tx, b.RoomID, b, blocking, b.ID)
	if err != nil {
		return domain.Booking{}, err
	}
	if n > 0 {
		return domain.Booking{}, domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, setBookingStatusSQL, string(domain.StatusConfirmed), id); err != nil {
		return domain.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.StatusConfirmed
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, selectBookingSQL, id))
}

func (r *Repo) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	sqlStr := `
SELECT id, hotel_id, room_id, check_in, check_out, guests, price, status, created_at, updated_at
FROM bookings
WHERE 1=1`
	var args []any
	if q.HotelID != nil {
		sqlStr += ` AND hotel_id = ?`
		args = append(args, *q.HotelID)
	}
	if q.RoomID != nil {
		sqlStr += ` AND room_id = ?`
		args = append(args, *q.RoomID)
	}
	if q.Status != nil {
		sqlStr += ` AND status = ?`
		args = append(args, string(*q.Status))
	}
	sqlStr += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) SetBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	_, err := r.db.ExecContext(ctx, setBookingStatusSQL, string(status), id)
	return err
}

func lockRoom(ctx context.Context, tx *sql.Tx, roomID string) error {
	var id string
	if err := tx.QueryRowContext(ctx, lockRoomSQL, roomID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func countOverlaps(ctx context.Context, tx *sql.Tx, roomID string, b domain.Booking, blocking []domain.BookingStatus, excludeID string) (int, error) {
	in, args := statusesIn(blocking)
	q := `SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status IN (` + in + `) AND check_in < ? AND check_out > ?`
	all := append([]any{roomID}, args...)
	all = append(all, fmtDate(b.CheckOut), fmtDate(b.CheckIn))
	if excludeID != "" {
		q += ` AND id <> ?`
		all = append(all, excludeID)
	}
	var n int
	if err := tx.QueryRowContext(ctx, q, all...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var status string
	var updated sql.NullTime
	if err := row.Scan(&b.ID, &b.HotelID, &b.RoomID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.Price, &status, &b.CreatedAt, &updated); err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	if updated.Valid {
		b.UpdatedAt = updated.Time
	}
	return b, nil
}
