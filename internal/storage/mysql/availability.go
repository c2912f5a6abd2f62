package mysql

import (
	"context"
	"database/sql"
	"time"

	"hyperfunnel/internal/domain"
)

func (r *Repo) CreateAvailability(ctx context.Context, a domain.Availability) error {
	_, err := r.db.ExecContext(ctx, insertAvailabilitySQL,
		a.ID, a.RoomID, fmtDate(a.StartDate), fmtDate(a.EndDate), valF64(a.PriceOverride), a.Blocked)
	return err
}

func (r *Repo) GetAvailability(ctx context.Context, id string) (domain.Availability, error) {
	return scanAvailability(r.db.QueryRowContext(ctx, selectAvailabilitySQL, id))
}

func (r *Repo) ListAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.Availability, error) {
	sqlStr := `
SELECT id, room_id, start_date, end_date, price_override, blocked, created_at, updated_at
FROM availability
WHERE 1=1`
	var args []any
	if q.RoomID != nil {
		sqlStr += ` AND room_id = ?`
		args = append(args, *q.RoomID)
	}
	if q.From != nil {
		sqlStr += ` AND end_date > ?`
		args = append(args, fmtDate(*q.From))
	}
	if q.To != nil {
		sqlStr += ` AND start_date < ?`
		args = append(args, fmtDate(*q.To))
	}
	if q.AvailableOnly {
		sqlStr += ` AND blocked = FALSE`
	}
	sqlStr += ` ORDER BY start_date, id`

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateAvailability(ctx context.Context, a domain.Availability) error {
	_, err := r.db.ExecContext(ctx, updateAvailabilitySQL,
		fmtDate(a.StartDate), fmtDate(a.EndDate), valF64(a.PriceOverride), a.Blocked, a.ID)
	return err
}

func (r *Repo) DeleteAvailability(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteAvailabilitySQL, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repo) RoomAvailability(ctx context.Context, roomID string, start, end time.Time) ([]domain.Availability, error) {
	rows, err := r.db.QueryContext(ctx, roomAvailabilitySQL, roomID, fmtDate(end), fmtDate(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) BlockRoomRange(ctx context.Context, roomID string, start, end time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, blockRoomRangeSQL, roomID, fmtDate(end), fmtDate(start))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanAvailability(row rowScanner) (domain.Availability, error) {
	var a domain.Availability
	var override sql.NullFloat64
	var updated sql.NullTime
	if err := row.Scan(&a.ID, &a.RoomID, &a.StartDate, &a.EndDate, &override, &a.Blocked,
		&a.CreatedAt, &updated); err != nil {
		if err == sql.ErrNoRows {
			return domain.Availability{}, domain.ErrNotFound
		}
		return domain.Availability{}, err
	}
	if override.Valid {
		v := override.Float64
		a.PriceOverride = &v
	}
	if updated.Valid {
		a.UpdatedAt = updated.Time
	}
	return a, nil
}
