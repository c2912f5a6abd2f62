package mysql

import (
	"context"
	"database/sql"

	"hyperfunnel/internal/domain"
)

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.ID, h.Name, h.Country, h.City, valInt(h.Stars), listJSON(h.Images))
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	return scanHotel(r.db.QueryRowContext(ctx, selectHotelSQL, id))
}

func (r *Repo) GetHotelWithRooms(ctx context.Context, id string) (domain.HotelWithRooms, error) {
	h, err := r.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	rooms, err := r.ListRooms(ctx, &id)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	return domain.HotelWithRooms{Hotel: h, Rooms: rooms}, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	// Existence is checked by the caller; RowsAffected is 0 for a
	// no-change update in MySQL, so it cannot signal "missing" here.
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		h.Name, h.Country, h.City, valInt(h.Stars), listJSON(h.Images), h.ID)
	return err
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	// Rooms, availability and bookings go with the hotel via
	// ON DELETE CASCADE in the schema.
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.Country, &d.City); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var stars sql.NullInt64
	var images []byte
	var updated sql.NullTime
	if err := row.Scan(&h.ID, &h.Name, &h.Country, &h.City, &stars, &images, &h.CreatedAt, &updated); err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	if stars.Valid {
		s := int(stars.Int64)
		h.Stars = &s
	}
	h.Images = parseList(images)
	if updated.Valid {
		h.UpdatedAt = updated.Time
	}
	return h, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
