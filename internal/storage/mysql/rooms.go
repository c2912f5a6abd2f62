package mysql

import (
	"context"
	"database/sql"

	"hyperfunnel/internal/domain"
)

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.ID, rm.HotelID, rm.Name, valStr(rm.Description), rm.Price, rm.MaxGuests,
		listJSON(rm.Amenities), listJSON(rm.Images))
	return err
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx, selectRoomSQL, id))
}

func (r *Repo) ListRooms(ctx context.Context, hotelID *string) ([]domain.Room, error) {
	q := `
SELECT id, hotel_id, name, description, price, max_guests, amenities, images, created_at, updated_at
FROM rooms`
	var args []any
	if hotelID != nil {
		q += ` WHERE hotel_id = ?`
		args = append(args, *hotelID)
	}
	q += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, updateRoomSQL,
		rm.Name, valStr(rm.Description), rm.Price, rm.MaxGuests,
		listJSON(rm.Amenities), listJSON(rm.Images), rm.ID)
	return err
}

func (r *Repo) DeleteRoom(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteRoomSQL, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var rm domain.Room
	var desc sql.NullString
	var amenities, images []byte
	var updated sql.NullTime
	if err := row.Scan(&rm.ID, &rm.HotelID, &rm.Name, &desc, &rm.Price, &rm.MaxGuests,
		&amenities, &images, &rm.CreatedAt, &updated); err != nil {
		if err == sql.ErrNoRows {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	if desc.Valid {
		d := desc.String
		rm.Description = &d
	}
	rm.Amenities = parseList(amenities)
	rm.Images = parseList(images)
	if updated.Valid {
		rm.UpdatedAt = updated.Time
	}
	return rm, nil
}
