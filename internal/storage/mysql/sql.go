package mysql

const insertHotelSQL = `
INSERT INTO hotels (id, name, country, city, stars, images)
VALUES (?, ?, ?, ?, ?, ?)
`

const selectHotelSQL = `
SELECT id, name, country, city, stars, images, created_at, updated_at
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, name, country, city, stars, images, created_at, updated_at
FROM hotels
ORDER BY created_at, id
`

const updateHotelSQL = `
UPDATE hotels
SET name = ?, country = ?, city = ?, stars = ?, images = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

const listDestinationsSQL = `
SELECT DISTINCT country, city
FROM hotels
ORDER BY country, city
`

const insertRoomSQL = `
INSERT INTO rooms (id, hotel_id, name, description, price, max_guests, amenities, images)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRoomSQL = `
SELECT id, hotel_id, name, description, price, max_guests, amenities, images, created_at, updated_at
FROM rooms
WHERE id = ?
`

const updateRoomSQL = `
UPDATE rooms
SET name = ?, description = ?, price = ?, max_guests = ?, amenities = ?, images = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

const insertAvailabilitySQL = `
INSERT INTO availability (id, room_id, start_date, end_date, price_override, blocked)
VALUES (?, ?, ?, ?, ?, ?)
`

const selectAvailabilitySQL = `
SELECT id, room_id, start_date, end_date, price_override, blocked, created_at, updated_at
FROM availability
WHERE id = ?
`

const updateAvailabilitySQL = `
UPDATE availability
SET start_date = ?, end_date = ?, price_override = ?, blocked = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteAvailabilitySQL = `DELETE FROM availability WHERE id = ?`

// Half-open intersection: row [start_date, end_date) meets [?, ?).
const roomAvailabilitySQL = `
SELECT id, room_id, start_date, end_date, price_override, blocked, created_at, updated_at
FROM availability
WHERE room_id = ? AND start_date < ? AND end_date > ?
ORDER BY start_date
`

const blockRoomRangeSQL = `
UPDATE availability
SET blocked = TRUE, updated_at = CURRENT_TIMESTAMP
WHERE room_id = ? AND start_date < ? AND end_date > ?
`

const insertBookingSQL = `
INSERT INTO bookings (id, hotel_id, room_id, check_in, check_out, guests, price, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectBookingSQL = `
SELECT id, hotel_id, room_id, check_in, check_out, guests, price, status, created_at, updated_at
FROM bookings
WHERE id = ?
`

const updateBookingSQL = `
UPDATE bookings
SET hotel_id = ?, room_id = ?, check_in = ?, check_out = ?, guests = ?, price = ?, status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const setBookingStatusSQL = `
UPDATE bookings
SET status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// lockRoomSQL serializes bookings per room: every writer takes the
// room's row lock before the overlap check, so two overlapping inserts
// cannot interleave between check and insert.
const lockRoomSQL = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`

const selectBookingForUpdateSQL = `
SELECT id, hotel_id, room_id, check_in, check_out, guests, price, status, created_at, updated_at
FROM bookings
WHERE id = ?
FOR UPDATE
`
