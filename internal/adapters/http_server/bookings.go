package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

type bookingRequest struct {
	HotelID  string   `json:"hotel_id" validate:"required,uuid4"`
	RoomID   string   `json:"room_id" validate:"required,uuid4"`
	CheckIn  string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int      `json:"guests" validate:"omitempty,gte=1"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Status   string   `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type quoteRequest struct {
	RoomID   string `json:"room_id" validate:"required,uuid4"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"omitempty,gte=1"`
}

func (req bookingRequest) toInput() (app.BookingInput, error) {
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return app.BookingInput{}, err
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return app.BookingInput{}, err
	}
	return app.BookingInput{
		HotelID: req.HotelID, RoomID: req.RoomID,
		CheckIn: checkIn, CheckOut: checkOut,
		Guests: req.Guests, Price: req.Price,
		Status: domain.BookingStatus(req.Status),
	}, nil
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	q := domain.BookingsQuery{}
	if v := r.URL.Query().Get("hotel_id"); v != "" {
		q.HotelID = &v
	}
	if v := r.URL.Query().Get("room_id"); v != "" {
		q.RoomID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		st := domain.BookingStatus(v)
		if !st.Valid() {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "unknown booking status")
			return
		}
		q.Status = &st
	}
	bs, err := h.Q.ListBookings(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	out := []bookingView{}
	for _, b := range bs {
		out = append(out, toBookingView(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(b))
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := h.B.TryBook(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingView(b))
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := h.B.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(b))
}

// cancelBooking serves both DELETE /bookings/{id} and
// POST /bookings/{id}/cancel. Cancelling twice is a no-op success.
func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.B.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(b))
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.B.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(b))
}

func (h *Handlers) quoteBooking(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeError(w, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := h.B.QuoteBooking(r.Context(), req.RoomID, checkIn, checkOut, req.Guests)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteView(q))
}
