package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	C    *app.CommandService
	B    *app.BookingService
	Seed *app.SeedService
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
		r.Delete("/{id}", h.deleteHotel)
		r.Get("/{id}/rooms", h.listHotelRooms)
	})

	s.mux.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.listRooms)
		r.Post("/", h.createRoom)
		r.Get("/{id}", h.getRoom)
		r.Put("/{id}", h.updateRoom)
		r.Delete("/{id}", h.deleteRoom)
		r.Get("/{id}/calendar", h.roomCalendar)
		r.Post("/{id}/block", h.blockRoom)
	})

	s.mux.Route("/availability", func(r chi.Router) {
		r.Get("/", h.listAvailability)
		r.Post("/", h.createAvailability)
		r.Get("/{id}", h.getAvailability)
		r.Put("/{id}", h.updateAvailability)
		r.Delete("/{id}", h.deleteAvailability)
	})

	s.mux.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.listBookings)
		r.Post("/", h.createBooking)
		r.Post("/quote", h.quoteBooking)
		r.Get("/{id}", h.getBooking)
		r.Put("/{id}", h.updateBooking)
		r.Delete("/{id}", h.cancelBooking)
		r.Post("/{id}/cancel", h.cancelBooking)
		r.Post("/{id}/confirm", h.confirmBooking)
	})

	s.mux.Get("/destinations", h.listDestinations)
	s.mux.Post("/seed", h.runSeed)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError translates domain sentinels into problem responses.
func writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", verrs.Error())
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decode unmarshals the request body into dst and runs struct
// validation. Unknown fields are rejected so typos surface as 400s.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidInput
	}
	return validate.Struct(dst)
}

// ---- hotels ----

type hotelRequest struct {
	Name    string   `json:"name" validate:"required"`
	Country string   `json:"country" validate:"required"`
	City    string   `json:"city" validate:"required"`
	Stars   *int     `json:"stars" validate:"omitempty,min=1,max=5"`
	Images  []string `json:"images"`
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := []hotelView{}
	for _, ht := range hotels {
		out = append(out, toHotelView(ht))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	ht, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelDetailView(ht))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req hotelRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ht, err := h.C.CreateHotel(r.Context(), app.HotelInput{
		Name: req.Name, Country: req.Country, City: req.City,
		Stars: req.Stars, Images: req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHotelView(ht))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	var req hotelRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ht, err := h.C.UpdateHotel(r.Context(), chi.URLParam(r, "id"), app.HotelInput{
		Name: req.Name, Country: req.Country, City: req.City,
		Stars: req.Stars, Images: req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelView(ht))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listHotelRooms(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Q.GetHotel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	rooms, err := h.Q.ListRooms(r.Context(), &id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := []roomView{}
	for _, rm := range rooms {
		out = append(out, toRoomView(rm))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- destinations / seed ----

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Q.Destinations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := []destinationView{}
	for _, d := range ds {
		out = append(out, destinationView{Country: d.Country, City: d.City})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) runSeed(w http.ResponseWriter, r *http.Request) {
	if h.Seed == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "seeding is not enabled")
		return
	}
	report, err := h.Seed.Seed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}
