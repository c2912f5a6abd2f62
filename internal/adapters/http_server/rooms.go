package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

type roomRequest struct {
	HotelID     string   `json:"hotel_id" validate:"required,uuid4"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	MaxGuests   int      `json:"max_guests" validate:"omitempty,gte=1"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type blockRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	var hotelID *string
	if v := r.URL.Query().Get("hotel_id"); v != "" {
		hotelID = &v
	}
	rooms, err := h.Q.ListRooms(r.Context(), hotelID)
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

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := h.Q.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomView(rm))
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rm, err := h.C.CreateRoom(r.Context(), app.RoomInput{
		HotelID: req.HotelID, Name: req.Name, Description: req.Description,
		Price: req.Price, MaxGuests: req.MaxGuests,
		Amenities: req.Amenities, Images: req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomView(rm))
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rm, err := h.C.UpdateRoom(r.Context(), chi.URLParam(r, "id"), app.RoomInput{
		HotelID: req.HotelID, Name: req.Name, Description: req.Description,
		Price: req.Price, MaxGuests: req.MaxGuests,
		Amenities: req.Amenities, Images: req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomView(rm))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// roomCalendar returns the availability ranges touching
// [from, to), defaulting to the next 90 days.
func (h *Handlers) roomCalendar(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, err)
		return
	}
	start := domain.Day(time.Now())
	if from != nil {
		start = *from
	}
	end := start.AddDate(0, 0, 90)
	if to != nil {
		end = *to
	}
	avs, err := h.Q.RoomCalendar(r.Context(), chi.URLParam(r, "id"), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	out := []availabilityView{}
	for _, a := range avs {
		out = append(out, toAvailabilityView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) blockRoom(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	n, err := h.C.BlockRoomRange(r.Context(), chi.URLParam(r, "id"), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"blocked": n})
}
