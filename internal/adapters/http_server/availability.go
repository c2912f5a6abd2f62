package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hyperfunnel/internal/app"
	"hyperfunnel/internal/domain"
)

type availabilityRequest struct {
	RoomID        string   `json:"room_id" validate:"required,uuid4"`
	StartDate     string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	PriceOverride *float64 `json:"price_override" validate:"omitempty,gte=0"`
	Blocked       bool     `json:"blocked"`
}

func (req availabilityRequest) toInput() (app.AvailabilityInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return app.AvailabilityInput{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return app.AvailabilityInput{}, err
	}
	return app.AvailabilityInput{
		RoomID: req.RoomID, StartDate: start, EndDate: end,
		PriceOverride: req.PriceOverride, Blocked: req.Blocked,
	}, nil
}

func (h *Handlers) listAvailability(w http.ResponseWriter, r *http.Request) {
	q := domain.AvailabilityQuery{}
	if v := r.URL.Query().Get("room_id"); v != "" {
		q.RoomID = &v
	}
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
	q.From, q.To = from, to
	q.AvailableOnly = r.URL.Query().Get("available_only") == "true"

	avs, err := h.Q.ListAvailability(r.Context(), q)
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

func (h *Handlers) getAvailability(w http.ResponseWriter, r *http.Request) {
	a, err := h.Q.GetAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityView(a))
}

func (h *Handlers) createAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.C.CreateAvailability(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAvailabilityView(a))
}

func (h *Handlers) updateAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.C.UpdateAvailability(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailabilityView(a))
}

func (h *Handlers) deleteAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteAvailability(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
