package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"CivilBot/internal/calc/respond"
)

type Handler struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

type request struct {
	Tasks []Task `json:"tasks"`
	// Start is an optional YYYY-MM-DD date; today when empty.
	Start string `json:"start_date"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	start := time.Now()
	if h.Now != nil {
		start = h.Now()
	}
	if req.Start != "" {
		t, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		start = t
	}
	s, err := Create(req.Tasks, start)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, s)
}
