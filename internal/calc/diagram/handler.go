package diagram

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/respond"
)

type Handler struct {
	Policy beam.Policy
}

// Beam validates the beam like a design request, then answers with the
// diagrams in the format given by the "format" query parameter.
func (h *Handler) Beam(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFormat(r.URL.Query().Get("format"))
	if errors.Is(err, ErrUnknownFormat) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req beam.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	in, err := req.Resolve()
	if err == nil {
		_, err = beam.Design(in, h.Policy)
	}
	if err != nil {
		respond.CalcError(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	if err := Write(w, in.SpanM, in.UDLKNM, f); err != nil {
		log.Printf("beam diagram: %v", err)
	}
}
