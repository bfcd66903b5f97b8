package beam

import (
	"encoding/json"
	"net/http"

	"CivilBot/internal/calc/respond"
)

type Handler struct {
	Policy Policy
}

// Request is the body of a beam calculation. With AutoSize set, a missing
// width or depth is filled from Proportion before design.
type Request struct {
	Input
	AutoSize bool `json:"auto_size"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	in, err := req.Resolve()
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	res, err := Design(in, h.Policy)
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// Resolve returns the design input, applying auto-sizing when requested.
func (req Request) Resolve() (Input, error) {
	in := req.Input
	if !req.AutoSize || (in.WidthMM > 0 && in.EffectiveDepthMM > 0) {
		return in, nil
	}
	s, err := Proportion(in.SpanM)
	if err != nil {
		return Input{}, err
	}
	if in.WidthMM <= 0 {
		in.WidthMM = s.WidthMM
	}
	if in.EffectiveDepthMM <= 0 {
		in.EffectiveDepthMM = s.EffectiveDepthMM
	}
	return in, nil
}
