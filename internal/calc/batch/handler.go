package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/respond"
)

type Handler struct {
	Policy beam.Policy
}

func (h *Handler) Beam(w http.ResponseWriter, r *http.Request) {
	var input BeamBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.BadPayload(w)
		return
	}
	res, err := CalculateBeam(input, h.Policy)
	if errors.Is(err, ErrNoItems) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
