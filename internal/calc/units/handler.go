package units

import (
	"encoding/json"
	"errors"
	"net/http"

	"CivilBot/internal/calc/respond"
)

type Handler struct{}

type request struct {
	Kind  Kind    `json:"conversion_type"`
	Value float64 `json:"value"`
	From  string  `json:"from_unit"`
	To    string  `json:"to_unit"`
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	res, err := Convert(req.Kind, req.Value, req.From, req.To)
	if errors.Is(err, ErrUnknownUnit) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
