package rebar

import (
	"encoding/json"
	"errors"
	"net/http"

	"CivilBot/internal/calc/respond"
)

type Handler struct{}

type request struct {
	Bars []Bar  `json:"bars"`
	Unit string `json:"unit"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	res, err := Calculate(req.Bars, req.Unit == "feet")
	if errors.Is(err, ErrNoBars) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
