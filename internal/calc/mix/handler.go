package mix

import (
	"encoding/json"
	"net/http"

	"CivilBot/internal/calc/respond"
)

type Handler struct{}

// request accepts the volume in cubic feet when Unit is "feet".
type request struct {
	Input
	Unit string `json:"unit"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	in := req.Input
	if req.Unit == "feet" {
		in.VolumeM3 = in.VolumeM3 / CubicFeetPerM3
	}
	res, err := Calculate(in)
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
