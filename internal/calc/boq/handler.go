package boq

import (
	"encoding/json"
	"net/http"

	"CivilBot/internal/calc/respond"
)

type Handler struct {
	// Defaults fills rates and percentages the request leaves out.
	Defaults Options
}

// Request is the body of an estimate. Omitted fields fall back to the handler
// defaults; rates and steel percents are merged per key.
type Request struct {
	Elements      []ElementSpec        `json:"elements"`
	Rates         map[ItemKind]float64 `json:"rates,omitempty"`
	LabourPercent *float64             `json:"labour_percent,omitempty"`
	SteelPercent  map[Shape]float64    `json:"steel_percent,omitempty"`
}

// Options merges the request overrides onto defaults.
func (req Request) Options(defaults Options) Options {
	opts := Options{
		LabourPercent: defaults.LabourPercent,
		Rates:         make(map[ItemKind]float64, len(defaults.Rates)+len(req.Rates)),
		SteelPercent:  make(map[Shape]float64, len(Shapes)),
	}
	for k, v := range defaults.Rates {
		opts.Rates[k] = v
	}
	for k, v := range req.Rates {
		opts.Rates[k] = v
	}
	for k, v := range DefaultSteelPercent() {
		opts.SteelPercent[k] = v
	}
	for k, v := range defaults.SteelPercent {
		opts.SteelPercent[k] = v
	}
	for k, v := range req.SteelPercent {
		if v > 0 {
			opts.SteelPercent[k] = v
		}
	}
	if req.LabourPercent != nil && *req.LabourPercent >= 0 {
		opts.LabourPercent = *req.LabourPercent
	}
	return opts
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	bill, err := Estimate(req.Elements, req.Options(h.Defaults))
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, bill)
}

type roomRequest struct {
	RoomInput
	Rates         map[ItemKind]float64 `json:"rates,omitempty"`
	LabourPercent *float64             `json:"labour_percent,omitempty"`
}

func (h *Handler) Room(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	opts := Request{Rates: req.Rates, LabourPercent: req.LabourPercent}.Options(h.Defaults)
	est, err := EstimateRoom(req.RoomInput, opts)
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, est)
}

type areaRequest struct {
	AreaInput
	Rates         map[ItemKind]float64 `json:"rates,omitempty"`
	LabourPercent *float64             `json:"labour_percent,omitempty"`
}

func (h *Handler) Area(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	opts := Request{Rates: req.Rates, LabourPercent: req.LabourPercent}.Options(h.Defaults)
	est, err := EstimateArea(req.AreaInput, opts)
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, est)
}
