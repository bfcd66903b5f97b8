package report

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/boq"
	"CivilBot/internal/calc/respond"
)

type Handler struct {
	Policy   beam.Policy
	Defaults boq.Options
}

type beamRequest struct {
	beam.Request
	Meta
}

// Beam designs the posted beam and answers with its PDF report.
func (h *Handler) Beam(w http.ResponseWriter, r *http.Request) {
	var req beamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	in, err := req.Resolve()
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	res, err := beam.Design(in, h.Policy)
	if err != nil {
		respond.CalcError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := BeamPDF(&buf, req.Meta, in, res); err != nil {
		log.Printf("beam report: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	attach(w, "application/pdf", "beam-report.pdf", buf.Bytes())
}

type boqRequest struct {
	boq.Request
	Meta
}

// BOQ estimates the posted elements and exports the bill as xlsx (default)
// or pdf according to the "format" query parameter.
func (h *Handler) BOQ(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "pdf" {
		respond.Error(w, http.StatusBadRequest, "format must be xlsx or pdf")
		return
	}

	var req boqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadPayload(w)
		return
	}
	bill, err := boq.Estimate(req.Elements, req.Options(h.Defaults))
	if err != nil {
		respond.CalcError(w, err)
		return
	}

	var data []byte
	if format == "pdf" {
		data, err = BOQPDF(req.Meta, bill)
	} else {
		data, err = BOQWorkbook(req.Meta, bill)
	}
	if err != nil {
		log.Printf("boq export: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	if format == "pdf" {
		attach(w, "application/pdf", "boq.pdf", data)
		return
	}
	attach(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "boq.xlsx", data)
}

func attach(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if _, err := w.Write(data); err != nil {
		log.Printf("write %s: %v", filename, err)
	}
}
