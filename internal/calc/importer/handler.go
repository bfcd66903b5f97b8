package importer

import (
	"errors"
	"log"
	"net/http"

	"CivilBot/internal/calc/boq"
	"CivilBot/internal/calc/respond"
	"CivilBot/internal/upload"
)

type Handler struct {
	Upload   upload.Guard
	Defaults boq.Options
}

type ImportResult struct {
	Count    int                  `json:"count"`
	Elements []boq.ElementSpec    `json:"elements"`
	Bill     boq.BillOfQuantities `json:"bill"`
}

// BOQ estimates the elements of an uploaded workbook posted as "file".
func (h *Handler) BOQ(w http.ResponseWriter, r *http.Request) {
	file, _, err := h.Upload.Open(w, r, "file", upload.Workbook)
	if err != nil {
		respond.Error(w, upload.Status(err), err.Error())
		return
	}
	defer file.Close()

	elements, err := Elements(file)
	if err != nil {
		var rowErr *RowError
		if errors.As(err, &rowErr) || errors.Is(err, ErrEmptySheet) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("import workbook: %v", err)
		respond.Error(w, http.StatusBadRequest, "Invalid file")
		return
	}
	bill, err := boq.Estimate(elements, boq.Request{}.Options(h.Defaults))
	if err != nil {
		respond.CalcError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ImportResult{Count: len(elements), Elements: elements, Bill: bill})
}

// Template serves an empty import workbook.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	f, err := Template()
	if err != nil {
		log.Printf("import template: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Template generation error")
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"elements.xlsx\"")
	if err := f.Write(w); err != nil {
		log.Printf("write template: %v", err)
	}
}
