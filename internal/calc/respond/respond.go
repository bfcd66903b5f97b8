// Package respond writes JSON bodies and maps calculation errors to status codes
// for the calculator handlers.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"CivilBot/internal/calc/materials"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON encodes v before writing anything, so a value that cannot be encoded
// is answered with a 500 instead of an empty body.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(errorBody{Error: "Response encoding error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("write response: %v", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// BadPayload answers a request whose body could not be decoded.
func BadPayload(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, "Invalid request payload")
}

// Status picks the HTTP status for an error returned by a calculator.
// Validation failures are the caller's fault; anything else is ours.
func Status(err error) int {
	var invalid *materials.InvalidInputError
	var grade *materials.UnknownGradeError
	var shaped interface{ UnsupportedShape() string }
	var construction interface{ UnsupportedConstruction() string }
	switch {
	case errors.As(err, &invalid), errors.As(err, &grade), errors.As(err, &shaped), errors.As(err, &construction):
		return http.StatusBadRequest
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrValidation marks plain input errors from calculators that have no typed
// error of their own.
var ErrValidation = errors.New("invalid input")

// CalcError writes err with the status chosen by Status.
func CalcError(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("calculation error: %v", err)
		Error(w, status, "Calculation error")
		return
	}
	Error(w, status, err.Error())
}
