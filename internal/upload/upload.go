// Package upload reads a single file field from a multipart request and
// enforces the size and extension limits shared by every upload endpoint.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the largest accepted request body.
const DefaultMaxBytes = 16 << 20

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// Kind is a set of accepted extensions, lower case with the dot.
type Kind []string

var (
	Image    = Kind{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
	Workbook = Kind{".xlsx"}
)

func (k Kind) allows(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range k {
		if e == ext {
			return true
		}
	}
	return false
}

// Guard limits uploads to MaxBytes.
type Guard struct {
	MaxBytes int64
}

// Open returns the file posted under field. The caller closes it.
func (g Guard) Open(w http.ResponseWriter, r *http.Request, field string, kind Kind) (multipart.File, *multipart.FileHeader, error) {
	max := g.MaxBytes
	if max <= 0 {
		max = DefaultMaxBytes
	}
	if r.ContentLength > max {
		return nil, nil, ErrTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, max)
	if err := r.ParseMultipartForm(max); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, nil, ErrTooLarge
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, ErrNoFile
	}
	if header.Filename == "" {
		file.Close()
		return nil, nil, ErrNoFile
	}
	if !kind.allows(header.Filename) {
		file.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(header.Filename))
	}
	return file, header, nil
}

// Status maps an Open error to the HTTP status to answer with.
func Status(err error) int {
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
