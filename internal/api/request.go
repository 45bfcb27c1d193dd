package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/validation"
)

const maxBodyBytes = 1 << 20

// Bind decodes the JSON body into dst and validates it. Any failure is a
// ValidationError.
func Bind(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ValidationError("request body is required", nil)
		}
		return ValidationError("invalid JSON body", nil)
	}
	if err := validation.Struct(dst); err != nil {
		var ve *validation.Error
		if errors.As(err, &ve) {
			return ValidationError(ve.Error(), ve.Fields)
		}
		return ValidationError(err.Error(), nil)
	}
	return nil
}

// IDParam parses the {id} path parameter. Non-numeric ids cannot match any
// row, so they are reported as not found.
func IDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, NotFoundError("not found")
	}
	return id, nil
}
