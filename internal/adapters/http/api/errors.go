package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/cvparse/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrMissingFile  = errors.New("missing file: send a multipart \"file\" field or a raw body with ?filename=")
	ErrTooLarge     = errors.New("upload too large")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// NewKind tags kind with the operation that produced it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with op and kind while keeping kind matchable.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// statusFor maps a service error to its HTTP status, error code and the
// message shown to the client.
func statusFor(err error) (status int, code, msg string) {
	code = model.Kind(err)
	switch code {
	case "unsupported_format":
		return http.StatusUnsupportedMediaType, code, model.ErrorRecord(err)["error"]
	case "unextractable":
		return http.StatusUnprocessableEntity, code, model.ErrorRecord(err)["error"]
	case "invalid_record":
		return http.StatusBadRequest, "bad_request", err.Error()
	case "not_found":
		return http.StatusNotFound, code, err.Error()
	case "backpressure":
		return http.StatusTooManyRequests, code, model.ErrBackpressure.Error()
	default:
		return http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError)
	}
}
