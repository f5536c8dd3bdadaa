package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gperrors "github.com/matzehuels/gridplace/pkg/errors"
)

// MaxBodyBytes bounds request bodies. The N×N matrix dominates a request,
// so the limit also bounds the grid size.
const MaxBodyBytes = 8 << 20

// StatusClientClosedRequest is the de facto status for requests abandoned by
// the client (nginx's 499).
const StatusClientClosedRequest = 499

// ErrorResponse is the body written by WriteError.
type ErrorResponse struct {
	Code    gperrors.Code `json:"code"`
	Message string        `json:"message"`
}

// DecodeJSON decodes the body of r into v. Malformed JSON, unknown fields,
// trailing data and oversized bodies are INVALID_INPUT errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return gperrors.Wrap(gperrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", limit)
		}
		return gperrors.Wrap(gperrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return gperrors.New(gperrors.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return nil
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case gperrors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// WriteError writes err as an ErrorResponse. Internal errors are reported
// without their details.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Code: gperrors.GetCode(err), Message: gperrors.UserMessage(err)}
	if status == http.StatusInternalServerError || resp.Code == "" {
		resp.Code = gperrors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		resp.Message = "internal error"
	}
	WriteJSON(w, status, resp)
}
