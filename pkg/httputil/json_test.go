package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gperrors "github.com/matzehuels/gridplace/pkg/errors"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Rows int `json:"rows"`
	}
	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr bool
	}{
		{"valid", `{"rows": 2}`, 1024, false},
		{"malformed", `{"rows": `, 1024, true},
		{"unknown field", `{"rows": 2, "colz": 3}`, 1024, true},
		{"trailing data", `{"rows": 2}{"rows": 3}`, 1024, true},
		{"too large", `{"rows": 2}`, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), r, &p, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !gperrors.Is(err, gperrors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want INVALID_INPUT", gperrors.GetCode(err))
			}
			if err == nil && p.Rows != 2 {
				t.Errorf("Rows = %d, want 2", p.Rows)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{gperrors.New(gperrors.ErrCodeInvalidDirective, "x"), http.StatusBadRequest},
		{fmt.Errorf("sequential placement: %w", gperrors.New(gperrors.ErrCodeNoSeedElement, "x")), http.StatusBadRequest},
		{fmt.Errorf("sequential placement: %w", context.Canceled), StatusClientClosedRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{gperrors.New(gperrors.ErrCodeInternal, "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, gperrors.New(gperrors.ErrCodeMalformedMatrix, "matrix is not symmetric"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != gperrors.ErrCodeMalformedMatrix || resp.Message != "matrix is not symmetric" {
		t.Errorf("response = %+v", resp)
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("redis: connection refused at 10.0.0.3"))

	var resp ErrorResponse
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if w.Code != http.StatusInternalServerError || resp.Code != gperrors.ErrCodeInternal {
		t.Errorf("got %d %+v", w.Code, resp)
	}
	if strings.Contains(resp.Message, "10.0.0.3") {
		t.Error("internal error details leaked to the client")
	}
}
