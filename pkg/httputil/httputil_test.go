package httputil

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cfgview/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidArrow, "bad"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidFunction, "bad"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidFormat, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{errors.New(errors.ErrCodeLayout, "boom"), http.StatusInternalServerError},
		{errors.New(errors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, errors.New(errors.ErrCodeInvalidArrow, "unknown arrow style %q", "x"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeInvalidArrow {
		t.Errorf("code = %s", body.Code)
	}
	if body.RequestID == "" || body.RequestID != rec.Header().Get(RequestIDHeader) {
		t.Errorf("request id = %q, header = %q", body.RequestID, rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	// Generated when absent or invalid.
	for _, sent := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, sent)
		h.ServeHTTP(httptest.NewRecorder(), req)
		if _, err := uuid.Parse(seen); err != nil || seen == sent {
			t.Errorf("sent %q, got %q", sent, seen)
		}
	}

	// Kept when valid.
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != id {
		t.Errorf("got %q, want %q", seen, id)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/brew", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	out := buf.String()
	for _, want := range []string{"path=/brew", "status=418", "bytes=15"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
