package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/gridkit/pkg/cache"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/observability"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    gerrors.Code `json:"code"`
	Message string       `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code gerrors.Code) int {
	switch code {
	case gerrors.ErrCodeInvalidFormat, gerrors.ErrCodeInvalidConfig, gerrors.ErrCodeMissingCols,
		gerrors.ErrCodeMissingContainerWidth:
		return http.StatusBadRequest
	case gerrors.ErrCodeInvalidLayout, gerrors.ErrCodeInvalidID, gerrors.ErrCodeDuplicateID,
		gerrors.ErrCodeInvalidSpan, gerrors.ErrCodeOutOfBounds:
		return http.StatusUnprocessableEntity
	case gerrors.ErrCodeItemNotFound, gerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case gerrors.ErrCodeSessionProtocol, gerrors.ErrCodeSessionActive,
		gerrors.ErrCodeNotDraggable, gerrors.ErrCodeNotResizable:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := gerrors.GetCode(err)
	if code == "" {
		code = gerrors.ErrCodeInternal
	}
	status := statusFor(code)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: gerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"code":"INTERNAL_ERROR","message":"encode response"}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n"))
}

// decode reads a JSON request body into v. Unknown fields are rejected.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return gerrors.New(gerrors.ErrCodeInvalidFormat, "request body is empty")
		}
		return gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "decode request")
	}
	if dec.More() {
		return gerrors.New(gerrors.ErrCodeInvalidFormat, "request body has trailing data")
	}
	return nil
}

// memoize serves op from the cache when the same request was answered
// before. compute runs on a miss; only successful results are stored.
func (s *Server) memoize(w http.ResponseWriter, r *http.Request, op string, req any, compute func() (any, error)) {
	ctx := r.Context()
	key := cache.OpKey(op, req)

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		w.Header().Set("X-Cache", "hit")
		writeRaw(w, http.StatusOK, data)
		return
	} else if err != nil {
		s.logger.Warn("cache get failed", "op", op, "error", err)
	}

	resp, err := compute()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, r, gerrors.Wrap(gerrors.ErrCodeInternal, err, "encode %s response", op))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache set failed", "op", op, "error", err)
	}
	w.Header().Set("X-Cache", "miss")
	writeRaw(w, http.StatusOK, data)
}

func notFound(kind, id string) error {
	return gerrors.New(gerrors.ErrCodeNotFound, "%s %q not found", kind, id)
}

func itemNotFound(id string) error {
	return gerrors.New(gerrors.ErrCodeItemNotFound, "item %q not found", id)
}

func badRequest(format string, args ...any) error {
	return gerrors.New(gerrors.ErrCodeInvalidFormat, "%s", fmt.Sprintf(format, args...))
}
