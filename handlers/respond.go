package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/repository"
	"github.com/andrewpaige1/promptdec-api/schemas"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string `json:"error"`
	Detail any    `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, kind string, detail any) {
	writeJSON(w, status, errorBody{Error: kind, Detail: detail})
}

// readJSON decodes a single JSON value from the body. Unknown fields and
// trailing data are rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &badRequestError{err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &badRequestError{err: errors.New("body must contain a single JSON value")}
	}
	return nil
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(e.err, &maxErr):
		return fmt.Sprintf("body must not be larger than %d bytes", maxErr.Limit)
	case errors.Is(e.err, io.EOF):
		return "body must not be empty"
	default:
		return "malformed JSON: " + e.err.Error()
	}
}

func (e *badRequestError) Unwrap() error { return e.err }

// writeError maps err onto the API's error body. what names the resource
// in not-found messages.
func (h *DBHandler) writeError(w http.ResponseWriter, r *http.Request, what string, err error) {
	var (
		verr *schemas.ValidationError
		rerr *repository.ReferenceError
		berr *badRequestError
	)
	switch {
	case errors.As(err, &berr):
		writeProblem(w, http.StatusBadRequest, "bad_request", berr.Error())
	case errors.As(err, &verr):
		writeProblem(w, http.StatusUnprocessableEntity, "validation_error", verr.Fields)
	case errors.As(err, &rerr):
		writeProblem(w, http.StatusBadRequest, "invalid_reference", rerr.Error())
	case errors.Is(err, repository.ErrInvalidReference):
		writeProblem(w, http.StatusBadRequest, "invalid_reference", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", what+" not found")
	default:
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeProblem(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
