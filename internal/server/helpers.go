package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrTrailingData     = errors.New("unexpected data after JSON value")
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func EncodeError(w http.ResponseWriter, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	_ = Encode(w, status, ErrorResponse{Error: msg})
}

// Encode writes v as JSON with status. HTML characters are left unescaped so
// display patterns such as "<b>" come back as sent.
func Encode[T any](w http.ResponseWriter, status int, v T) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// Decode reads exactly one JSON value from the request body. An empty body
// yields an error wrapping io.EOF.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("decode json: %w", ErrTrailingData)
	}

	return v, nil
}
