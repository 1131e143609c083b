package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultID answers requests that carry no usable id.
	DefaultID = "time-request"
	// ErrorID is the id of every error envelope.
	ErrorID = "error"

	CodeInvalidRequest = "invalid_request"
)

var ErrInvalidRequest = errors.New("invalid request")

// Request is any JSON object; only id is interpreted.
type Request struct {
	// ID is the request's id as decoded: a string, a json.Number, a bool, or a
	// nested object or array.
	ID any
}

type Response struct {
	ID     any     `json:"id"`
	Result *Result `json:"result,omitempty"`
	Error  *Error  `json:"error,omitempty"`
}

type Result struct {
	CurrentTime any `json:"current_time"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseRequest decodes one request object. Any truthy id is kept as sent,
// whatever its JSON type; a missing, null, false, zero or empty-string id
// becomes DefaultID. Only input that is not exactly one JSON object is
// ErrInvalidRequest.
func ParseRequest(data []byte) (Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidRequest)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return Request{}, fmt.Errorf("%w: request must be a JSON object", ErrInvalidRequest)
	}

	id := obj["id"]
	if !truthy(id) {
		id = DefaultID
	}
	return Request{ID: id}, nil
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// Success wraps a time payload under result.current_time. An id that is not
// truthy is replaced by DefaultID.
func Success(id any, currentTime any) Response {
	if !truthy(id) {
		id = DefaultID
	}
	return Response{
		ID:     id,
		Result: &Result{CurrentTime: currentTime},
	}
}

// Failure builds the error envelope for err. The message always carries the
// underlying failure text.
func Failure(err error) Response {
	msg := "failed to process request"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return Response{
		ID: ErrorID,
		Error: &Error{
			Code:    CodeInvalidRequest,
			Message: msg,
		},
	}
}

// MarshalLine renders r as a single line of JSON followed by '\n'. HTML
// characters are not escaped so that patterns such as "<b>" survive.
func MarshalLine(r Response) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return buf.Bytes(), nil
}
