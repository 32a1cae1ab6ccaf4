// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses are either a bare payload (a record, a mapping, a list)
// or a Message. Error responses always use the Response envelope.
package response

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/aanand-mishra/patients-api/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field age must be greater than 0 ..." }
//
// Validation failures also list each offending field:
//
//	{ "status": "error", "error": "...", "fields": [{"field": "age", "message": "..."}] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string             `json:"status"`
	Error  string             `json:"error"`
	Fields []types.FieldError `json:"fields,omitempty"`
}

// Message is the body of operations that only confirm what they did.
type Message struct {
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Msg wraps text in a Message body.
func Msg(text string) Message {
	return Message{Message: text}
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns field-level failures into a Response listing every
// field alongside the joined message.
func ValidationError(errs types.ValidationErrors) Response {
	return Response{
		Status: StatusError,
		Error:  errs.Error(),
		Fields: errs,
	}
}

// TypeError reports a JSON value that could not be decoded into the
// field's type, e.g. a string where age expects an integer.
func TypeError(field, want string) Response {
	fe := types.FieldError{
		Field:   field,
		Message: fmt.Sprintf("field %s must be a valid %s", field, want),
	}
	return ValidationError(types.ValidationErrors{fe})
}
