// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Error responses always look like:
//
//	{ "detail": "field Name is required" }
//
// which is the shape the roster client extracts its error message from.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope returned for error cases.
type Response struct {
	Detail string `json:"detail"`
}

// Message is the envelope for plain acknowledgements.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Order matters: Header() before WriteHeader() before body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the error envelope.
func GeneralError(err error) Response {
	return Response{Detail: err.Error()}
}

// Detail wraps a fixed message into the error envelope.
func Detail(msg string) Response {
	return Response{Detail: msg}
}

// ValidationError turns validator field errors into one readable sentence.
//
//	{ "detail": "field Name is required, field Age is required" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Detail: strings.Join(errMessages, ", ")}
}
