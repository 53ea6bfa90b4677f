// Package httpjson holds the JSON request/response helpers shared by module handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds decoded request bodies. Image uploads arrive base64 encoded.
const MaxBodyBytes = 20 << 20

// ErrEmptyBody is returned by Decode when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// Invalid writes a 400 with {"errors": errs}.
func Invalid(w http.ResponseWriter, errs any) {
	Write(w, http.StatusBadRequest, map[string]any{"errors": errs})
}
