// Package validation collects field-level input errors for request bodies.
package validation

import (
	"net/mail"
	"net/url"
	"strings"
)

// ValidationError reports one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the list returned to clients as {"errors": [...]}.
type Errors []*ValidationError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, &ValidationError{Field: field, Message: message})
}

// Require adds message when value is blank.
func (e *Errors) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// Err returns nil when no errors were collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsEmail reports whether s is a bare address such as user@example.com.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}
