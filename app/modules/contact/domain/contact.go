package contactdomain

import (
	"strings"

	"github.com/sh4ner/streamerpulse/app/shared/validation"
)

// Submission is a contact form post.
type Submission struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// Normalize trims every field and lower-cases the email.
func (s Submission) Normalize() Submission {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

func (s Submission) Validate() error {
	var errs validation.Errors
	errs.Require("firstName", s.FirstName, "First name is required")
	errs.Require("lastName", s.LastName, "Last name is required")
	if !validation.IsEmail(s.Email) {
		errs.Add("email", "Valid email is required")
	}
	errs.Require("message", s.Message, "Message is required")
	return errs.Err()
}
