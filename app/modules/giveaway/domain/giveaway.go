package giveawaydomain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrMissingFields is returned when a required field is blank.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidEmail is returned when an email does not look like user@host.tld.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidContentType is returned for content types other than rewards and rules.
	ErrInvalidContentType = errors.New(`invalid type, use "rewards" or "rules"`)
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ContentType groups giveaway page blocks.
type ContentType string

const (
	ContentRewards ContentType = "rewards"
	ContentRules   ContentType = "rules"
)

// ParseContentType validates a content type query value.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentRewards, ContentRules:
		return ContentType(s), nil
	default:
		return "", ErrInvalidContentType
	}
}

// ValidEmail reports whether s passes the loose address check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Submission is a giveaway sign-up.
type Submission struct {
	BCUsername string `json:"bcUsername"`
	BCUserID   string `json:"bcUserId"`
	Email      string `json:"email"`
}

// Normalize returns s with trimmed fields and a lower-case email.
func (s Submission) Normalize() Submission {
	return Submission{
		BCUsername: strings.TrimSpace(s.BCUsername),
		BCUserID:   strings.TrimSpace(s.BCUserID),
		Email:      NormalizeEmail(s.Email),
	}
}

// Validate checks a normalized submission.
func (s Submission) Validate() error {
	if s.BCUsername == "" || s.BCUserID == "" || s.Email == "" {
		return ErrMissingFields
	}
	if !ValidEmail(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// SpinResult records the wheel outcome for an entrant.
type SpinResult struct {
	Email string `json:"email"`
	Prize string `json:"prize"`
}

// Normalize returns r with a trimmed prize and a lower-case email.
func (r SpinResult) Normalize() SpinResult {
	return SpinResult{Email: NormalizeEmail(r.Email), Prize: strings.TrimSpace(r.Prize)}
}

// Validate checks a normalized spin result.
func (r SpinResult) Validate() error {
	if r.Email == "" || r.Prize == "" {
		return ErrMissingFields
	}
	if !ValidEmail(r.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ContentInput creates a giveaway page block.
type ContentInput struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Normalize trims every field.
func (c ContentInput) Normalize() ContentInput {
	return ContentInput{
		Type:        strings.TrimSpace(c.Type),
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		ImageURL:    strings.TrimSpace(c.ImageURL),
	}
}

// Validate checks a normalized content block.
func (c ContentInput) Validate() error {
	if _, err := ParseContentType(c.Type); err != nil {
		return err
	}
	if c.Title == "" || c.Description == "" {
		return ErrMissingFields
	}
	return nil
}
