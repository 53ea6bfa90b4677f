package contentdomain

import (
	"strings"

	"github.com/sh4ner/streamerpulse/app/shared/validation"
)

// NewsInput is a ticker item submitted by an admin.
type NewsInput struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

func (n NewsInput) Normalize() NewsInput {
	n.Text = strings.TrimSpace(n.Text)
	n.Link = strings.TrimSpace(n.Link)
	return n
}

// Validate requires text; link is optional but must be absolute when present.
func (n NewsInput) Validate() error {
	var errs validation.Errors
	errs.Require("text", n.Text, "News text is required")
	if n.Link != "" && !validation.IsHTTPURL(n.Link) {
		errs.Add("link", "Valid URL is required")
	}
	return errs.Err()
}
