package contentdomain

import (
	"errors"
	"strings"
)

var (
	ErrClipFieldsMissing = errors.New("missing required fields")
	ErrInvalidClipKind   = errors.New("invalid clip kind")
)

// ClipKind distinguishes shorts from long-form videos. Both share one shape.
type ClipKind string

const (
	KindShort ClipKind = "short"
	KindVideo ClipKind = "video"
)

func (k ClipKind) IsValid() bool {
	return k == KindShort || k == KindVideo
}

// Label is the capitalized noun used in client messages.
func (k ClipKind) Label() string {
	if k == KindShort {
		return "Short"
	}
	return "Video"
}

// ClipInput is the admin body for a short or video.
type ClipInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	ImagePublicID string `json:"imagePublicId"`
	VideoURL      string `json:"videoUrl"`
}

func (in ClipInput) Normalize() ClipInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	in.ImagePublicID = strings.TrimSpace(in.ImagePublicID)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	return in
}

func (in ClipInput) Validate() error {
	if in.Title == "" || in.Description == "" || in.Image == "" || in.ImagePublicID == "" || in.VideoURL == "" {
		return ErrClipFieldsMissing
	}
	return nil
}
