package contentdomain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sh4ner/streamerpulse/app/shared/validation"
)

const (
	MaxReviewTitle       = 100
	MaxReviewDescription = 1000
	ReviewListLimit      = 10
)

var (
	ErrReviewFieldsMissing = errors.New("all fields are required")
	ErrInvalidReviewType   = errors.New("invalid review type")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrTitleTooLong        = errors.New("title cannot exceed 100 characters")
	ErrDescriptionTooLong  = errors.New("description cannot exceed 1000 characters")
	ErrInvalidImageURL     = errors.New("invalid image URL")
)

// ReviewType separates slot reviews from casino reviews.
type ReviewType string

const (
	ReviewSlot   ReviewType = "slot"
	ReviewCasino ReviewType = "casino"
)

func ParseReviewType(s string) (ReviewType, error) {
	switch ReviewType(s) {
	case ReviewSlot, ReviewCasino:
		return ReviewType(s), nil
	}
	return "", ErrInvalidReviewType
}

// Rating accepts a JSON number or a numeric string, as admin forms send either.
type Rating float64

func (r *Rating) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if n == "" {
		*r = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return ErrRatingOutOfRange
	}
	*r = Rating(f)
	return nil
}

// ReviewInput is the body for creating or replacing a review. Image is either an
// http(s) URL or a data URI that must be uploaded first.
type ReviewInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Rating      Rating `json:"rating"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (in ReviewInput) Normalize() ReviewInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	return in
}

func (in ReviewInput) Validate() error {
	if in.Title == "" || in.Type == "" || in.Rating == 0 || in.Description == "" || in.Image == "" {
		return ErrReviewFieldsMissing
	}
	if _, err := ParseReviewType(in.Type); err != nil {
		return err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if utf8.RuneCountInString(in.Title) > MaxReviewTitle {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(in.Description) > MaxReviewDescription {
		return ErrDescriptionTooLong
	}
	if !strings.HasPrefix(in.Image, "data:image/") && !validation.IsHTTPURL(in.Image) {
		return ErrInvalidImageURL
	}
	return nil
}
