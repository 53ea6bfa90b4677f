package mediadomain

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNoImage          = errors.New("no image provided")
	ErrNotImage         = errors.New("invalid image format")
	ErrInvalidHeader    = errors.New("invalid base64 image header")
	ErrInvalidBase64    = errors.New("invalid base64 data")
	ErrEmptyImageBuffer = errors.New("empty image buffer")
)

var dataURIHeader = regexp.MustCompile(`^data:image/(\w+);base64,`)

// Image is a decoded data URI.
type Image struct {
	Format string
	Data   []byte
}

// IsDataURI reports whether s looks like an inline image rather than a URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

// ParseDataURI decodes "data:image/<format>;base64,<payload>".
func ParseDataURI(s string) (*Image, error) {
	if s == "" {
		return nil, ErrNoImage
	}
	if !IsDataURI(s) {
		return nil, ErrNotImage
	}
	m := dataURIHeader.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrInvalidHeader
	}
	payload := s[len(m[0]):]
	if payload == "" {
		return nil, ErrInvalidBase64
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if len(data) == 0 {
		return nil, ErrEmptyImageBuffer
	}
	return &Image{Format: m[1], Data: data}, nil
}
