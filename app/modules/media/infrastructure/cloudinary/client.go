// Package cloudinary adapts the Cloudinary SDK to the media host contract.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("media host credentials are not configured")

// APIError is an error answer from the media host. StatusCode is zero when the
// response status was not observed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("media host returned %d: %s", e.StatusCode, e.Message)
}

// UploadResult is the subset of the upload response the API exposes.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// Config holds the account credentials. BaseURL overrides the SDK upload prefix.
type Config struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
}

// Client talks to one Cloudinary account.
type Client struct {
	cld *cloudinary.Cloudinary
}

// NewClient creates a client on top of httpClient, which may be nil. Without credentials
// the client is created but every call returns ErrNotConfigured.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return &Client{}, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	if prefix := strings.TrimRight(cfg.BaseURL, "/"); prefix != "" {
		cld.Config.API.UploadPrefix = prefix
		cld.Upload.Config.API.UploadPrefix = prefix
	}

	transport := http.DefaultTransport
	if httpClient != nil {
		if httpClient.Transport != nil {
			transport = httpClient.Transport
		}
		cld.Upload.Client.Timeout = httpClient.Timeout
	}
	cld.Upload.Client.Transport = statusRecorder{next: transport}

	return &Client{cld: cld}, nil
}

// Upload stores a data URI or remote URL in folder.
func (c *Client) Upload(ctx context.Context, file, folder string) (*UploadResult, error) {
	if c.cld == nil {
		return nil, ErrNotConfigured
	}

	ctx, status := withStatus(ctx)
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("media host upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, &APIError{StatusCode: *status, Message: res.Error.Message}
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return nil, &APIError{StatusCode: *status, Message: "upload response missing url or public id"}
	}

	return &UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy deletes an image. A missing image is not an error.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if c.cld == nil {
		return ErrNotConfigured
	}

	ctx, status := withStatus(ctx)
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("media host destroy failed: %w", err)
	}
	if res.Error.Message != "" {
		return &APIError{StatusCode: *status, Message: res.Error.Message}
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("unexpected destroy result %q for %s", res.Result, publicID)
	}
	return nil
}

type statusKey struct{}

func withStatus(ctx context.Context) (context.Context, *int) {
	status := new(int)
	return context.WithValue(ctx, statusKey{}, status), status
}

// statusRecorder stores the response status in the request context so SDK error
// bodies can be mapped to HTTP answers.
type statusRecorder struct {
	next http.RoundTripper
}

func (s statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = resp.StatusCode
		}
	}
	return resp, err
}
