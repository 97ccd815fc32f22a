package platforms

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means the required credential for a platform is missing.
// Detected before any network call.
var ErrNotConfigured = errors.New("platform not configured")

// HTTPError is a non-2xx response from an upstream platform API.
type HTTPError struct {
	Platform   string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s api error: %s: %s", e.Platform, e.Status, e.Body)
	}
	return fmt.Sprintf("%s api error: %s", e.Platform, e.Status)
}

// PayloadError is a 2xx response whose JSON body itself signals failure, like
// TikTok's embedded error object or YouTube's empty items array.
type PayloadError struct {
	Platform string
	Message  string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Platform, e.Message)
}

func notConfiguredError(platform string, credential string) error {
	return fmt.Errorf("%s %s not configured: %w", platform, credential, ErrNotConfigured)
}
