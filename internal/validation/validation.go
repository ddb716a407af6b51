// Package validation provides endpoint validation for OAuth2 direct messages
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// AllowedSchemes lists the schemes a direct message recipient may use
var AllowedSchemes = []string{"https", "http"}

// ValidationError represents an endpoint validation error
type ValidationError struct {
	Endpoint string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %s", e.Endpoint, e.Message)
}

// ValidateEndpoint checks that u is an absolute URI reachable over HTTP
func ValidateEndpoint(u *url.URL) error {
	if u == nil {
		return &ValidationError{Message: "endpoint is required"}
	}

	raw := u.String()

	// Check absoluteness first to give the most specific error
	if !u.IsAbs() {
		return &ValidationError{
			Endpoint: raw,
			Message:  "endpoint must be an absolute URI",
		}
	}

	if !isAllowedScheme(u.Scheme) {
		return &ValidationError{
			Endpoint: raw,
			Message:  fmt.Sprintf("scheme must be one of %s", strings.Join(AllowedSchemes, ", ")),
		}
	}

	if u.Host == "" {
		return &ValidationError{
			Endpoint: raw,
			Message:  "endpoint must include a host",
		}
	}

	// Fragments are never sent to the server
	if u.Fragment != "" {
		return &ValidationError{
			Endpoint: raw,
			Message:  "endpoint must not include a fragment",
		}
	}

	return nil
}

// ParseEndpoint parses and validates a raw endpoint URI
func ParseEndpoint(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Message: "endpoint is required"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Endpoint: raw, Message: err.Error()}
	}

	if err := ValidateEndpoint(u); err != nil {
		return nil, err
	}
	return u, nil
}

func isAllowedScheme(scheme string) bool {
	for _, s := range AllowedSchemes {
		if strings.EqualFold(scheme, s) {
			return true
		}
	}
	return false
}
