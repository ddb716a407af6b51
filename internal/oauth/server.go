package oauth

import (
	"fmt"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/wrale/oauth2-device-request/internal/messaging"
	"github.com/wrale/oauth2-device-request/internal/validation"
)

// ServerDescription holds what a client knows about an authorization server
type ServerDescription struct {
	TokenEndpoint               *url.URL
	DeviceAuthorizationEndpoint *url.URL
	Version                     messaging.Version
}

// DeviceEndpoint returns the endpoint device requests are sent to.
// It falls back to the token endpoint when no device authorization
// endpoint is known.
func (d *ServerDescription) DeviceEndpoint() *url.URL {
	if d.DeviceAuthorizationEndpoint != nil {
		return d.DeviceAuthorizationEndpoint
	}
	return d.TokenEndpoint
}

// DescriptionFromEndpoint builds a ServerDescription from an oauth2.Endpoint
func DescriptionFromEndpoint(ep oauth2.Endpoint, version messaging.Version) (*ServerDescription, error) {
	desc := &ServerDescription{Version: version}

	if ep.TokenURL != "" {
		u, err := validation.ParseEndpoint(ep.TokenURL)
		if err != nil {
			return nil, fmt.Errorf("%w: token endpoint: %w", messaging.ErrInvalidEndpoint, err)
		}
		desc.TokenEndpoint = u
	}

	if ep.DeviceAuthURL != "" {
		u, err := validation.ParseEndpoint(ep.DeviceAuthURL)
		if err != nil {
			return nil, fmt.Errorf("%w: device authorization endpoint: %w", messaging.ErrInvalidEndpoint, err)
		}
		desc.DeviceAuthorizationEndpoint = u
	}

	return desc, nil
}
