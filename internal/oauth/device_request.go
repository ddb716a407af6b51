package oauth

import (
	"fmt"
	"net/url"

	"github.com/wrale/oauth2-device-request/internal/messaging"
	"github.com/wrale/oauth2-device-request/internal/validation"
)

// DeviceRequest asks an authorization server for a device code,
// the first step of the device authorization grant
type DeviceRequest struct {
	messaging.Base

	clientID messaging.Optional[string]
	scope    messaging.Optional[string]
	format   messaging.Optional[ResponseFormat]
}

var deviceRequestDescriptor = messaging.LazyDescriptor("DeviceRequest", func() []messaging.Field[*DeviceRequest] {
	return []messaging.Field[*DeviceRequest]{
		messaging.Constant[*DeviceRequest](ParamType, MessageTypeDeviceCode),
		messaging.NewField[*DeviceRequest](ParamClientID, func(r *DeviceRequest) (any, bool) {
			v, ok := r.clientID.Get()
			return v, ok
		}, messaging.Required()),
		messaging.NewField[*DeviceRequest](ParamScope, func(r *DeviceRequest) (any, bool) {
			v, ok := r.scope.Get()
			return v, ok
		}, messaging.AllowEmpty()),
		messaging.NewField[*DeviceRequest](ParamFormat, func(r *DeviceRequest) (any, bool) {
			v, ok := r.format.Get()
			return v, ok
		}, messaging.WithEncoder(ResponseFormatEncoder)),
	}
})

// DeviceRequestDescriptor returns the shared descriptor for DeviceRequest
func DeviceRequestDescriptor() (*messaging.Descriptor[*DeviceRequest], error) {
	return deviceRequestDescriptor()
}

// NewDeviceRequest creates a direct GET request addressed to endpoint.
// The client ID must be set before the request is serialized.
func NewDeviceRequest(endpoint *url.URL, version messaging.Version) (*DeviceRequest, error) {
	if err := validation.ValidateEndpoint(endpoint); err != nil {
		return nil, fmt.Errorf("%w: %w", messaging.ErrInvalidEndpoint, err)
	}
	if version.IsZero() {
		return nil, fmt.Errorf("%w: version is required", messaging.ErrUnsupportedVersion)
	}

	return &DeviceRequest{
		Base: messaging.NewBase(version, messaging.Direct, messaging.GetRequest, endpoint),
	}, nil
}

// NewDeviceRequestFromServer creates a request for the server's device
// endpoint that asks for a form-encoded reply
func NewDeviceRequestFromServer(desc *ServerDescription) (*DeviceRequest, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: server description is required", messaging.ErrInvalidArgument)
	}
	if desc.Version.IsZero() {
		return nil, fmt.Errorf("%w: server version is required", messaging.ErrInvalidArgument)
	}
	endpoint := desc.DeviceEndpoint()
	if endpoint == nil {
		return nil, fmt.Errorf("%w: server endpoint is required", messaging.ErrInvalidArgument)
	}

	req, err := NewDeviceRequest(endpoint, desc.Version)
	if err != nil {
		return nil, err
	}

	// Prefer URL encoding of the reply
	req.format = messaging.Some(FormatForm)
	return req, nil
}

// ClientID returns the client identifier, or "" when unset
func (r *DeviceRequest) ClientID() string {
	return r.clientID.OrElse("")
}

// SetClientID sets the client identifier issued by the authorization server
func (r *DeviceRequest) SetClientID(id string) {
	r.clientID = messaging.Some(id)
}

// Scope returns the requested scope and whether one was set
func (r *DeviceRequest) Scope() (string, bool) {
	return r.scope.Get()
}

// SetScope sets the space-delimited scope. An empty scope is sent as
// scope= and is distinct from no scope at all.
func (r *DeviceRequest) SetScope(scope string) {
	r.scope = messaging.Some(scope)
}

// ClearScope removes the scope parameter
func (r *DeviceRequest) ClearScope() {
	r.scope = messaging.None[string]()
}

// Format returns the format parameter exactly as it will be sent
func (r *DeviceRequest) Format() messaging.Optional[ResponseFormat] {
	return r.format
}

// SetFormat asks the server to reply in f
func (r *DeviceRequest) SetFormat(f ResponseFormat) {
	r.format = messaging.Some(f)
}

// ResponseFormat returns the format the reply is expected in.
// Servers reply in JSON unless asked otherwise.
func (r *DeviceRequest) ResponseFormat() ResponseFormat {
	return r.format.OrElse(FormatJSON)
}

// Parameters serializes the request into wire parameters
func (r *DeviceRequest) Parameters() (*messaging.Parameters, error) {
	d, err := deviceRequestDescriptor()
	if err != nil {
		return nil, err
	}
	return messaging.Serialize(d, r)
}
