// Package oauth provides OAuth2 client messages for the device authorization grant
package oauth

import "github.com/wrale/oauth2-device-request/internal/messaging"

// Wire parameter names
const (
	ParamType     = "type"
	ParamClientID = "client_id"
	ParamScope    = "scope"
	ParamFormat   = "format"
)

// MessageTypeDeviceCode identifies a device authorization request
const MessageTypeDeviceCode = "device_code"

// V20 is OAuth 2.0
var V20 = messaging.Version{Major: 2, Minor: 0}
