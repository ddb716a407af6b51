package main

import "time"

// Config holds client configuration loaded from environment variables
type Config struct {
	TokenEndpoint               string        `envconfig:"TOKEN_ENDPOINT" required:"true"`
	DeviceAuthorizationEndpoint string        `envconfig:"DEVICE_AUTHORIZATION_ENDPOINT"`
	ProtocolVersion             string        `envconfig:"PROTOCOL_VERSION" default:"2.0"`
	ClientID                    string        `envconfig:"CLIENT_ID" required:"true"`
	Scope                       *string       `envconfig:"SCOPE"`
	ResponseFormat              string        `envconfig:"RESPONSE_FORMAT"`
	Send                        bool          `envconfig:"SEND" default:"false"`
	RequestTimeout              time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}
