// Package messaging maps typed protocol messages onto flat wire parameters
package messaging

import (
	"net/http"
	"net/url"
	"strings"
)

// Transport describes how a message travels between the two parties
type Transport int

const (
	// Direct messages are exchanged over a single transport call
	Direct Transport = iota

	// Indirect messages are relayed through a user agent redirect
	Indirect
)

func (t Transport) String() string {
	switch t {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	default:
		return "unknown"
	}
}

// DeliveryMethods is a set of HTTP delivery methods a message accepts
type DeliveryMethods uint8

const (
	// GetRequest sends parameters in the query string
	GetRequest DeliveryMethods = 1 << iota

	// PostRequest sends parameters in a form-encoded body
	PostRequest

	// AuthorizationHeaderRequest sends parameters in the Authorization header
	AuthorizationHeaderRequest
)

// Has reports whether every method in m is part of d
func (d DeliveryMethods) Has(m DeliveryMethods) bool {
	return m != 0 && d&m == m
}

// HTTPMethod returns the preferred HTTP verb, GET winning over POST
func (d DeliveryMethods) HTTPMethod() string {
	switch {
	case d.Has(GetRequest):
		return http.MethodGet
	case d.Has(PostRequest):
		return http.MethodPost
	default:
		return ""
	}
}

func (d DeliveryMethods) String() string {
	var parts []string
	if d.Has(GetRequest) {
		parts = append(parts, "GET")
	}
	if d.Has(PostRequest) {
		parts = append(parts, "POST")
	}
	if d.Has(AuthorizationHeaderRequest) {
		parts = append(parts, "AuthorizationHeader")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Message is the transport metadata every serializable message carries
type Message interface {
	// Version returns the protocol version the message is written for
	Version() Version

	// Transport returns whether the message is direct or indirect
	Transport() Transport

	// DeliveryMethods returns the HTTP methods the recipient accepts
	DeliveryMethods() DeliveryMethods

	// Recipient returns the endpoint the message is addressed to
	Recipient() *url.URL

	// ExtraData returns parameters not covered by the message descriptor
	ExtraData() map[string]string
}

// Base implements Message and is embedded by concrete message types.
// Version, transport and recipient are fixed when the Base is created.
type Base struct {
	version   Version
	transport Transport
	methods   DeliveryMethods
	recipient *url.URL
	extra     map[string]string
}

// NewBase creates the common message state. The recipient is copied.
func NewBase(version Version, transport Transport, methods DeliveryMethods, recipient *url.URL) Base {
	var r *url.URL
	if recipient != nil {
		u := *recipient
		r = &u
	}
	return Base{
		version:   version,
		transport: transport,
		methods:   methods,
		recipient: r,
		extra:     make(map[string]string),
	}
}

func (b *Base) Version() Version { return b.version }
func (b *Base) Transport() Transport { return b.transport }
func (b *Base) DeliveryMethods() DeliveryMethods { return b.methods }

// Recipient returns a copy of the target endpoint
func (b *Base) Recipient() *url.URL {
	if b.recipient == nil {
		return nil
	}
	u := *b.recipient
	return &u
}

// ExtraData returns the live extra parameter map
func (b *Base) ExtraData() map[string]string {
	if b.extra == nil {
		b.extra = make(map[string]string)
	}
	return b.extra
}
