package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wrale/oauth2-device-request/internal/messaging"
)

const (
	// HTTP request timeouts
	defaultTimeout = 10 * time.Second

	// Replies larger than this are truncated
	maxResponseSize = 1 << 20
)

// Errors returned by the channel
var (
	ErrUnsupportedTransport = errors.New("unsupported message transport")
	ErrUnsupportedMethod    = errors.New("unsupported delivery method")
)

// DirectMessage is a message the channel can deliver in one HTTP call
type DirectMessage interface {
	messaging.Message
	DirectResponseFormat
}

// DirectResponse is the raw reply to a direct message.
// The body is not interpreted.
type DirectResponse struct {
	StatusCode  int
	ContentType string
	Format      ResponseFormat
	Body        []byte
}

// Channel sends direct messages to an authorization server over HTTP
type Channel struct {
	client *http.Client
}

// NewChannel creates a channel. A nil client uses a default with a timeout.
func NewChannel(client *http.Client) *Channel {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Channel{client: client}
}

// Request builds the HTTP request carrying params to the message recipient
func (c *Channel) Request(ctx context.Context, msg DirectMessage, params *messaging.Parameters) (*http.Request, error) {
	if msg.Transport() != messaging.Direct {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTransport, msg.Transport())
	}

	recipient := msg.Recipient()
	if recipient == nil {
		return nil, fmt.Errorf("%w: message has no recipient", messaging.ErrInvalidEndpoint)
	}

	var (
		req *http.Request
		err error
	)
	switch method := msg.DeliveryMethods().HTTPMethod(); method {
	case http.MethodGet:
		// Keep any query the endpoint already carries
		if recipient.RawQuery != "" && params.Len() > 0 {
			recipient.RawQuery += "&" + params.Encode()
		} else if params.Len() > 0 {
			recipient.RawQuery = params.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, method, recipient.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, recipient.String(), strings.NewReader(params.Encode()))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, msg.DeliveryMethods())
	}

	req.Header.Set("Accept", msg.ResponseFormat().ContentType())
	return req, nil
}

// Send performs req and returns the raw reply tagged with the expected format
func (c *Channel) Send(req *http.Request, format ResponseFormat) (*DirectResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &DirectResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Format:      format,
		Body:        body,
	}, nil
}

// Deliver serializes a device request and sends it
func (c *Channel) Deliver(ctx context.Context, r *DeviceRequest) (*DirectResponse, error) {
	params, err := r.Parameters()
	if err != nil {
		return nil, fmt.Errorf("serializing device request: %w", err)
	}

	req, err := c.Request(ctx, r, params)
	if err != nil {
		return nil, err
	}

	return c.Send(req, r.ResponseFormat())
}
