package oauth

import (
	"fmt"

	"github.com/wrale/oauth2-device-request/internal/messaging"
)

// ResponseFormat is the encoding a client asks the server to reply with
type ResponseFormat int

const (
	// FormatJSON requests an application/json reply
	FormatJSON ResponseFormat = iota

	// FormatForm requests an application/x-www-form-urlencoded reply
	FormatForm
)

// Wire values for ResponseFormat
const (
	formatJSONValue = "json"
	formatFormValue = "form"
)

func (f ResponseFormat) String() string {
	switch f {
	case FormatJSON:
		return formatJSONValue
	case FormatForm:
		return formatFormValue
	default:
		return fmt.Sprintf("ResponseFormat(%d)", int(f))
	}
}

// ContentType returns the media type of a reply in this format
func (f ResponseFormat) ContentType() string {
	if f == FormatForm {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// DirectResponseFormat is implemented by messages that negotiate the
// format of the server's direct reply
type DirectResponseFormat interface {
	ResponseFormat() ResponseFormat
}

// ResponseFormatEncoder maps ResponseFormat to its wire value.
// An empty wire value decodes to FormatJSON, the protocol default.
var ResponseFormatEncoder = messaging.NewEncoder(encodeResponseFormat, decodeResponseFormat)

func encodeResponseFormat(f ResponseFormat) (string, error) {
	switch f {
	case FormatJSON:
		return formatJSONValue, nil
	case FormatForm:
		return formatFormValue, nil
	default:
		return "", fmt.Errorf("%w: unknown response format %d", messaging.ErrEncoding, int(f))
	}
}

func decodeResponseFormat(s string) (ResponseFormat, error) {
	switch s {
	case "", formatJSONValue:
		return FormatJSON, nil
	case formatFormValue:
		return FormatForm, nil
	default:
		return 0, fmt.Errorf("%w: unknown response format %q", messaging.ErrDecoding, s)
	}
}

// ParseResponseFormat parses a format name as used on the wire
func ParseResponseFormat(s string) (ResponseFormat, error) {
	return decodeResponseFormat(s)
}
