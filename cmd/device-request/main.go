// Command device-request builds an OAuth2 device authorization request and
// optionally sends it to the authorization server
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/oauth2"

	"github.com/wrale/oauth2-device-request/internal/messaging"
	"github.com/wrale/oauth2-device-request/internal/oauth"
)

// Version is set by the build process
var Version = "dev"

func main() {
	// Load configuration from environment
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	req, err := buildRequest(cfg)
	if err != nil {
		log.Fatalf("Error building device request: %v", err)
	}

	params, err := req.Parameters()
	if err != nil {
		log.Fatalf("Error serializing device request: %v", err)
	}
	printRequest(os.Stdout, req, params)

	if !cfg.Send {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	channel := oauth.NewChannel(&http.Client{Timeout: cfg.RequestTimeout})
	httpReq, err := channel.Request(ctx, req, params)
	if err != nil {
		log.Fatalf("Error creating HTTP request: %v", err)
	}

	log.Printf("Sending device request to %s", httpReq.URL.Redacted())
	resp, err := channel.Send(httpReq, req.ResponseFormat())
	if err != nil {
		log.Fatalf("Error sending device request: %v", err)
	}
	printResponse(os.Stdout, resp)
}

// buildRequest constructs the device request described by cfg
func buildRequest(cfg Config) (*oauth.DeviceRequest, error) {
	version, err := messaging.ParseVersion(cfg.ProtocolVersion)
	if err != nil {
		return nil, err
	}

	desc, err := oauth.DescriptionFromEndpoint(oauth2.Endpoint{
		TokenURL:      cfg.TokenEndpoint,
		DeviceAuthURL: cfg.DeviceAuthorizationEndpoint,
	}, version)
	if err != nil {
		return nil, err
	}

	req, err := oauth.NewDeviceRequestFromServer(desc)
	if err != nil {
		return nil, err
	}

	req.SetClientID(cfg.ClientID)
	if cfg.Scope != nil {
		req.SetScope(*cfg.Scope)
	}
	if cfg.ResponseFormat != "" {
		format, err := oauth.ParseResponseFormat(cfg.ResponseFormat)
		if err != nil {
			return nil, err
		}
		req.SetFormat(format)
	}

	return req, nil
}

func printRequest(w io.Writer, req *oauth.DeviceRequest, params *messaging.Parameters) {
	fmt.Fprintf(w, "client:    device-request %s\n", Version)
	fmt.Fprintf(w, "endpoint:  %s\n", req.Recipient())
	fmt.Fprintf(w, "method:    %s\n", req.DeliveryMethods().HTTPMethod())
	fmt.Fprintf(w, "transport: %s\n", req.Transport())
	fmt.Fprintf(w, "version:   %s\n", req.Version())
	fmt.Fprintf(w, "format:    %s\n", req.ResponseFormat())
	fmt.Fprintf(w, "params:    %s\n", params.Encode())
}

func printResponse(w io.Writer, resp *oauth.DirectResponse) {
	fmt.Fprintf(w, "status:    %d\n", resp.StatusCode)
	fmt.Fprintf(w, "type:      %s\n", resp.ContentType)
	fmt.Fprintf(w, "expected:  %s\n", resp.Format.ContentType())
	fmt.Fprintf(w, "\n%s\n", resp.Body)
}
