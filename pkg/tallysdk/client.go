package tallysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the tally service. Finance calls made directly
// on the client carry no credential; use a Session when the server enforces
// bearer tokens.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for baseURL with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
