package tallysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tally: %d: %s", e.StatusCode, e.Message)
}

// parseErrorResponse turns an error body into *APIError. Bodies that are not
// the usual {"error": "..."} fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	// readyz reports degraded with a health body rather than an error body.
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err == nil && health.Status != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: health.Status}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
