// Package identify holds the request/response shapes for the device
// identification HTTP surface.
package identify

// Request is the body of POST /v1/identify.
type Request struct {
	UserAgent string `json:"user_agent" validate:"required,max=2048"`
}

// Response is the body returned by both POST /v1/identify and
// GET /v1/devices/:id.
type Response struct {
	ID           string            `json:"id"`
	UserAgent    string            `json:"user_agent,omitempty"`
	Capabilities map[string]string `json:"capabilities,omitempty"`
}
