// Package common holds small helpers and constants shared by the client
// packages.
package common

// Header names set on every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
)

const (
	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)
