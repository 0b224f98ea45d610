package api

import "fmt"

// ErrorKind categorizes a normalized error.
type ErrorKind string

const (
	// ErrorKindConfig marks a missing credential or otherwise unusable
	// configuration. Produced before any network I/O.
	ErrorKindConfig ErrorKind = "config"
	// ErrorKindNetwork marks a connection or transport failure.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindUpstream marks a non-2xx HTTP response from the provider.
	ErrorKindUpstream ErrorKind = "upstream"
	// ErrorKindProtocol marks a response body that does not match the
	// expected shape.
	ErrorKindProtocol ErrorKind = "protocol"
)

// Error is the structured error carried by Error events and returned from
// model-listing and OAuth calls.
type Error struct {
	Kind ErrorKind

	// Status is the upstream HTTP status code, when Kind is upstream.
	Status int

	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == ErrorKindUpstream && e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewConfigError creates an Error for unusable configuration.
func NewConfigError(message string) *Error {
	return &Error{Kind: ErrorKindConfig, Message: message}
}

// NewNetworkError creates an Error wrapping a transport failure.
func NewNetworkError(err error) *Error {
	return &Error{Kind: ErrorKindNetwork, Message: err.Error()}
}

// NewUpstreamError creates an Error for a non-2xx HTTP response, carrying
// the status code and raw body text.
func NewUpstreamError(status int, body string) *Error {
	return &Error{Kind: ErrorKindUpstream, Status: status, Message: body}
}

// NewProtocolError creates an Error for a response that does not match the
// expected shape.
func NewProtocolError(message string) *Error {
	return &Error{Kind: ErrorKindProtocol, Message: message}
}
