// internal/odoo/errors.go
package odoo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthenticationFailed is returned when the authenticate handshake yields
// no uid. The client is unusable after this.
var ErrAuthenticationFailed = errors.New("authentication failed with Odoo")

// ProtocolError is an HTTP/transport-layer failure on an RPC call
// (connection refused, bad status code, malformed response). Retryable in
// principle; this client never retries.
type ProtocolError struct {
	URL     string
	Code    int
	Message string
	Headers http.Header
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("odoo protocol error: %d %s (url=%s)", e.Code, e.Message, e.URL)
}

// FaultError is a fault returned by Odoo itself: the call reached the server
// and was rejected at the business-logic level (access denied, invalid
// domain, ...). Not retryable without changing the request.
type FaultError struct {
	Code    int
	Message string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("odoo fault: %d - %s", e.Code, e.Message)
}
