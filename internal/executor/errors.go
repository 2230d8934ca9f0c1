package executor

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/zvonbot/zvonocli/internal/types"
)

var (
	// ErrBusy is returned when the triggering control already has a request in flight
	ErrBusy = errors.New("request already in progress")

	// ErrInvalidJSON marks a response body that is not a JSON envelope
	ErrInvalidJSON = errors.New("response is not valid JSON")
)

// NetworkError is a request that never completed or whose body could not be parsed
type NetworkError struct {
	Endpoint types.Endpoint
	Status   int // 0 when no HTTP response was received
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint.Name, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Detail returns an actionable description of the failure
func (e *NetworkError) Detail() string {
	return categorizeError(e.Err)
}

// APIError is a parsed response whose success flag is false
type APIError struct {
	Endpoint types.Endpoint
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected", e.Endpoint.Name)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint.Name, e.Message)
}

// categorizeRequestError analyzes error strings from HTTP requests and provides
// actionable, user-friendly error messages based on the error type.
func categorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "context canceled") ||
		strings.Contains(errLower, "context cancelled") {
		return "Request cancelled"
	}

	if strings.Contains(errLower, "deadline exceeded") {
		return "Request timeout - the API did not answer in time, check the base URL or raise the timeout"
	}

	if strings.Contains(errLower, "not valid json") {
		return "Invalid response - the server answered with something other than JSON: " + errStr
	}

	// Proxy errors (check before connection errors since proxy errors often contain "connection refused")
	if strings.Contains(errLower, "proxy") {
		return "Proxy connection failed - verify HTTP_PROXY/HTTPS_PROXY settings"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify hostname is correct and network is available"
	}

	if strings.Contains(errLower, "connection refused") {
		return "Connection refused - check if the API server is running and port is correct"
	}

	if strings.Contains(errLower, "connection reset") {
		return "Connection reset by server - server may have crashed or network issue occurred"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check network connection and firewall settings"
	}

	if strings.Contains(errLower, "x509") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "tls") {
		return "TLS error - check the server certificate: " + errStr
	}

	if strings.Contains(errLower, "unsupported protocol") ||
		strings.Contains(errLower, "invalid url") {
		return "Invalid URL - verify the base URL format and protocol (http/https)"
	}

	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - server may have terminated the connection prematurely"
	}

	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return "Connection timeout - server took too long to respond, try increasing timeout"
	}

	return "Request failed: " + errStr
}

// categorizeError unwraps the error chain and categorizes the root cause
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrInvalidJSON) {
		return categorizeRequestError(err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return categorizeRequestError("deadline exceeded")
	}
	if errors.Is(err, context.Canceled) {
		return categorizeRequestError("context canceled")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return categorizeRequestError("deadline exceeded")
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return "TLS certificate signed by unknown authority - the API certificate is not trusted"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return categorizeRequestError("connection refused")
		case syscall.ECONNRESET:
			return categorizeRequestError("connection reset")
		case syscall.ENETUNREACH, syscall.EHOSTUNREACH:
			return categorizeRequestError("network is unreachable")
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Timeout() {
		return categorizeRequestError("timeout")
	}

	return categorizeRequestError(err.Error())
}
