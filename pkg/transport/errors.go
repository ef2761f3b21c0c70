package transport

import "errors"

var (
	// ErrNotConfigured indicates no API URL has been set yet.
	ErrNotConfigured = errors.New("no API URL configured")
	// ErrUnreachable indicates a network-level failure or timeout.
	ErrUnreachable = errors.New("server unreachable")
	// ErrServerUnhealthy indicates the server answered but did not
	// report a healthy status.
	ErrServerUnhealthy = errors.New("server unhealthy")
)
