// internal/platform/config/errors.go
package config

import "errors"

// Configuration errors. Target related errors live in the domain package.
var (
	// ErrConfigNotFound is returned when an explicitly requested config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidProxy is returned when the proxy is not a host:port pair.
	ErrInvalidProxy = errors.New("invalid proxy: expected host:port")

	// ErrInvalidEndpoint is returned when analysis is enabled without an endpoint.
	ErrInvalidEndpoint = errors.New("invalid analysis endpoint")
)
