package router

import "time"

// Config holds the settings of the default middleware chain.
type Config struct {
	// Timeout bounds the handling time of a request. Zero disables the
	// timeout middleware.
	Timeout time.Duration
	CORS    CORSConfig
	// QuietdownRoutes lists request paths the logging middleware skips,
	// typically probes.
	QuietdownRoutes []string
	// HideHeaders lists request headers whose values are redacted in logs.
	HideHeaders []string
}

// CORSConfig configures the CORS middleware. It is only installed when at
// least one origin is configured; "*" allows every origin.
type CORSConfig struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}
