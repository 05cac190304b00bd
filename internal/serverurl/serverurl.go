// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package serverurl validates and normalizes the base URL of the tablepad backend.
// Users type addresses in many shapes ("localhost:5000", "http://host/", "HTTPS://x");
// everything downstream expects a scheme://host[:port][/prefix] string without a
// trailing slash.
package serverurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the transport scheme of a backend URL.
type Scheme string

const (
	SchemeHTTP    Scheme = "http"
	SchemeHTTPS   Scheme = "https"
	SchemeUnknown Scheme = "unknown"
)

// ParseError represents an error that occurred during server URL parsing
type ParseError struct {
	Raw    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid server URL: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid server URL: %s", e.Reason)
}

// NewParseError creates a new ParseError
func NewParseError(raw, reason, hint string) *ParseError {
	return &ParseError{
		Raw:    raw,
		Reason: reason,
		Hint:   hint,
	}
}

// DetectScheme detects the scheme of a raw server address.
// Addresses without "://" are reported as SchemeUnknown.
func DetectScheme(raw string) Scheme {
	lower := strings.ToLower(strings.TrimSpace(raw))

	if strings.HasPrefix(lower, "http://") {
		return SchemeHTTP
	}
	if strings.HasPrefix(lower, "https://") {
		return SchemeHTTPS
	}
	return SchemeUnknown
}

// Normalize parses a server address and returns the canonical base URL.
// A bare host[:port] is assumed to be plain HTTP, which is how the backend is
// usually run during development.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", NewParseError(raw, "empty address", "provide a URL such as http://127.0.0.1:5000")
	}

	if DetectScheme(s) == SchemeUnknown {
		if strings.Contains(s, "://") {
			return "", NewParseError(raw, "unsupported scheme", "use http:// or https://")
		}
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", NewParseError(raw, err.Error(), "check the address for typos")
	}
	if u.Host == "" {
		return "", NewParseError(raw, "missing host", "provide a URL such as http://127.0.0.1:5000")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", NewParseError(raw, "query and fragment are not allowed", "remove everything after '?' or '#'")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	return u.String(), nil
}

// Host returns host[:port] of a server URL, or "server" when it cannot be parsed.
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}

// Join appends an endpoint path to a normalized base URL.
func Join(base, endpoint string) string {
	if endpoint == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
