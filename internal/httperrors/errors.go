// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns backend failures into user-friendly notices.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	apperrors "tablepad/cli/internal/errors"
)

// Description is the user-facing form of a failure.
type Description struct {
	Title  string
	Hints  []string
	Detail string
}

// maxDetail bounds the technical detail shown under a notice.
const maxDetail = 160

// Describe classifies err (timeout, DNS, connection refused, TLS, server status,
// malformed response) and explains it. action reads like "running SQL"; host
// names the backend.
func Describe(err error, action, host string) Description {
	if err == nil {
		return Description{}
	}
	if host == "" {
		host = "server"
	}
	d := describe(err, action, host)
	d.Detail = shorten(err.Error())
	return d
}

func describe(err error, action, host string) Description {
	if isTimeoutError(err) {
		return Description{
			Title: fmt.Sprintf("⏱️  Connection timeout while %s", action),
			Hints: []string{
				"The backend took too long to respond",
				"Raise --timeout for long-running statements",
				"Check that " + host + " is not overloaded",
			},
		}
	}

	if isDNSError(err) {
		return Description{
			Title: fmt.Sprintf("🌐 Cannot resolve %s while %s", host, action),
			Hints: []string{
				"Check the server address (tablepad config show)",
				"Check your network and DNS settings",
			},
		}
	}

	if isConnectionRefusedError(err) {
		return Description{
			Title: fmt.Sprintf("🚫 Connection refused while %s", action),
			Hints: []string{
				"Is the tablepad backend running on " + host + "?",
				"Check the port in the server address",
			},
		}
	}

	if isSSLError(err) {
		return Description{
			Title: fmt.Sprintf("🔒 Secure connection failed while %s", action),
			Hints: []string{
				"Check the server certificate",
				"Use http:// if the backend does not serve TLS",
				"Check your system date and time",
			},
		}
	}

	if kind, ok := apperrors.KindOf(err); ok {
		switch kind {
		case apperrors.ServerFailure:
			return describeStatus(err, action, host)
		case apperrors.MalformedResponse:
			return Description{
				Title: fmt.Sprintf("⚠️  Unexpected response from %s while %s", host, action),
				Hints: []string{
					"The backend answered in a format this client does not understand",
					"Check that the server address points at a tablepad backend",
				},
			}
		}
	}

	return Description{
		Title: fmt.Sprintf("❌ Cannot reach %s while %s", host, action),
		Hints: []string{
			"Check your network connection",
			"Check the server address (tablepad config show)",
		},
	}
}

func describeStatus(err error, action, host string) Description {
	status := 0
	var e *apperrors.E
	if errors.As(err, &e) {
		status = e.Status
	}
	if status >= 500 || isServerError(err.Error()) {
		return Description{
			Title: fmt.Sprintf("⚠️  Server error while %s", action),
			Hints: []string{
				host + " failed to process the request",
				"Your input was kept; try again once the backend recovers",
			},
		}
	}
	title := fmt.Sprintf("⚠️  Request rejected while %s", action)
	if status > 0 {
		title = fmt.Sprintf("⚠️  Request rejected (%d) while %s", status, action)
	}
	return Description{
		Title: title,
		Hints: []string{"Check the endpoint paths in the config file"},
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls:") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error text names a 5xx condition.
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

func shorten(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDetail {
		return s[:maxDetail] + "..."
	}
	return s
}
