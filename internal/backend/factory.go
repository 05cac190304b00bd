// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"tablepad/cli/internal/config"
)

// New creates a backend API implementation for the configured server.
// userAgent identifies the CLI build in request headers.
func New(server config.Server, userAgent string) API {
	return newHTTP(server, userAgent)
}
