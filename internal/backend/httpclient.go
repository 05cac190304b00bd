// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tablepad/cli/internal/config"
	apperrors "tablepad/cli/internal/errors"
	"tablepad/cli/internal/serverurl"

	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failed response body ends up in an error message.
const maxErrorBody = 512

// RequestIDHeader carries a per-exchange identifier that also appears in the logs.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID makes every request issued with ctx carry id in RequestIDHeader,
// so a dispatched command and its log lines share one identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// HTTP implements API over the backend's REST endpoints.
type HTTP struct {
	// baseURL is the normalized server URL (e.g., "http://127.0.0.1:5000")
	baseURL string
	// endpoints contains the URL paths for the backend endpoints
	endpoints config.Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// userAgent is sent with every request
	userAgent string
}

// newHTTP creates a new HTTP client for the given server settings.
func newHTTP(server config.Server, userAgent string) *HTTP {
	return &HTTP{
		baseURL:   strings.TrimRight(server.URL, "/"),
		endpoints: server.Endpoints,
		client:    &http.Client{Timeout: server.Timeout},
		userAgent: userAgent,
	}
}

// ViewURL derives the viewer address for file: base + view prefix + escaped name.
func (h *HTTP) ViewURL(file string) string {
	prefix := serverurl.Join(h.baseURL, h.endpoints.View)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + url.PathEscape(file)
}

func (h *HTTP) endpoint(path string) string {
	return serverurl.Join(h.baseURL, path)
}

// setStandardHeaders stamps identification headers on every request.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	if req.Header.Get(RequestIDHeader) != "" {
		return
	}
	id, ok := RequestIDFrom(req.Context())
	if !ok {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)
}

// do executes req and classifies the outcome. Transport errors become
// NetworkFailure and non-2xx statuses become ServerFailure; in both cases the
// response body is already closed. On success the caller owns resp.Body.
func (h *HTTP) do(req *http.Request, action string) (*http.Response, error) {
	h.setStandardHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NetworkFailure, action+" request did not complete", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("%s failed: %d %s", action, resp.StatusCode, strings.TrimSpace(string(b)))
		return nil, apperrors.Status(resp.StatusCode, strings.TrimSpace(msg))
	}
	return resp, nil
}

// drain consumes and closes a body we do not need so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
