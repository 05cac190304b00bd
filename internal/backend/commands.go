// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	apperrors "tablepad/cli/internal/errors"
)

// maxViewBody caps the size of a fetched viewer page.
const maxViewBody = 8 << 20

// Upload posts files to the upload endpoint as multipart/form-data.
// Each file is a separate "files" part named after File.Name.
func (h *HTTP) Upload(ctx context.Context, files []File) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("build upload body: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("build upload body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.endpoints.Upload), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.do(req, "upload")
	if err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

// Run posts raw text in form field "raw" and decodes {sql, output}.
// Both fields must be present and be strings.
func (h *HTTP) Run(ctx context.Context, raw string) (RunResult, error) {
	form := url.Values{"raw": {raw}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.endpoints.Run), strings.NewReader(form.Encode()))
	if err != nil {
		return RunResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := h.do(req, "run")
	if err != nil {
		return RunResult{}, err
	}
	defer resp.Body.Close()

	var out struct {
		SQL    *string `json:"sql"`
		Output *string `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return RunResult{}, apperrors.Wrap(apperrors.MalformedResponse, "run response is not a JSON object with sql and output", err)
	}
	if out.SQL == nil {
		return RunResult{}, apperrors.New(apperrors.MalformedResponse, "run response has no sql field")
	}
	if out.Output == nil {
		return RunResult{}, apperrors.New(apperrors.MalformedResponse, "run response has no output field")
	}
	return RunResult{SQL: *out.SQL, Output: *out.Output}, nil
}

// Reset asks the backend to delete all of its resources.
func (h *HTTP) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.endpoints.Reset), nil)
	if err != nil {
		return err
	}
	resp, err := h.do(req, "reset")
	if err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

// ListResources fetches the resource listing. The body must be a JSON array whose
// entries all carry string "table" and "file" fields; order is preserved.
func (h *HTTP) ListResources(ctx context.Context) ([]ResourceEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint(h.endpoints.Tables), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.do(req, "list resources")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.Wrap(apperrors.MalformedResponse, "resource listing is not valid JSON", err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.New(apperrors.MalformedResponse, "resource listing is not a JSON array")
	}

	var items []struct {
		Table *string `json:"table"`
		File  *string `json:"file"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.Wrap(apperrors.MalformedResponse, "resource listing has unexpected entries", err)
	}

	entries := make([]ResourceEntry, 0, len(items))
	for i, it := range items {
		if it.Table == nil || it.File == nil {
			return nil, apperrors.New(apperrors.MalformedResponse, fmt.Sprintf("resource listing entry %d lacks table or file", i))
		}
		entries = append(entries, ResourceEntry{Table: *it.Table, File: *it.File})
	}
	return entries, nil
}

// FetchResource downloads the viewer page for file.
func (h *HTTP) FetchResource(ctx context.Context, file string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.ViewURL(file), nil)
	if err != nil {
		return "", err
	}
	resp, err := h.do(req, "view "+file)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxViewBody))
	if err != nil {
		return "", apperrors.Wrap(apperrors.NetworkFailure, "view "+file+" body was cut short", err)
	}
	return string(b), nil
}
