// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the tablepad backend service.
// It defines the API contract for uploading CSV resources, running text through the
// transform endpoint, resetting server state and listing the resources it holds.
// Every failed call returns an error carrying one of the kinds from internal/errors.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Upload sends files as one multipart request with a repeated "files" field.
	Upload(ctx context.Context, files []File) error
	// Run submits raw text and returns the transformed SQL and its output.
	Run(ctx context.Context, raw string) (RunResult, error)
	// Reset deletes every resource held by the backend.
	Reset(ctx context.Context) error
	// ListResources returns the current listing in backend order.
	ListResources(ctx context.Context) ([]ResourceEntry, error)
	// ViewURL derives the viewer address for a resource file. It performs no I/O.
	ViewURL(file string) string
	// FetchResource downloads the rendered viewer page for a resource file.
	FetchResource(ctx context.Context, file string) (string, error)
}

// File is one upload part.
type File struct {
	Name    string
	Content []byte
}

// RunResult is the {sql, output} pair returned by the run endpoint.
type RunResult struct {
	SQL    string `json:"sql"`
	Output string `json:"output"`
}

// ResourceEntry describes one backend-held resource.
type ResourceEntry struct {
	Table string `json:"table"`
	File  string `json:"file"`
}
