// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package serverurl

import (
	"errors"
	"testing"
)

func TestDetectScheme(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Scheme
	}{
		{
			name: "http scheme",
			raw:  "http://localhost:5000",
			want: SchemeHTTP,
		},
		{
			name: "https scheme",
			raw:  "https://pad.example.com",
			want: SchemeHTTPS,
		},
		{
			name: "uppercase scheme",
			raw:  "HTTP://localhost:5000",
			want: SchemeHTTP,
		},
		{
			name: "other scheme",
			raw:  "ftp://example.com",
			want: SchemeUnknown,
		},
		{
			name: "no scheme",
			raw:  "localhost:5000",
			want: SchemeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectScheme(tt.raw)
			if got != tt.want {
				t.Errorf("DetectScheme() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		expectError bool
	}{
		{
			name: "already canonical",
			raw:  "http://127.0.0.1:5000",
			want: "http://127.0.0.1:5000",
		},
		{
			name: "trailing slash",
			raw:  "https://pad.example.com/",
			want: "https://pad.example.com",
		},
		{
			name: "bare host and port",
			raw:  "localhost:5000",
			want: "http://localhost:5000",
		},
		{
			name: "mixed case and prefix path",
			raw:  "HTTPS://Pad.Example.com/tools/pad/",
			want: "https://pad.example.com/tools/pad",
		},
		{
			name: "surrounding whitespace",
			raw:  "  http://localhost:5000  ",
			want: "http://localhost:5000",
		},
		{
			name:        "empty",
			raw:         "",
			expectError: true,
		},
		{
			name:        "unsupported scheme",
			raw:         "grpc://localhost:50051",
			expectError: true,
		},
		{
			name:        "missing host",
			raw:         "http://",
			expectError: true,
		},
		{
			name:        "query string",
			raw:         "http://localhost:5000/?x=1",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.expectError {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %q", tt.raw, got)
				}
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("Normalize(%q) error type = %T, want *ParseError", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base, endpoint, want string
	}{
		{"http://h:1", "/run", "http://h:1/run"},
		{"http://h:1/", "run", "http://h:1/run"},
		{"http://h:1/prefix", "/csvview/", "http://h:1/prefix/csvview/"},
		{"http://h:1", "", "http://h:1"},
	}
	for _, tt := range tests {
		if got := Join(tt.base, tt.endpoint); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.endpoint, got, tt.want)
		}
	}
}

func TestHost(t *testing.T) {
	if got := Host("http://127.0.0.1:5000/x"); got != "127.0.0.1:5000" {
		t.Errorf("Host() = %q", got)
	}
	if got := Host("::::"); got != "server" {
		t.Errorf("Host() = %q, want server", got)
	}
}
