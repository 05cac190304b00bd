package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tablepad/cli/internal/config"
	apperrors "tablepad/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoints = config.Endpoints{
	Upload: "/upload",
	Run:    "/run",
	Reset:  "/reset",
	Tables: "/tables",
	View:   "/csvview/",
}

func newTestClient(t *testing.T, h http.Handler) *HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return newHTTP(config.Server{URL: srv.URL, Timeout: 5 * time.Second, Endpoints: testEndpoints}, "tablepad-test")
}

func TestRun(t *testing.T) {
	var gotRaw, gotRequestID, gotUA string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/run", r.URL.Path)
		gotRaw = r.FormValue("raw")
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sql":"SELECT 1;","output":"1"}`)
	}))

	res, err := c.Run(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, RunResult{SQL: "SELECT 1;", Output: "1"}, res)
	assert.Equal(t, "SELECT 1", gotRaw)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "tablepad-test", gotUA)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.Kind
	}{
		{name: "server error", status: 500, body: "boom", want: apperrors.ServerFailure},
		{name: "bad request", status: 400, body: "missing raw", want: apperrors.ServerFailure},
		{name: "not json", status: 200, body: "<html>", want: apperrors.MalformedResponse},
		{name: "missing sql", status: 200, body: `{"output":"1"}`, want: apperrors.MalformedResponse},
		{name: "missing output", status: 200, body: `{"sql":"x"}`, want: apperrors.MalformedResponse},
		{name: "wrong type", status: 200, body: `{"sql":1,"output":"1"}`, want: apperrors.MalformedResponse},
		{name: "array", status: 200, body: `[]`, want: apperrors.MalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			_, err := c.Run(context.Background(), "x")
			require.Error(t, err)
			kind, ok := apperrors.KindOf(err)
			require.True(t, ok, "error %v has no kind", err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestServerFailureKeepsStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	err := c.Reset(context.Background())
	var e *apperrors.E
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Contains(t, e.Message, "reset failed: 502")
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newHTTP(config.Server{URL: url, Timeout: time.Second, Endpoints: testEndpoints}, "")
	_, err := c.ListResources(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NetworkFailure), "got %v", err)
}

func TestUpload(t *testing.T) {
	got := map[string]string{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				return
			}
			b, _ := io.ReadAll(f)
			f.Close()
			got[fh.Filename] = string(b)
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}))

	err := c.Upload(context.Background(), []File{
		{Name: "orders.csv", Content: []byte("id\n1\n")},
		{Name: "users.csv", Content: []byte("id\n2\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"orders.csv": "id\n1\n", "users.csv": "id\n2\n"}, got)
}

func TestListResources(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []ResourceEntry
		wantErr apperrors.Kind
	}{
		{
			name: "ordered as received",
			body: `[{"table":"zeta","file":"zeta.csv"},{"table":"alpha","file":"alpha.csv"}]`,
			want: []ResourceEntry{{Table: "zeta", File: "zeta.csv"}, {Table: "alpha", File: "alpha.csv"}},
		},
		{
			name: "empty",
			body: `[]`,
			want: []ResourceEntry{},
		},
		{name: "object", body: `{"table":"x"}`, wantErr: apperrors.MalformedResponse},
		{name: "null", body: `null`, wantErr: apperrors.MalformedResponse},
		{name: "missing file", body: `[{"table":"x"}]`, wantErr: apperrors.MalformedResponse},
		{name: "garbage", body: `[{`, wantErr: apperrors.MalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				fmt.Fprint(w, tt.body)
			}))
			got, err := c.ListResources(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewURLAndFetch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/csvview/my orders.csv", r.URL.Path)
		fmt.Fprint(w, "<table></table>")
	}))

	assert.Equal(t, c.baseURL+"/csvview/my%20orders.csv", c.ViewURL("my orders.csv"))

	body, err := c.FetchResource(context.Background(), "my orders.csv")
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", body)
}

func TestRequestIDFromContext(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
		fmt.Fprint(w, `[]`)
	}))

	ctx := WithRequestID(context.Background(), "req-42")
	_, err := c.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}
