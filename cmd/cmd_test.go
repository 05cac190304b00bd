package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tablepad/cli/internal/config"
	"tablepad/cli/internal/listing"
	"tablepad/cli/internal/workbench"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type fakeBackend struct {
	resets  atomic.Int32
	uploads atomic.Int32
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/tables":
		fmt.Fprint(w, `[{"table":"orders","file":"orders.csv"}]`)
	case "/run":
		raw := r.FormValue("raw")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"sql":%q,"output":"1"}`, strings.ToUpper(strings.TrimSpace(raw))+";")
	case "/upload":
		f.uploads.Add(1)
		fmt.Fprint(w, `{"status":"ok"}`)
	case "/reset":
		f.resets.Add(1)
		fmt.Fprint(w, `{"status":"ok"}`)
	case "/csvview/orders.csv":
		fmt.Fprint(w, "id,item\n1,apple\n")
	default:
		http.NotFound(w, r)
	}
}

// useBackend points the package configuration at a test server.
func useBackend(t *testing.T, h http.Handler) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = config.Config{
		LogLevel: "info",
		Server: config.Server{
			URL:     srv.URL,
			Timeout: 5 * time.Second,
			Endpoints: config.Endpoints{
				Upload: "/upload",
				Run:    "/run",
				Reset:  "/reset",
				Tables: "/tables",
				View:   "/csvview/",
			},
		},
	}
}

func TestSessionRunsStagedText(t *testing.T) {
	useBackend(t, &fakeBackend{})
	var out bytes.Buffer
	script := "stage run\nselect 1\n.\nrun\n"

	err := runSession(context.Background(), envOptions{
		renderListing: true,
		showResults:   true,
		in:            strings.NewReader(script),
		out:           &out,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "orders")
	assert.Contains(t, out.String(), "SELECT 1;")
}

func TestSessionResetDeclined(t *testing.T) {
	fb := &fakeBackend{}
	useBackend(t, fb)
	var out bytes.Buffer

	err := runSession(context.Background(), envOptions{
		in:  strings.NewReader("reset\nno\nquit\n"),
		out: &out,
	})

	require.NoError(t, err)
	assert.Zero(t, fb.resets.Load())
	assert.Contains(t, out.String(), "Delete ALL CSV files?")
}

func TestSessionResetConfirmed(t *testing.T) {
	fb := &fakeBackend{}
	useBackend(t, fb)
	var out bytes.Buffer

	err := runSession(context.Background(), envOptions{
		in:  strings.NewReader("reset\nyes\n"),
		out: &out,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), fb.resets.Load())
	assert.Contains(t, out.String(), "All CSV files deleted")
}

func TestSessionUnknownCommand(t *testing.T) {
	useBackend(t, &fakeBackend{})
	var out bytes.Buffer

	err := runSession(context.Background(), envOptions{
		in:  strings.NewReader("frobnicate\nquit\n"),
		out: &out,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
}

func TestViewPrint(t *testing.T) {
	useBackend(t, &fakeBackend{})
	var out bytes.Buffer
	e := newEnv(envOptions{out: &out, in: strings.NewReader("")})
	require.NoError(t, e.listing.Refresh(context.Background()))

	require.NoError(t, e.view(context.Background(), "orders", true))
	assert.Contains(t, out.String(), "apple")

	err := e.view(context.Background(), "ordres", true)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out.String(), `Did you mean "orders"?`)
}

func TestParseSessionLine(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArgs []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"RUN", "run", []string{}},
		{"upload a.csv  b.csv", "upload", []string{"a.csv", "b.csv"}},
		{"view orders --print", "view", []string{"orders", "--print"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, args := parseSessionLine(tt.line)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSuggest(t *testing.T) {
	links := []listing.Link{{Label: "orders"}, {Label: "users"}, {Label: "order_items"}}
	tests := []struct {
		name string
		want string
	}{
		{"ordres", "orders"},
		{"Users", "users"},
		{"inventory", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.name, links))
		})
	}
	assert.Equal(t, "", suggest("x", nil))
}

func TestStageRunInput(t *testing.T) {
	dir := t.TempDir()
	golden := filepath.Join(dir, "golden.sql")
	require.NoError(t, os.WriteFile(golden, []byte("SELECT 2"), 0o600))

	t.Cleanup(func() { runFile, runGolden = "", "" })

	st := workbench.New(workbench.Options{})
	st.Init(context.Background())

	runGolden = golden
	src, err := stageRunInput(st, nil)
	require.NoError(t, err)
	assert.Equal(t, workbench.SourceGolden, src)
	text, _ := st.SourceText(workbench.SourceGolden)
	assert.Equal(t, "SELECT 2", text)

	runGolden = ""
	src, err = stageRunInput(st, []string{"SELECT 3"})
	require.NoError(t, err)
	assert.Equal(t, workbench.SourceBuffer, src)
	assert.Equal(t, "SELECT 3", st.Editor().Text())
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(p, []byte("id\n1\n"), 0o600))

	files, err := readFiles([]string{p})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "orders.csv", files[0].Name)
	assert.Equal(t, "id\n1\n", string(files[0].Content))

	_, err = readFiles([]string{filepath.Join(dir, "missing.csv")})
	assert.Error(t, err)
}
