package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/lightpack/internal/db"
	"github.com/ziadkadry99/lightpack/internal/live"
	"github.com/ziadkadry99/lightpack/internal/theme"
	"github.com/ziadkadry99/lightpack/internal/toc"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	dir := t.TempDir()
	page := `<html><body><h2>Hi</h2></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := New(Config{SiteDir: dir},
		theme.NewSQLStore(database),
		live.NewHandler(dir, toc.DefaultOptions(), nil),
		nil)
	return srv, dir
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowAll: true}, nil, nil, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func do(t *testing.T, srv *Server, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestThemeAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, "GET", "/api/theme/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie {
		t.Fatalf("expected client cookie, got %v", cookies)
	}
	client := cookies[0]

	w = do(t, srv, "PUT", "/api/theme/", `{"theme":"theme-dark"}`, client)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"theme-dark"`) {
		t.Fatalf("PUT = %d %s", w.Code, w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("known client should not get a new cookie")
	}

	w = do(t, srv, "GET", "/", "", client)
	if !strings.Contains(w.Body.String(), `<body class="theme-dark">`) {
		t.Errorf("page should be served dark: %s", w.Body.String())
	}

	w = do(t, srv, "POST", "/api/theme/toggle", "", client)
	var got themeBody
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.Theme != "" {
		t.Errorf("toggle from dark = %q, want light", got.Theme)
	}

	do(t, srv, "PUT", "/api/theme/", `{"theme":"theme-dark"}`, client)
	if w := do(t, srv, "DELETE", "/api/theme/", "", client); w.Code != http.StatusNoContent {
		t.Errorf("DELETE status %d", w.Code)
	}
	w = do(t, srv, "GET", "/api/theme/", "", client)
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.Theme != "" {
		t.Errorf("after clear = %q", got.Theme)
	}

	if w := do(t, srv, "PUT", "/api/theme/", `not json`, client); w.Code != http.StatusBadRequest {
		t.Errorf("invalid body status %d", w.Code)
	}
}

func TestStaticFiles(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, "GET", "/style.css", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "body{}" {
		t.Errorf("css = %d %q", w.Code, w.Body.String())
	}
	if w := do(t, srv, "GET", "/missing.html", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing page status %d", w.Code)
	}
	w = do(t, srv, "GET", "/"+live.ClientScriptName, "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("client script status %d", w.Code)
	}
}
