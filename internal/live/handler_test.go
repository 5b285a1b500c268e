package live

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/lightpack/internal/toc"
)

func setupHandler(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "guide"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "guide", "index.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(dir, toc.Options{}, nil)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return h, ts
}

func TestResolvePage(t *testing.T) {
	h := NewHandler("/site", toc.Options{}, nil)
	tests := []struct {
		page string
		want string
	}{
		{"/", filepath.Join("/site", "index.html")},
		{"/guide/", filepath.Join("/site", "guide", "index.html")},
		{"/guide", filepath.Join("/site", "guide", "index.html")},
		{"/a/b.html", filepath.Join("/site", "a", "b.html")},
		{"/../../etc/passwd", filepath.Join("/site", "etc", "passwd", "index.html")},
		{"../../guide/intro.html", filepath.Join("/site", "guide", "intro.html")},
	}
	for _, tt := range tests {
		got, ok := h.resolvePage(tt.page)
		if !ok || got != tt.want {
			t.Errorf("resolvePage(%q) = %q,%v want %q", tt.page, got, ok, tt.want)
		}
	}
}

func TestClientScriptBackdropClicks(t *testing.T) {
	// Drawer backdrops close on clicks inside them; modal backdrops only on
	// clicks on the backdrop itself.
	for _, want := range []string{
		`t.closest(".drawer-backdrop[data-lp-backdrop]")`,
		`t.hasAttribute("data-lp-backdrop")`,
	} {
		if !strings.Contains(ClientScript, want) {
			t.Errorf("client script missing %s", want)
		}
	}
}

func TestClientScriptRoute(t *testing.T) {
	_, ts := setupHandler(t)
	resp, err := http.Get(ts.URL + "/" + ClientScriptName)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("content type = %q", ct)
	}
}

func TestWebSocketSession(t *testing.T) {
	h, ts := setupHandler(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/live?page=/guide/"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	var hello Patch
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Session == "" {
		t.Error("first patch should carry the session id")
	}
	if h.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1", h.Sessions())
	}

	if err := conn.WriteJSON(Message{Type: MsgActivate, Group: "modal-1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var p Patch
	if err := conn.ReadJSON(&p); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !p.Locked || p.Fragments["modal-1"] == "" {
		t.Errorf("patch = %+v", p)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&p); err != nil {
		t.Fatalf("read: %v", err)
	}
	if p.Type != "error" {
		t.Errorf("invalid message should produce an error patch, got %q", p.Type)
	}
}

func TestWebSocketMissingPage(t *testing.T) {
	_, ts := setupHandler(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/live?page=/missing.html"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 response, got %v", resp)
	}
}
