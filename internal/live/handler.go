package live

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/lightpack/internal/toc"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves live sessions for pages of a built site.
type Handler struct {
	siteDir string
	opts    toc.Options
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHandler creates a handler over the pages in siteDir.
func NewHandler(siteDir string, opts toc.Options, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		siteDir:  siteDir,
		opts:     opts,
		log:      log.Named("live"),
		sessions: make(map[string]*Session),
	}
}

// RegisterRoutes mounts the live endpoints onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/live", h.handleWebSocket)
	r.Get("/"+ClientScriptName, h.handleClientScript)
}

// Sessions returns the number of open sessions.
func (h *Handler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Handler) handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(ClientScript))
}

// resolvePage maps a page URL path onto a file under siteDir, refusing
// anything that escapes it.
func (h *Handler) resolvePage(page string) (string, bool) {
	page = strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+page)), "/")
	if page == "" || page == "." {
		page = "index.html"
	}
	if strings.HasSuffix(page, "/") || filepath.Ext(page) == "" {
		page = strings.TrimSuffix(page, "/") + "/index.html"
	}
	full := filepath.Join(h.siteDir, filepath.FromSlash(page))
	rel, err := filepath.Rel(h.siteDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return full, true
}

func (h *Handler) open(page string) (*Session, error) {
	path, ok := h.resolvePage(page)
	if !ok {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := NewSession(f, h.opts, h.log)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s, nil
}

func (h *Handler) close(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	s, err := h.open(page)
	if err != nil {
		h.log.Debug("Page not available", zap.String("page", page), zap.Error(err))
		http.Error(w, `{"error":"page not found"}`, http.StatusNotFound)
		return
	}
	defer h.close(s)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.send(conn, Patch{Type: "patch", Session: s.ID, Locked: s.Engine().Lock().Locked()})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("Websocket read failed", zap.Error(err))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(conn, Patch{Type: "error", Message: "invalid message format"})
			continue
		}
		h.send(conn, s.Handle(msg))
	}
}

func (h *Handler) send(conn *websocket.Conn, p Patch) {
	if err := conn.WriteJSON(p); err != nil {
		h.log.Warn("Websocket write failed", zap.Error(err))
	}
}
