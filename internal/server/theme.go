package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/lightpack/internal/theme"
)

// ClientCookie identifies a browser across requests.
const ClientCookie = "lightpack_client"

type themeBody struct {
	Theme string `json:"theme"`
}

func (s *Server) registerThemeRoutes(r chi.Router) {
	r.Route("/api/theme", func(r chi.Router) {
		r.Get("/", s.handleGetTheme)
		r.Put("/", s.handleSetTheme)
		r.Delete("/", s.handleClearTheme)
		r.Post("/toggle", s.handleToggleTheme)
	})
}

// clientID returns the id from the client cookie, issuing a new one when
// the request has none.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	v, err := s.themes.Get(r.Context(), clientID(w, r))
	if err != nil {
		s.fail(w, "reading theme", err)
		return
	}
	writeJSON(w, themeBody{Theme: v})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	id := clientID(w, r)
	if err := s.themes.Set(r.Context(), id, body.Theme); err != nil {
		s.fail(w, "storing theme", err)
		return
	}
	v, err := s.themes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, "reading theme", err)
		return
	}
	writeJSON(w, themeBody{Theme: v})
}

func (s *Server) handleClearTheme(w http.ResponseWriter, r *http.Request) {
	if err := s.themes.Clear(r.Context(), clientID(w, r)); err != nil {
		s.fail(w, "clearing theme", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	v, err := theme.Toggle(r.Context(), s.themes, clientID(w, r))
	if err != nil {
		s.fail(w, "toggling theme", err)
		return
	}
	writeJSON(w, themeBody{Theme: v})
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.log.Error("Theme request failed", zap.String("op", what), zap.Error(err))
	http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
