// Package theme stores the per-client dark mode preference.
package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/lightpack/internal/db"
	"github.com/ziadkadry99/lightpack/internal/dom"
)

// Dark is the only stored theme. Its absence means the light theme.
const Dark = "theme-dark"

// Store persists one theme value per client.
type Store interface {
	Get(ctx context.Context, client string) (string, error)
	Set(ctx context.Context, client, value string) error
	Clear(ctx context.Context, client string) error
}

// Toggle flips the client between dark and light and returns the new value.
func Toggle(ctx context.Context, s Store, client string) (string, error) {
	cur, err := s.Get(ctx, client)
	if err != nil {
		return "", err
	}
	next := Dark
	if cur == Dark {
		next = ""
	}
	if err := s.Set(ctx, client, next); err != nil {
		return "", err
	}
	return next, nil
}

// Apply paints value onto the body class list of doc.
func Apply(doc *html.Node, value string) {
	if body := dom.Body(doc); body != nil {
		dom.SetClass(body, Dark, value == Dark)
	}
}

// SQLStore keeps preferences in the theme_preferences table.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore creates a Store backed by the given database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

// Get returns the stored theme, or "" when none is stored.
func (s *SQLStore) Get(ctx context.Context, client string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM theme_preferences WHERE client_id = ?`, client).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading theme: %w", err)
	}
	return v, nil
}

// Set stores value. Anything other than Dark clears the preference.
func (s *SQLStore) Set(ctx context.Context, client, value string) error {
	if value != Dark {
		return s.Clear(ctx, client)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (client_id, theme, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(client_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		client, value)
	if err != nil {
		return fmt.Errorf("storing theme: %w", err)
	}
	return nil
}

// Clear removes the preference.
func (s *SQLStore) Clear(ctx context.Context, client string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM theme_preferences WHERE client_id = ?`, client); err != nil {
		return fmt.Errorf("clearing theme: %w", err)
	}
	return nil
}

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, client string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[client], nil
}

func (m *MemoryStore) Set(ctx context.Context, client, value string) error {
	if value != Dark {
		return m.Clear(ctx, client)
	}
	m.mu.Lock()
	m.values[client] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, client string) error {
	m.mu.Lock()
	delete(m.values, client)
	m.mu.Unlock()
	return nil
}
