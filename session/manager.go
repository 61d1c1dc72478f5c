package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go-storefront/utils"

	"github.com/google/uuid"
)

// CookieName is the name of the session cookie
const CookieName = "storefront_session"

type contextKey string

const sessionContextKey = contextKey("session")

// Manager binds sessions to requests through a signed cookie
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a Manager. secure marks the cookie HTTPS-only.
func NewManager(store Store, secret []byte, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, secure: secure}
}

// Middleware loads the request's session, or starts an empty unsaved one,
// and attaches it to the request context
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.load(r)
		ctx := context.WithValue(r.Context(), sessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return &Session{}
	}
	id, err := utils.ParseSessionToken(m.secret, cookie.Value)
	if err != nil {
		return &Session{}
	}
	s, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("Error loading session", "error", err)
		}
		return &Session{}
	}
	return s
}

// FromContext returns the session attached by Middleware. Requests that did
// not pass through Middleware get an empty session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionContextKey).(*Session); ok {
		return s
	}
	return &Session{}
}

// Save persists s and refreshes the cookie. New sessions get an id here.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := m.store.Save(r.Context(), s, m.ttl); err != nil {
		return err
	}
	token, err := utils.SignSessionToken(m.secret, s.ID, m.ttl)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves s to a fresh id, dropping the old one. Call on login.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request, s *Session) error {
	if s.ID != "" {
		if err := m.store.Delete(r.Context(), s.ID); err != nil {
			return err
		}
		s.ID = ""
	}
	return m.Save(w, r, s)
}

// Destroy deletes the whole session (identity and cart) and expires the cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, s *Session) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	if s.ID == "" {
		return nil
	}
	err := m.store.Delete(r.Context(), s.ID)
	s.ID = ""
	s.User = nil
	s.Cart = nil
	return err
}
