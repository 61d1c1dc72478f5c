package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"go-storefront/middleware"
	"go-storefront/services"
	"go-storefront/session"
	"go-storefront/views"
)

// Renderer draws a named page
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page views.Page)
}

func page(r *http.Request, title string) views.Page {
	return views.Page{Title: title, User: session.FromContext(r.Context()).User}
}

func renderError(v Renderer, w http.ResponseWriter, r *http.Request, status int, title, message string) {
	p := page(r, title)
	p.Message = message
	v.Render(w, status, "general/error", p)
}

// failure logs err and renders the generic error page. Product lookups that
// miss become 404s; everything else is a 500.
func failure(v Renderer, w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, services.ErrNotFound) {
		renderError(v, w, r, http.StatusNotFound, "Error", "Product not found.")
		return
	}
	slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	renderError(v, w, r, http.StatusInternalServerError, "Error", message)
}

// Unauthorized renders the guard's denials
func Unauthorized(v Renderer) middleware.DenyFunc {
	return func(w http.ResponseWriter, r *http.Request, status int, err *middleware.AuthorizationError) {
		slog.Debug("Access denied", "path", r.URL.Path, "capability", err.Capability.String())
		renderError(v, w, r, status, "Unauthorized", err.Message)
	}
}

// NotFound renders unmatched routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Page Not Found", http.StatusNotFound)
}

func saveSession(sessions *session.Manager, w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	if err := sessions.Save(w, r, s); err != nil {
		slog.Error("Error saving session", "path", r.URL.Path, "error", err)
		http.Error(w, "Something broke!", http.StatusInternalServerError)
		return false
	}
	return true
}
