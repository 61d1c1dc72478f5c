// Package views renders the storefront's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"go-storefront/forms"
	"go-storefront/models"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the data every template receives
type Page struct {
	Title   string
	User    *models.SessionIdentity
	Message string
	Form    any
	Errors  forms.Messages
	Data    any
}

// Renderer executes named pages inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": models.Money,
	"isClerk": func(u *models.SessionIdentity) bool {
		return u != nil && u.Role == models.RoleClerk
	},
}

// New parses the layout and every page under templates/. A page is named
// by its path without the extension, e.g. "general/cart".
func New() (*Renderer, error) {
	// partials (files starting with "_") are shared by every page
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/*/_*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	err = fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path == "templates/layout.html" || strings.HasPrefix(d.Name(), "_") {
			return err
		}
		page, err := layout.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(templateFS, path); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes page name with the given status. Output is buffered so a
// template failure still produces a clean 500.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := v.pages[name]
	if !ok {
		slog.Error("Unknown template", "template", name)
		http.Error(w, "Something broke!", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		slog.Error("Error rendering template", "template", name, "error", err)
		http.Error(w, "Something broke!", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the bundled stylesheet
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
