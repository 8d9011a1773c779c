// Package web serves the product management pages of the web UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/acmeshop/catalog/internal/webui/client"
	"github.com/acmeshop/catalog/internal/webui/form"
	"github.com/acmeshop/catalog/internal/webui/state"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler renders the product list and form and dispatches edit, delete,
// submit and refresh intents to the cache and form controller.
type Handler struct {
	cache  *state.ProductCache
	form   *form.Controller
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHandler parses the embedded templates and creates a Handler.
func NewHandler(cache *state.ProductCache, controller *form.Controller, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string {
			return decimal.NewFromFloat(v).StringFixed(2)
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{
		cache:  cache,
		form:   controller,
		tmpl:   tmpl,
		logger: logger.With("component", "web"),
	}, nil
}

// RegisterRoutes registers the web UI routes.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.Index)
	r.Post("/products", h.Save)
	r.Get("/products/{id}/edit", h.Edit)
	r.Post("/products/{id}/delete", h.Delete)
	r.Post("/reload", h.Reload)
}

// pageData is the template payload for the index page.
type pageData struct {
	Products []client.Product
	Draft    form.Draft
	Notice   *form.Notice
}

// Index renders the product form and listing from the cache.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.cache.EnsureLoaded(r.Context())

	data := pageData{
		Products: h.cache.Products(),
		Draft:    h.form.Draft(),
		Notice:   h.form.Notice(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		h.logger.ErrorContext(r.Context(), "Error rendering index page", "error", err)
	}
}

// Save handles a form submission: the draft is updated with the submitted
// values and submitted through the form controller. Success and failure are
// reported via transient notices on the redirected page.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.ErrorContext(r.Context(), "Error parsing form", "error", err)
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	h.form.SetFields(
		r.PostFormValue("name"),
		r.PostFormValue("description"),
		r.PostFormValue("price"),
		r.PostFormValue("quantity"),
	)
	if err := h.form.Submit(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Product submission failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Edit loads the selected product into the form draft.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if p, found := h.cache.Get(id); found {
		h.form.Edit(p)
	} else {
		h.logger.WarnContext(r.Context(), "Edit target not in cache", "ID", id)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes the selected product.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.form.Delete(r.Context(), id); err != nil {
		h.logger.WarnContext(r.Context(), "Product deletion failed", "ID", id, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reload refreshes the cache from the API.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.cache.Reload(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseID extracts the numeric product ID from the request path.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("Invalid ID: %s", pathValueID), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
