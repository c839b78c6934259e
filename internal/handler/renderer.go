package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/DukeRupert/aqdi/internal/i18n"
)

// TemplateRenderer is the interface for rendering HTML templates.
// This interface allows for mocking in tests.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, name string, data any)
	RenderPartial(w http.ResponseWriter, name string, data any)
}

// Renderer manages template parsing and rendering.
//
// Templates are organized as:
//   - layouts/site.html - the single page layout, defines "site"
//   - components/*.html - page sections shared by pages and partials
//   - partials/*.html - fragments swapped in by htmx; each defines a
//     template named after its file
//   - pages/*.html - full pages rendered inside the layout
type Renderer struct {
	fsys    fs.FS
	funcs   template.FuncMap
	logger  *slog.Logger
	isDev   bool
	mu      sync.RWMutex
	pages   map[string]*template.Template
	partial *template.Template
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	FS      fs.FS // template tree, rooted at the templates directory
	Catalog *i18n.Catalog
	Logger  *slog.Logger
	IsDev   bool // reparse on every render
}

// NewRenderer parses every template in cfg.FS.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		fsys:   cfg.FS,
		funcs:  TemplateFuncs(cfg.Catalog),
		logger: cfg.Logger,
		isDev:  cfg.IsDev,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) glob(dir string) ([]string, error) {
	files, err := fs.Glob(r.fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", dir, err)
	}
	return files, nil
}

func (r *Renderer) load() error {
	components, err := r.glob("components")
	if err != nil {
		return err
	}
	partials, err := r.glob("partials")
	if err != nil {
		return err
	}
	shared := append(append([]string{}, components...), partials...)

	// Partials and components parse into one set so fragments can nest.
	partialSet := template.New("partials").Funcs(r.funcs)
	if len(shared) > 0 {
		if partialSet, err = partialSet.ParseFS(r.fsys, shared...); err != nil {
			return fmt.Errorf("failed to parse partials: %w", err)
		}
	}

	base, err := template.New("site").Funcs(r.funcs).ParseFS(r.fsys, "layouts/site.html")
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}
	if len(shared) > 0 {
		if base, err = base.ParseFS(r.fsys, shared...); err != nil {
			return fmt.Errorf("failed to parse components into layout: %w", err)
		}
	}

	pageFiles, err := r.glob("pages")
	if err != nil {
		return err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		tmpl, err := base.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}
		if tmpl, err = tmpl.ParseFS(r.fsys, page); err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}
		pages[strings.TrimSuffix(path.Base(page), ".html")] = tmpl
	}

	r.mu.Lock()
	r.pages = pages
	r.partial = partialSet
	r.mu.Unlock()

	r.logger.Debug("templates loaded", "pages", len(pages), "partials", len(partials))
	return nil
}

// Reload reparses all templates. Useful for development.
func (r *Renderer) Reload() error {
	return r.load()
}

// Render executes page name inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "site", data)
}

// RenderFragment executes the partial or component named name.
func (r *Renderer) RenderFragment(w io.Writer, name string, data any) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	set := r.partial
	r.mu.RUnlock()
	if set.Lookup(name) == nil {
		return fmt.Errorf("partial %q not found", name)
	}
	return set.ExecuteTemplate(w, name, data)
}

// RenderHTTP renders a page directly to an http.ResponseWriter.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data any) {
	// Render to buffer first to catch errors before writing headers
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// RenderPartial renders a fragment for an htmx response.
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.RenderFragment(&buf, name, data); err != nil {
		r.logger.Error("partial execution failed", "name", name, "error", err)
		http.Error(w, "Partial execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ListTemplates returns the loaded page names, sorted.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
