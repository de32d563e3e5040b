package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

//go:embed views
var viewsFS embed.FS

var _ fiber.Views = (*Renderer)(nil)

// Renderer implementa fiber.Views sobre html/template.
//
// Cada archivo de views/pages define "title" y "content" y se ejecuta dentro de "layout";
// las plantillas de views/partials se pueden ejecutar solas como fragmentos htmx.
type Renderer struct {
	fsys fs.FS

	mu    sync.RWMutex
	base  *template.Template
	pages map[string]*template.Template
}

// NewRenderer carga las vistas embebidas.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{fsys: viewsFS}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Load parsea layout, parciales y páginas. fiber lo invoca al crear la app.
func (r *Renderer) Load() error {
	base, err := template.New("").Funcs(templateFuncs()).ParseFS(r.fsys, "views/layout.html", "views/partials/*.html")
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(r.fsys, "views/pages/*.html")
	if err != nil {
		return err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(r.fsys, f); err != nil {
			return fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}

	r.mu.Lock()
	r.base, r.pages = base, pages
	r.mu.Unlock()
	return nil
}

// Render ejecuta una página completa (si name es una página) o un fragmento.
// El argumento layout se ignora: las páginas siempre usan "layout".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	r.mu.RLock()
	page, isPage := r.pages[name]
	base := r.base
	r.mu.RUnlock()

	// Ejecutar en buffer para no enviar HTML a medias si la plantilla falla.
	var buf bytes.Buffer
	var err error
	if isPage {
		err = page.ExecuteTemplate(&buf, "layout", data)
	} else {
		err = base.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"activityTypes": func() []entity.ActivityType {
			return entity.ActivityTypes
		},
	}
}
