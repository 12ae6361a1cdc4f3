// Package web holds the embedded HTML templates and static assets, and the
// echo renderer that executes them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Template names besides the navigable pages.
const TemplateError = "error"

var templates = []string{
	string(domain.PageLoading),
	string(domain.PageLanding),
	string(domain.PageLogin),
	string(domain.PageSignup),
	string(domain.PageDashboard),
	string(domain.PageAdmin),
	TemplateError,
}

// View is the data every page template receives.
type View struct {
	Title   string
	User    domain.Session
	CSRF    template.HTML
	Flash   Flash
	Refresh *Refresh
	Data    any
}

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind     string `json:"k,omitempty"`
	Message  string `json:"m,omitempty"`
	Download string `json:"d,omitempty"`
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// ErrorData is the payload of the error page.
type ErrorData struct {
	Status  int
	Message string
}

// Refresh makes the page navigate to URL after Seconds.
type Refresh struct {
	Seconds int
	URL     string
}

// Renderer implements echo.Renderer over the embedded templates. Each page is
// parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(templates))}
	for _, name := range templates {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the embedded asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
