package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"admin/internal/utils"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet and live search script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"truncate": utils.Truncate,
	"add":      func(a, b int) int { return a + b },
}

// pages lists every page template and the layout it is rendered in.
var pages = map[string]string{
	"login":      "auth",
	"dashboard":  "layout",
	"list":       "layout",
	"detail":     "layout",
	"confirm":    "layout",
	"categories": "layout",
	"error":      "layout",
	"results":    "results",
}

// Renderer implements gin's HTMLRender with one template set per page so
// every page can define its own "content" block.
type Renderer struct {
	sets map[string]*template.Template
	root map[string]string
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{sets: make(map[string]*template.Template, len(pages)), root: pages}
	for page := range pages {
		t, err := template.New("").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.sets[page] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.sets[name]
	if !ok {
		t = r.sets["error"]
		name = "error"
	}
	return render.HTML{Template: t, Name: r.root[name], Data: data}
}
