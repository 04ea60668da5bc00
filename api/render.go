package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a named page and its data into HTML.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// View is what every page template receives.
type View struct {
	Messages []Flash
	Year     int
	Data     any
}

// TemplateRenderer renders the embedded page templates, each wrapped in base.html.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"monthYear": func(d *datatypes.Date) string {
		if d == nil {
			return ""
		}
		return time.Time(*d).Format("Jan 2006")
	},
	"proficiencyPercent": func(level int) int {
		return level * 100 / len(models.ProficiencyLevels)
	},
	"fieldErrors": func(fields map[string][]string, name string) []string {
		return fields[name]
	},
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &TemplateRenderer{pages: map[string]*template.Template{}}
	for _, path := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "base" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", path)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the page into a buffer first so a failing template never writes a partial page.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
