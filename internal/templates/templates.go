package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
)

//go:embed *.html partials/*.html
var files embed.FS

const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageHome      = "home"
	PageDashboard = "dashboard"
)

var pagePartials = map[string]string{
	PageLogin:     "login_register.html",
	PageRegister:  "login_register.html",
	PageHome:      "home.html",
	PageDashboard: "dashboard.html",
}

type formField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

var funcs = template.FuncMap{
	"field": func(name, label, kind string, values, errs map[string]string) formField {
		return formField{Name: name, Label: label, Type: kind, Value: values[name], Error: errs[name]}
	},
}

// Renderer executes base.html combined with the partial registered for each page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pagePartials))
	for page, partial := range pagePartials {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(files, "base.html", path.Join("partials", partial))
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the page only once it has executed completely, so a template error
// never leaves a half written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("execute %s template: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
