// Package view renders the product page and the product form.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/muhammadheryan/product-console/constant"
	"github.com/muhammadheryan/product-console/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

type pageData struct {
	State          *model.State
	ConfirmMessage string
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"deref": func(id *uint64) uint64 {
			if id == nil {
				return 0
			}
			return *id
		},
		"odd": func(i int) bool { return i%2 == 1 },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package-level initialization; the templates are embedded, so
// a parse error is a programming error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Page renders the whole page for state. Nothing is written to w when rendering fails.
func (r *Renderer) Page(w io.Writer, state *model.State) error {
	return r.execute(w, "index", pageData{
		State:          state,
		ConfirmMessage: constant.DeleteConfirmMessage,
	})
}

// Form renders only the product form.
func (r *Renderer) Form(w io.Writer, form model.FormView) error {
	return r.execute(w, "product_form", form)
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
