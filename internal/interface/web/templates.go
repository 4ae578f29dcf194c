package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	domproduct "example.com/catalog-admin/app/internal/domain/product"
	domuser "example.com/catalog-admin/app/internal/domain/user"
)

//go:embed views/*.gohtml
var viewsFS embed.FS

var templates = template.Must(template.ParseFS(viewsFS, "views/*.gohtml"))

// render executes the named view into a buffer first so a template failure
// never leaves a half-written page behind a 200.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type loginView struct {
	User  *domuser.User
	Error string
}

type listView struct {
	User      *domuser.User
	CanManage bool
	Notice    string
	Products  []*domproduct.Product
	Page      int
	HasPrev   bool
	HasNext   bool
	PrevPage  int
	NextPage  int
}

type showView struct {
	User    *domuser.User
	Product *domproduct.Product
}

type formView struct {
	User   *domuser.User
	Title  string
	Action string
	Method string
	Values map[string]string
	Errors map[string]string
}
