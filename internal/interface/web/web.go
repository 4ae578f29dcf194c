package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"

	domproduct "example.com/catalog-admin/app/internal/domain/product"
	domuser "example.com/catalog-admin/app/internal/domain/user"
	authuc "example.com/catalog-admin/app/internal/usecase/auth"
	productuc "example.com/catalog-admin/app/internal/usecase/product"
)

// Server renders the HTML admin surface for the product catalog.
type Server struct {
	authSvc    *authuc.Service
	productSvc *productuc.Service
	validator  *validator.Validate
	sessions   sessions.Store
	uploads    http.FileSystem
}

type Dependencies struct {
	AuthService    *authuc.Service
	ProductService *productuc.Service
	SessionStore   sessions.Store
	Uploads        http.FileSystem
}

func NewServer(deps Dependencies) *Server {
	return &Server{
		authSvc:    deps.AuthService,
		productSvc: deps.ProductService,
		validator:  validator.New(),
		sessions:   deps.SessionStore,
		uploads:    deps.Uploads,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(methodOverride)

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authMiddleware)

		pr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/products", http.StatusFound)
		})
		pr.Get("/products", s.handleListProducts)
		pr.Get("/products/{id}", s.handleShowProduct)
		pr.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(s.uploads)))

		pr.Group(func(ar chi.Router) {
			ar.Use(s.requireAdmin)
			ar.Get("/products/create", s.handleCreateForm)
			ar.Post("/products", s.handleCreateProduct)
			ar.Get("/products/{id}/edit", s.handleEditForm)
			ar.Put("/products/{id}", s.handleUpdateProduct)
			ar.Delete("/products/{id}", s.handleDeleteProduct)
		})
	})

	return r
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func (s *Server) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, domuser.ErrUnauthorized), errors.Is(err, domuser.ErrInvalidCredential):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
