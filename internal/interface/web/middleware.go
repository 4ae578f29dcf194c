package web

import (
	"context"
	"net/http"

	domuser "example.com/catalog-admin/app/internal/domain/user"
)

type ctxKey int

const ctxUserKey ctxKey = iota

// methodOverride lets HTML forms submit PUT and DELETE through a hidden
// _method field on a POST.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the caller from the session cookie. Anyone
// without a valid session is sent to the login page.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.session(r)
		token, _ := sess.Values[sessionTokenKey].(string)
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		u, err := s.authSvc.Resolve(r.Context(), token)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates the mutating product routes behind the manage
// capability. Authenticated non-admins get a plain forbidden response.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r.Context())
		if u == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !u.Can(domuser.ActionManageProducts) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(ctx context.Context) *domuser.User {
	val := ctx.Value(ctxUserKey)
	if u, ok := val.(*domuser.User); ok {
		return u
	}
	return nil
}
