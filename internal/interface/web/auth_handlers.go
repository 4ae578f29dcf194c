package web

import (
	"net/http"

	authuc "example.com/catalog-admin/app/internal/usecase/auth"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", loginView{
		Error: s.popNotice(w, r),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	result, err := s.authSvc.Login(r.Context(), authuc.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		s.flashNotice(w, r, "Invalid email or password.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	sess := s.session(r)
	sess.Values[sessionTokenKey] = result.Token
	if err := sess.Save(r, w); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/products", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	delete(sess.Values, sessionTokenKey)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
