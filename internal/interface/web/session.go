package web

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName     = "catalog_session"
	sessionTokenKey = "token"

	formFlashKey   = "form"
	noticeFlashKey = "notice"
)

// formState carries submitted values and field errors across the redirect
// back to a form.
type formState struct {
	Values map[string]string
	Errors map[string]string
}

func init() {
	gob.Register(formState{})
}

func (s *Server) session(r *http.Request) *sessions.Session {
	// Get never fails for cookie stores beyond returning a fresh session.
	sess, _ := s.sessions.Get(r, sessionName)
	return sess
}

func (s *Server) flashFormState(w http.ResponseWriter, r *http.Request, st formState) {
	sess := s.session(r)
	sess.AddFlash(st, formFlashKey)
	_ = sess.Save(r, w)
}

func (s *Server) popFormState(w http.ResponseWriter, r *http.Request) *formState {
	sess := s.session(r)
	flashes := sess.Flashes(formFlashKey)
	if len(flashes) == 0 {
		return nil
	}
	_ = sess.Save(r, w)
	if st, ok := flashes[len(flashes)-1].(formState); ok {
		return &st
	}
	return nil
}

func (s *Server) flashNotice(w http.ResponseWriter, r *http.Request, msg string) {
	sess := s.session(r)
	sess.AddFlash(msg, noticeFlashKey)
	_ = sess.Save(r, w)
}

func (s *Server) popNotice(w http.ResponseWriter, r *http.Request) string {
	sess := s.session(r)
	flashes := sess.Flashes(noticeFlashKey)
	if len(flashes) == 0 {
		return ""
	}
	_ = sess.Save(r, w)
	if msg, ok := flashes[len(flashes)-1].(string); ok {
		return msg
	}
	return ""
}
