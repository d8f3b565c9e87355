package http

import (
	"net/http"

	"github.com/kakairsyad/Interior-market/internal/auth"
)

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if !decodeJSON(w, r, s.opts.MaxRequestBodySize, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := sess.Auth.Login(r.Context(), req.Email, req.Password); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sess.Auth.State())
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeJSON(w, r, s.opts.MaxRequestBodySize, &req) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := sess.Auth.Register(r.Context(), req); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sess.Auth.State())
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Auth.Logout(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sess.Auth.State())
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Auth.State())
}
