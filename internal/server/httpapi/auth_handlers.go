package httpapi

import (
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := &loginRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	token, sess, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		UserID:   sess.UserID,
		Role:     string(sess.Role),
		FullName: sess.FullName,
	})
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type signUpResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	req := &signUpRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.accounts.SignUp(r.Context(), req.Email, req.Password, req.Role, req.FullName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, signUpResponse{ID: user.ID, Email: user.Email, FullName: user.FullName})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.accounts.Logout(tokenFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	UserID        string `json:"user_id"`
	Role          string `json:"role"`
	FullName      string `json:"full_name"`
	HasCredential bool   `json:"has_credential"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		UserID:        sess.UserID,
		Role:          string(sess.Role),
		FullName:      sess.FullName,
		HasCredential: sess.Credential != "",
	})
}
