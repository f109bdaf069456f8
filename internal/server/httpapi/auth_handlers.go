package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/languagesphere/server/internal/server/models"
	"github.com/languagesphere/server/internal/webutil"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return webutil.ErrBadRequestWrap("Invalid request body", err)
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	token, user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, sessionResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, sessionResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
	return nil
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) error {
	userID, _ := UserIDFromContext(r.Context())

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		return apiError(err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]*models.User{"user": user})
	return nil
}
