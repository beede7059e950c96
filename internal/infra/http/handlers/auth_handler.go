package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/usecase"
)

// AuthHandler exchanges credentials for an HS256 access token.
type AuthHandler struct {
	Users    usecase.UserRepositoryInterface
	Secret   string
	TokenTTL time.Duration
}

func NewAuthHandler(users usecase.UserRepositoryInterface, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, TokenTTL: ttl}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), req.Email)
	// Identical response for unknown email and wrong password.
	if err != nil || !usecase.VerifyPassword(user.Password, req.Password) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	now := time.Now()
	token, err := middleware.IssueToken(h.Secret, user.ID, user.Role, int64(h.TokenTTL.Seconds()), now.Unix())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: user.Role})
}
