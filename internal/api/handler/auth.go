package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arkade-games/adastra-server/internal/api/request"
	"github.com/arkade-games/adastra-server/internal/api/response"
	"github.com/arkade-games/adastra-server/internal/services/account"
	"github.com/arkade-games/adastra-server/internal/services/session"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	accounts *account.Service
	sessions *session.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *account.Service, sessions *session.Service) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Username and password required"))
		return
	}

	// Whitespace-only names are empty names
	req.Username = strings.TrimSpace(req.Username)
	req.PilotName = strings.TrimSpace(req.PilotName)
	req.ShipName = strings.TrimSpace(req.ShipName)

	if req.Username == "" || req.Password == "" {
		WriteError(w, NewValidationError("Username and password required"))
		return
	}

	acct, err := h.accounts.Register(r.Context(), req.Username, req.Password, req.PilotName, req.ShipName)
	if err != nil {
		WriteError(w, err)
		return
	}

	sess, err := h.sessions.Issue(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Success:  true,
		Token:    sess.Token,
		Username: acct.Username,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Username and password required"))
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, NewValidationError("Username and password required"))
		return
	}

	acct, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	sess, err := h.sessions.Issue(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	isAdmin := acct.IsAdmin
	response.JSON(w, http.StatusOK, response.AuthResponse{
		Success:  true,
		Token:    sess.Token,
		Username: acct.Username,
		IsAdmin:  &isAdmin,
	})
}
