package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/security"
	"github.com/username/budgetfolio/backend/src/utils"
)

// AuthHandler exchanges the deployment's shared secret for a bearer token.
// This is a single-household application: there are no user accounts, only
// possession of the configured secret.
type AuthHandler struct {
	authService security.AuthService
	apiSecret   string
}

func NewAuthHandler(authService security.AuthService, apiSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		apiSecret:   apiSecret,
	}
}

type tokenRequest struct {
	Secret  string `json:"secret"`
	Subject string `json:"subject,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.apiSecret)) != 1 {
		logger.FromContext(r.Context()).Warn("Token request with wrong secret")
		utils.SendJSONError(w, "Invalid secret", http.StatusUnauthorized)
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "household"
	}
	token, err := h.authService.IssueToken(subject)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to issue token", "error", err)
		utils.SendJSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
