package handler

import (
	"net/http"
	"strings"

	userdomain "family-scheduler-go/internal/domain/user"
)

type authUserRequest struct {
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type authUserResponse struct {
	UserID          string                    `json:"userId"`
	IsNewUser       bool                      `json:"isNewUser"`
	Family          *userdomain.FamilySummary `json:"family"`
	UserUnitBalance int                       `json:"userUnitBalance"`
}

func (h *Handlers) AuthUser(w http.ResponseWriter, r *http.Request) {
	var req authUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.GoogleID == "" || req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "googleId, email and name are required")
		return
	}

	result, err := h.Users.RegisterOrAuthenticate(r.Context(), req.GoogleID, req.Email, req.Name)
	if err != nil {
		h.log.InternalError("auth.user: authentication failed", err, "google_id", req.GoogleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	status := http.StatusOK
	if result.IsNewUser {
		status = http.StatusCreated
	}

	writeJSON(w, status, authUserResponse{
		UserID:          result.UserID,
		IsNewUser:       result.IsNewUser,
		Family:          result.Family,
		UserUnitBalance: result.UnitBalance,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}

	if err := h.Users.Logout(r.Context(), userID); err != nil {
		h.log.InternalError("auth.logout: logout failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logout recorded"})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
