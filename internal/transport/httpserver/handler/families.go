package handler

import (
	"errors"
	"net/http"
	"strings"

	familydomain "family-scheduler-go/internal/domain/family"
)

type createFamilyRequest struct {
	UserID          string `json:"userId"`
	FamilyName      string `json:"familyName"`
	Role            string `json:"role"`
	ProtagonistName string `json:"protagonistName"`
	ProtagonistType string `json:"protagonistType"`
}

type createFamilyResponse struct {
	FamilyID string `json:"familyId"`
	UnitsDue int    `json:"unitsDue"`
}

type joinFamilyRequest struct {
	UserID               string `json:"userId"`
	FamilyID             string `json:"familyId"`
	Role                 string `json:"role"`
	CustomUnitForNewUser *int   `json:"customUnitForNewUser,omitempty"`
}

type joinFamilyResponse struct {
	NewUserUnits int `json:"newUserUnits"`
	TotalUsers   int `json:"totalUsers"`
}

type familyResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	AdminID          string `json:"adminId"`
	OriginalUnitsDue int    `json:"originalUnitsDue"`
	CurrentUnitsDue  int    `json:"currentUnitsDue"`
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.FamilyName) == "" || req.Role == "" ||
		req.ProtagonistName == "" || req.ProtagonistType == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "all fields are required")
		return
	}

	result, err := h.Families.CreateFamily(r.Context(), familydomain.CreateFamilyInput{
		AdminID:         req.UserID,
		Name:            req.FamilyName,
		Role:            req.Role,
		ProtagonistName: req.ProtagonistName,
		ProtagonistType: req.ProtagonistType,
	})
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrUserNotFound):
			h.log.BusinessError("families.create: admin user does not exist", err, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "user_not_found", "admin user does not exist")
		default:
			h.log.InternalError("families.create: create family failed", err, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createFamilyResponse{
		FamilyID: result.FamilyID,
		UnitsDue: result.UnitsDue,
	})
}

func (h *Handlers) SearchFamilies(w http.ResponseWriter, r *http.Request) {
	familyID := strings.TrimSpace(r.URL.Query().Get("familyId"))
	familyName := strings.TrimSpace(r.URL.Query().Get("familyName"))
	if familyID == "" && familyName == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "provide either familyId or familyName to search")
		return
	}

	families, err := h.Families.SearchFamilies(r.Context(), familydomain.SearchQuery{ID: familyID, Name: familyName})
	if err != nil {
		h.log.InternalError("families.search: search failed", err, "family_id", familyID, "family_name", familyName)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if len(families) == 0 {
		writeError(w, http.StatusNotFound, "no_matches", "no matching families found")
		return
	}

	response := make([]familyResponse, 0, len(families))
	for _, fam := range families {
		response = append(response, familyResponse{
			ID:               fam.ID,
			Name:             fam.Name,
			AdminID:          fam.AdminID,
			OriginalUnitsDue: fam.OriginalUnitsDue,
			CurrentUnitsDue:  fam.CurrentUnitsDue,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"families": response})
}

func (h *Handlers) JoinFamily(w http.ResponseWriter, r *http.Request) {
	var req joinFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" || req.FamilyID == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "userId, familyId and role are required")
		return
	}

	result, err := h.Families.JoinFamily(r.Context(), familydomain.JoinFamilyInput{
		UserID:      req.UserID,
		FamilyID:    req.FamilyID,
		Role:        req.Role,
		CustomUnits: req.CustomUnitForNewUser,
	})
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrFamilyNotFound):
			h.log.BusinessError("families.join: family not found", err, "family_id", req.FamilyID)
			writeError(w, http.StatusNotFound, "family_not_found", "family not found")
		case errors.Is(err, familydomain.ErrUserNotFound):
			h.log.BusinessError("families.join: user does not exist", err, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "user_not_found", "user does not exist")
		case errors.Is(err, familydomain.ErrAlreadyInFamily):
			h.log.BusinessError("families.join: user already in family", err, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "already_in_family", "user is already part of a family")
		default:
			h.log.InternalError("families.join: join failed", err, "user_id", req.UserID, "family_id", req.FamilyID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, joinFamilyResponse{
		NewUserUnits: result.NewUserUnits,
		TotalUsers:   result.TotalUsers,
	})
}
