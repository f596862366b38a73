package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	activitydomain "family-scheduler-go/internal/domain/activity"
	"github.com/go-chi/chi/v5"
)

type createActivityRequest struct {
	UserID       string  `json:"userId"`
	FamilyID     *string `json:"familyId,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ActivityType string  `json:"activityType"`
	StartTime    string  `json:"startTime"`
	Duration     float64 `json:"duration"`
}

type createActivityResponse struct {
	ActivityID string `json:"activityId"`
}

func (h *Handlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Title) == "" || req.ActivityType == "" ||
		req.StartTime == "" || req.Duration == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing required fields")
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "startTime must be RFC 3339")
		return
	}

	activityID, err := h.Activities.Create(r.Context(), activitydomain.CreateInput{
		UserID:        req.UserID,
		FamilyID:      req.FamilyID,
		Title:         req.Title,
		Description:   req.Description,
		ActivityType:  req.ActivityType,
		StartTime:     startTime,
		DurationHours: req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, activitydomain.ErrInvalidType):
			writeError(w, http.StatusBadRequest, "invalid_activity_type", "activity type must be personal or family")
		case errors.Is(err, activitydomain.ErrInvalidStartMinute):
			writeError(w, http.StatusBadRequest, "invalid_start_time", "start time must be at a full hour or half-hour")
		case errors.Is(err, activitydomain.ErrInvalidDuration):
			writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be positive")
		case errors.Is(err, activitydomain.ErrSlotTaken):
			h.log.BusinessError("activities.create: slot taken", err, "user_id", req.UserID)
			writeError(w, http.StatusBadRequest, "slot_taken", "you already have an activity in this time slot")
		default:
			h.log.InternalError("activities.create: create failed", err, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createActivityResponse{ActivityID: activityID})
}

func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID := strings.TrimSpace(chi.URLParam(r, "id"))
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "activity id is required")
		return
	}

	if err := h.Activities.Delete(r.Context(), activityID); err != nil {
		switch {
		case errors.Is(err, activitydomain.ErrActivityNotFound):
			h.log.BusinessError("activities.delete: not found", err, "activity_id", activityID)
			writeError(w, http.StatusNotFound, "activity_not_found", "activity not found")
		default:
			h.log.InternalError("activities.delete: delete failed", err, "activity_id", activityID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "activity deleted"})
}
