package trips

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	tripdomain "trip-planner-go/internal/domain/trip"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

type upsertMemberRequest struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type memberResponse struct {
	ID       uint      `json:"id"`
	TripID   uint      `json:"trip_id"`
	UserID   uint      `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	members, err := h.Trips.ListMembers(r.Context(), tripID, userID)
	if err != nil {
		h.writeTripError(w, "members.list", err, userID, tripID)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, toMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpsertMember(w http.ResponseWriter, r *http.Request) {
	var req upsertMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}
	if strings.TrimSpace(req.Role) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "role is required")
		return
	}

	member, err := h.Trips.UpsertMember(r.Context(), tripID, userID, req.UserID, req.Role)
	if err != nil {
		h.writeTripError(w, "members.upsert", err, userID, tripID)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	tripID, err := parseUintParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid trip id")
		return
	}
	memberUserID, err := parseUintParam(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user id")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Trips.RemoveMember(r.Context(), tripID, userID, memberUserID); err != nil {
		if errors.Is(err, tripdomain.ErrMemberNotFound) {
			h.log.BusinessError("members.remove: member not found", err, "user_id", userID, "trip_id", tripID, "member_user_id", memberUserID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.writeTripError(w, "members.remove", err, userID, tripID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMemberResponse(member tripdomain.TripMember) memberResponse {
	return memberResponse{
		ID:       member.ID,
		TripID:   member.TripID,
		UserID:   member.UserID,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}
