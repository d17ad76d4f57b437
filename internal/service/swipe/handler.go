package swipe

import (
	"encoding/json"
	"net/http"
	"strconv"

	svcErr "github.com/campusmatch/engine/internal/errors"
)

type swipeRequest struct {
	SwiperID uint64 `json:"swiperId"`
	TargetID uint64 `json:"targetId"`
	Action   string `json:"action"`
}

// handlePostSwipe serves POST /api/swipes.
func (s *Service) handlePostSwipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	dec := json.NewDecoder(r.Body)
	// unknown-shaped input is rejected at the boundary
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("invalid swipe payload"))
		return
	}
	if req.SwiperID == 0 || req.TargetID == 0 {
		svcErr.Write(w, svcErr.InvalidArgument("swiperId and targetId are required"))
		return
	}

	result, err := s.RecordSwipe(r.Context(), req.SwiperID, req.TargetID, req.Action)
	if err != nil {
		svcErr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// handleGetLikers serves GET /api/likes/received.
func (s *Service) handleGetLikers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var token *string
	if v := r.URL.Query().Get("paginationToken"); v != "" {
		token = &v
	}

	resp, err := s.ListLikersOf(r.Context(), userID, token)
	if err != nil {
		svcErr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleGetLikerCount serves GET /api/likes/received/count.
func (s *Service) handleGetLikerCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	count, err := s.CountLikersOf(r.Context(), userID)
	if err != nil {
		svcErr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]uint64{"count": count})
}

// handleGetMatches serves GET /api/matches.
func (s *Service) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	matches, err := s.ListMatchesOf(r.Context(), userID)
	if err != nil {
		svcErr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"matches": matches})
}

func userIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	userID, err := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("userId must be a valid uint64"))
		return 0, false
	}
	return userID, true
}
