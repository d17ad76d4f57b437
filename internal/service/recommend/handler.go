package recommend

import (
	"encoding/json"
	"net/http"
	"strconv"

	svcErr "github.com/campusmatch/engine/internal/errors"
)

// handleGetRecommendations serves GET /api/recommendations.
//
// Query parameters: userId (required), page, pageSize, sameSchool,
// sameProgram, minAge, maxAge.
func (s *Service) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	requesterID, err := strconv.ParseUint(q.Get("userId"), 10, 64)
	if err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("userId must be a valid uint64"))
		return
	}

	req := FeedRequest{RequesterID: requesterID}

	if req.Page, err = intParam(q.Get("page")); err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("page must be an integer"))
		return
	}
	if req.PageSize, err = intParam(q.Get("pageSize")); err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("pageSize must be an integer"))
		return
	}
	if req.MinAge, err = intParam(q.Get("minAge")); err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("minAge must be an integer"))
		return
	}
	if req.MaxAge, err = intParam(q.Get("maxAge")); err != nil {
		svcErr.Write(w, svcErr.InvalidArgument("maxAge must be an integer"))
		return
	}
	req.SameSchool = boolParam(q.Get("sameSchool"))
	req.SameProgram = boolParam(q.Get("sameProgram"))

	resp, err := s.BuildFeed(r.Context(), req)
	if err != nil {
		svcErr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// intParam parses an optional integer query value; empty means unset.
func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
