package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/campusmatch/engine/internal/app"
	"github.com/campusmatch/engine/internal/config"
	"github.com/campusmatch/engine/internal/db"
	svcErr "github.com/campusmatch/engine/internal/errors"
	"github.com/campusmatch/engine/internal/metrics"
	"github.com/campusmatch/engine/internal/repository"
	"github.com/campusmatch/engine/internal/utils/pagination"
)

// Age bounds accepted by the feed filter. A requested range equal to
// the full band disables age filtering entirely.
const (
	minFilterAge = 18
	maxFilterAge = 100
)

// FeedRequest carries the parameters of one recommendation query.
// Zero Page/PageSize/MinAge/MaxAge mean "use the default".
type FeedRequest struct {
	RequesterID uint64
	Page        int
	PageSize    int
	SameSchool  bool
	SameProgram bool
	MinAge      int
	MaxAge      int
}

// FeedResponse is one ranked page of candidates.
type FeedResponse struct {
	Candidates []Candidate `json:"candidates"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int         `json:"total"`
	HasMore    bool        `json:"hasMore"`
}

// Service builds, scores, ranks, and paginates recommendation feeds.
type Service struct {
	appCtx *app.AppContext
	users  repository.UserDirectory
	swipes repository.SwipeStore

	defaultPageSize int
	maxPageSize     int
	overfetchFactor int
}

// NewService creates the recommendation service with dependencies from
// AppContext plus the directory and interaction store accessors.
func NewService(appCtx *app.AppContext, cfg *config.Config, users repository.UserDirectory, swipes repository.SwipeStore) *Service {
	return &Service{
		appCtx:          appCtx,
		users:           users,
		swipes:          swipes,
		defaultPageSize: cfg.Feed.DefaultPageSize,
		maxPageSize:     cfg.Feed.MaxPageSize,
		overfetchFactor: cfg.Feed.OverfetchFactor,
	}
}

// BuildFeed produces one ranked page of candidates for the requester.
//
// Pipeline: validate → exclusion set → directory fetch → age filter →
// score → rank → paginate → tag isLiked/isSkipped on the page.
//
// An unavailable interaction store degrades the exclusion step (the
// feed proceeds as if the requester had no prior swipes); any other
// directory/store failure is surfaced.
func (s *Service) BuildFeed(ctx context.Context, req FeedRequest) (*FeedResponse, error) {
	metrics.FeedRequestsTotal.Inc()

	page, pageSize, minAge, maxAge, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	requester, err := s.users.GetUser(ctx, req.RequesterID)
	if err != nil {
		s.appCtx.Logger.Error("requester lookup failed", "requester", req.RequesterID, "err", err)
		return nil, svcErr.Map(err)
	}

	// Exclusion set: every previously swiped target, like or skip.
	// A missing swipe store is a known degradation, not a failure.
	excluded, err := s.swipes.SwipedTargetIDs(ctx, requester.ID)
	if err != nil {
		if !svcErr.IsUnavailable(err) {
			return nil, svcErr.Map(err)
		}
		s.appCtx.Logger.Warn("swipe store unavailable, serving feed without exclusion", "requester", requester.ID)
		metrics.FeedDegradedTotal.Inc()
		excluded = nil
	}

	criteria := repository.EligibleCriteria{
		ExcludeID:  requester.ID,
		Gender:     oppositeGender(requester.Gender),
		ExcludeIDs: excluded,
		// Over-fetch beyond the requested page: age filtering happens
		// after this query, so the store cannot size the result exactly.
		Limit: s.overfetchFactor * pageSize * page,
	}
	if req.SameSchool && requester.School != "" {
		criteria.School = requester.School
	}
	if req.SameProgram && requester.Program != "" {
		criteria.Program = requester.Program
	}

	users, err := s.users.ListEligibleUsers(ctx, criteria)
	if err != nil {
		s.appCtx.Logger.Error("candidate fetch failed", "requester", requester.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	now := time.Now().UTC()
	filterAge := minAge > minFilterAge || maxAge < maxFilterAge

	candidates := make([]Candidate, 0, len(users))
	for i := range users {
		if filterAge && !withinAgeRange(users[i].BirthDate, minAge, maxAge, now) {
			continue
		}
		candidates = append(candidates, newCandidate(requester, &users[i], now))
	}

	rank(candidates)
	total := len(candidates)
	pageItems := pagination.Slice(candidates, page, pageSize)

	// Re-check swipe state on the returned page. The exclusion set may
	// be stale by the time the page is assembled, so the tags are
	// derived from a fresh lookup rather than from pool membership.
	for i := range pageItems {
		edge, err := s.swipes.GetSwipeEdge(ctx, requester.ID, pageItems[i].ID)
		if err != nil || edge == nil {
			continue
		}
		pageItems[i].IsLiked = edge.Action == db.ActionLike
		pageItems[i].IsSkipped = edge.Action == db.ActionSkip
	}

	return &FeedResponse{
		Candidates: pageItems,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		HasMore:    pagination.HasMore(page, pageSize, total),
	}, nil
}

// normalize applies defaults and rejects malformed paging/filter input.
func (s *Service) normalize(req FeedRequest) (page, pageSize, minAge, maxAge int, err error) {
	if req.RequesterID == 0 {
		return 0, 0, 0, 0, svcErr.InvalidArgument("userId is required")
	}

	page = req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return 0, 0, 0, 0, svcErr.InvalidArgument("page must be >= 1")
	}

	pageSize = req.PageSize
	if pageSize == 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize < 1 || pageSize > s.maxPageSize {
		return 0, 0, 0, 0, svcErr.InvalidArgument(fmt.Sprintf("pageSize must be between 1 and %d", s.maxPageSize))
	}

	minAge = req.MinAge
	if minAge == 0 {
		minAge = minFilterAge
	}
	maxAge = req.MaxAge
	if maxAge == 0 {
		maxAge = maxFilterAge
	}
	if minAge < minFilterAge || maxAge > maxFilterAge || minAge > maxAge {
		return 0, 0, 0, 0, svcErr.InvalidArgument("age range must lie within [18,100]")
	}

	return page, pageSize, minAge, maxAge, nil
}

// oppositeGender implements the fixed two-value orientation mapping.
// Any other recorded gender gets no orientation filter (pass-through);
// that asymmetry is deliberate policy until richer preference data
// exists.
func oppositeGender(g string) string {
	switch g {
	case "male":
		return "female"
	case "female":
		return "male"
	default:
		return ""
	}
}
