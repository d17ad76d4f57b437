package swipe

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/campusmatch/engine/internal/app"
	"github.com/campusmatch/engine/internal/db"
	svcErr "github.com/campusmatch/engine/internal/errors"
	"github.com/campusmatch/engine/internal/metrics"
	"github.com/campusmatch/engine/internal/repository"

	"gorm.io/gorm"
)

// likersPageSize is the page size for "who liked me" listings.
const likersPageSize = 20

// Service records swipes and detects mutual matches. It also serves
// the likes-received and matches read surfaces built on the same
// interaction store.
type Service struct {
	appCtx  *app.AppContext
	users   repository.UserDirectory
	swipes  repository.SwipeStore
	matches repository.MatchStore
}

// NewService creates the swipe service with dependencies from
// AppContext plus the directory and interaction store accessors.
func NewService(appCtx *app.AppContext, users repository.UserDirectory, swipes repository.SwipeStore, matches repository.MatchStore) *Service {
	return &Service{
		appCtx:  appCtx,
		users:   users,
		swipes:  swipes,
		matches: matches,
	}
}

// SwipeResult reports the outcome of one recorded swipe.
type SwipeResult struct {
	Accepted bool   `json:"accepted"`
	Action   string `json:"action"`
	IsMatch  bool   `json:"isMatch"`
	MatchID  string `json:"matchId,omitempty"`
}

// RecordSwipe records a like/skip from swiper toward target and, for
// likes, detects mutual matches.
//
// Behavior:
//   - Self-swipes and unknown users are rejected before any write.
//   - The edge write is an idempotent overwrite: repeating a swipe
//     refreshes action and timestamp on the single existing row.
//   - A like checks for the reciprocal like edge; when present, the
//     match is created through the store's atomic insert-if-absent, so
//     two concurrent reciprocal likes yield exactly one record.
//   - A failed match write after a successful edge write is absorbed:
//     the swipe stays accepted, isMatch is reported false, and the
//     failure is logged. Reciprocity is re-derived on the next like.
func (s *Service) RecordSwipe(ctx context.Context, swiperID, targetID uint64, action string) (*SwipeResult, error) {
	s.appCtx.Logger.Debug("RecordSwipe called", "swiper", swiperID, "target", targetID, "action", action)

	if action != db.ActionLike && action != db.ActionSkip {
		return nil, svcErr.InvalidArgument("action must be \"like\" or \"skip\"")
	}
	if swiperID == targetID {
		return nil, svcErr.InvalidArgument("cannot swipe on own profile")
	}

	// A missing row is the caller's mistake; anything else is a
	// directory failure and keeps its own classification.
	if _, err := s.users.GetUser(ctx, swiperID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("swiper not found")
		}
		return nil, svcErr.Map(err)
	}
	if _, err := s.users.GetUser(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("target not found")
		}
		return nil, svcErr.Map(err)
	}

	// Prior edge drives the cached like-counter transition; a failed
	// lookup only costs counter accuracy, never the swipe itself.
	prior, _ := s.swipes.GetSwipeEdge(ctx, swiperID, targetID)

	if err := s.swipes.UpsertSwipeEdge(ctx, swiperID, targetID, action); err != nil {
		s.appCtx.Logger.Error("swipe write failed", "swiper", swiperID, "target", targetID, "err", err)
		return nil, svcErr.Map(err)
	}
	metrics.SwipesTotal.WithLabelValues(action).Inc()

	s.adjustLikeCount(ctx, targetID, prior, action)

	result := &SwipeResult{Accepted: true, Action: action}
	if action != db.ActionLike {
		return result, nil
	}

	// check if target also liked swiper → mutual
	reciprocal, err := s.swipes.GetSwipeEdge(ctx, targetID, swiperID)
	if err != nil {
		s.appCtx.Logger.Warn("reciprocity check failed, match deferred", "swiper", swiperID, "target", targetID, "err", err)
		return result, nil
	}
	if reciprocal == nil || reciprocal.Action != db.ActionLike {
		return result, nil
	}

	created, match, err := s.matches.CreateMatchIfAbsent(ctx, swiperID, targetID)
	if err != nil {
		// Soft failure: the like is already durable and independently
		// valid, so it is not rolled back.
		s.appCtx.Logger.Error("match creation failed after reciprocal like", "swiper", swiperID, "target", targetID, "err", err)
		metrics.MatchCreateFailuresTotal.Inc()
		return result, nil
	}

	result.IsMatch = true
	result.MatchID = match.MatchID
	if created {
		metrics.MatchesCreatedTotal.Inc()
		s.appCtx.Logger.Info("mutual match created", "match_id", match.MatchID, "user_a", match.UserAID, "user_b", match.UserBID)
	}
	return result, nil
}

// adjustLikeCount keeps the cached likes-received counter roughly in
// sync. Best effort: the DB count is authoritative on cache miss.
func (s *Service) adjustLikeCount(ctx context.Context, targetID uint64, prior *db.Swipe, action string) {
	key := s.appCtx.RedisCache.KeyForLikeCount(targetID)
	switch {
	case action == db.ActionLike && (prior == nil || prior.Action != db.ActionLike):
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)
	case action == db.ActionSkip && prior != nil && prior.Action == db.ActionLike:
		_, _ = s.appCtx.RedisCache.Decr(ctx, key)
	default:
		return
	}
	_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err() // refresh TTL
}

// Liker is one entry of a likes-received listing.
type Liker struct {
	UserID      uint64 `json:"userId"`
	LikedAtUnix int64  `json:"likedAtUnix"`
}

// LikersResponse is a cursor-paginated likes-received listing.
type LikersResponse struct {
	Likers              []Liker `json:"likers"`
	NextPaginationToken *string `json:"nextPaginationToken,omitempty"`
}

// ListLikersOf returns users who liked the given user, newest first,
// excluding likers the user has skipped.
func (s *Service) ListLikersOf(ctx context.Context, userID uint64, paginationToken *string) (*LikersResponse, error) {
	s.appCtx.Logger.Debug("ListLikersOf called", "user", userID)

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("user not found")
		}
		return nil, svcErr.Map(err)
	}

	swipes, nextToken, err := s.swipes.GetLikers(ctx, userID, paginationToken, likersPageSize)
	if err != nil {
		s.appCtx.Logger.Error("GetLikers failed", "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &LikersResponse{Likers: []Liker{}}
	for _, sw := range swipes {
		resp.Likers = append(resp.Likers, Liker{
			UserID:      sw.SwiperID,
			LikedAtUnix: sw.UpdatedAt.UnixMilli(),
		})
	}
	resp.NextPaginationToken = nextToken
	return resp, nil
}

// CountLikersOf returns how many users liked the given user.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:userID).
//  2. If cache miss or parse error, falls back to DB.
//  3. On DB fetch, updates Redis with a 1h TTL.
func (s *Service) CountLikersOf(ctx context.Context, userID uint64) (uint64, error) {
	s.appCtx.Logger.Debug("CountLikersOf called", "user", userID)

	key := s.appCtx.RedisCache.KeyForLikeCount(userID)

	// try cache first
	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		if n, err := strconv.ParseUint(cached, 10, 64); err == nil {
			// refresh TTL since this user is active
			_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()
			return n, nil
		}
	}

	// fallback: DB
	count, err := s.swipes.CountLikers(ctx, userID)
	if err != nil {
		return 0, svcErr.Map(err)
	}

	// set + TTL refresh
	_ = s.appCtx.RedisCache.Set(ctx, key, strconv.FormatInt(count, 10), time.Hour)

	return uint64(count), nil
}

// MatchSummary is one match as seen by one of its participants.
type MatchSummary struct {
	MatchID       string `json:"matchId"`
	UserID        uint64 `json:"userId"` // the other participant
	MatchedAtUnix int64  `json:"matchedAtUnix"`
}

// ListMatchesOf returns the user's matches, newest first. The engine
// only reads match records; chat systems own their consumption.
func (s *Service) ListMatchesOf(ctx context.Context, userID uint64) ([]MatchSummary, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("user not found")
		}
		return nil, svcErr.Map(err)
	}

	matches, err := s.matches.ListMatches(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		other := m.UserAID
		if other == userID {
			other = m.UserBID
		}
		summaries = append(summaries, MatchSummary{
			MatchID:       m.MatchID,
			UserID:        other,
			MatchedAtUnix: m.MatchedAt.UnixMilli(),
		})
	}
	return summaries, nil
}
