package repository

import (
	"context"

	"github.com/campusmatch/engine/internal/db"
)

// EligibleCriteria narrows the bulk user read performed by the pool
// builder. Zero values mean "no constraint".
type EligibleCriteria struct {
	ExcludeID  uint64   // requester, never a candidate for themselves
	Gender     string   // orientation filter; empty = pass-through
	School     string   // exact school match when set
	Program    string   // exact program match when set
	ExcludeIDs []uint64 // already-swiped targets
	Limit      int
}

// UserDirectory is the read-only accessor for user attribute records.
type UserDirectory interface {
	GetUser(ctx context.Context, id uint64) (*db.User, error)
	ListEligibleUsers(ctx context.Context, c EligibleCriteria) ([]db.User, error)
}

// SwipeStore is the accessor for directed swipe edges. The swipe
// feature is optional; a disabled deployment satisfies this interface
// with a null object whose methods return ErrSwipeStoreUnavailable.
type SwipeStore interface {
	GetSwipeEdge(ctx context.Context, swiperID, targetID uint64) (*db.Swipe, error)
	UpsertSwipeEdge(ctx context.Context, swiperID, targetID uint64, action string) error
	SwipedTargetIDs(ctx context.Context, swiperID uint64) ([]uint64, error)
	GetLikers(ctx context.Context, targetID uint64, paginationToken *string, limit int) ([]db.Swipe, *string, error)
	CountLikers(ctx context.Context, targetID uint64) (int64, error)
}

// MatchStore is the accessor for mutual match records.
type MatchStore interface {
	GetMatch(ctx context.Context, a, b uint64) (*db.Match, error)
	// CreateMatchIfAbsent atomically inserts the match for the unordered
	// pair unless one already exists. Exactly one of two concurrent
	// callers observes created=true; both receive the same record.
	CreateMatchIfAbsent(ctx context.Context, a, b uint64) (bool, *db.Match, error)
	ListMatches(ctx context.Context, userID uint64) ([]db.Match, error)
}
