package repository

import (
	"context"

	"github.com/campusmatch/engine/internal/db"
	svcErr "github.com/campusmatch/engine/internal/errors"
)

// DisabledSwipeStore is the null-object SwipeStore wired when the
// swipe table is not provisioned. Every method reports the store as
// unavailable; the feed treats that as an empty exclusion set while
// swipe writes surface the error to the caller.
type DisabledSwipeStore struct{}

// NewDisabledSwipeStore returns the null-object interaction store.
func NewDisabledSwipeStore() *DisabledSwipeStore {
	return &DisabledSwipeStore{}
}

func (s *DisabledSwipeStore) GetSwipeEdge(ctx context.Context, swiperID, targetID uint64) (*db.Swipe, error) {
	return nil, svcErr.ErrSwipeStoreUnavailable
}

func (s *DisabledSwipeStore) UpsertSwipeEdge(ctx context.Context, swiperID, targetID uint64, action string) error {
	return svcErr.ErrSwipeStoreUnavailable
}

func (s *DisabledSwipeStore) SwipedTargetIDs(ctx context.Context, swiperID uint64) ([]uint64, error) {
	return nil, svcErr.ErrSwipeStoreUnavailable
}

func (s *DisabledSwipeStore) GetLikers(ctx context.Context, targetID uint64, paginationToken *string, limit int) ([]db.Swipe, *string, error) {
	return nil, nil, svcErr.ErrSwipeStoreUnavailable
}

func (s *DisabledSwipeStore) CountLikers(ctx context.Context, targetID uint64) (int64, error) {
	return 0, svcErr.ErrSwipeStoreUnavailable
}
