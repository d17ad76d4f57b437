package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campusmatch/engine/internal/db"
	"github.com/campusmatch/engine/internal/utils/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeRepository provides data access methods for directed swipe
// edges between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// GetSwipeEdge returns the edge swiper → target, or nil when the
// swiper has never acted on the target.
func (r *SwipeRepository) GetSwipeEdge(ctx context.Context, swiperID, targetID uint64) (*db.Swipe, error) {
	var swipe db.Swipe
	err := r.db.WithContext(ctx).
		Where("swiper_id = ? AND target_id = ?", swiperID, targetID).
		First(&swipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

// UpsertSwipeEdge inserts or overwrites the edge swiper → target.
//
// Behavior:
//   - If (swiper_id, target_id) exists → the row is updated with the
//     new action and timestamp.
//   - If it doesn’t exist → a new row is inserted.
//   - Composite PK ensures overwrite guarantee: repeat swipes never
//     create duplicate edges.
//
// Example:
//
//	repo.UpsertSwipeEdge(ctx, 1, 2, db.ActionLike) // user 1 liked user 2
func (r *SwipeRepository) UpsertSwipeEdge(ctx context.Context, swiperID, targetID uint64, action string) error {
	swipe := db.Swipe{
		SwiperID: swiperID,
		TargetID: targetID,
		Action:   action,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
		}).
		Create(&swipe).Error
}

// SwipedTargetIDs returns every target the swiper has acted on,
// regardless of action. Used as the feed exclusion set: any prior
// interaction removes a candidate.
func (r *SwipeRepository) SwipedTargetIDs(ctx context.Context, swiperID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetLikers returns all users who liked the given target.
//
// Behavior:
//   - Only edges where target_id = X and action = like are returned.
//   - Excludes likers the target explicitly skipped.
//   - Ordered by updated_at DESC, swiper_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.GetLikers(ctx, 42, nil, 20) // first 20 people who liked user 42
func (r *SwipeRepository) GetLikers(
	ctx context.Context,
	targetID uint64,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	var swipes []db.Swipe

	// decode cursor if provided
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.action = ?", targetID, db.ActionLike).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.swiper_id = ?
				  AND s2.target_id = s.swiper_id
				  AND s2.action = ?
			)`, targetID, db.ActionSkip).
		Order("s.updated_at DESC, s.swiper_id DESC").
		Limit(limit + 1)

	// apply cursor
	if cursor.SwiperID > 0 && cursor.UpdatedUnix > 0 {
		ts := time.UnixMilli(cursor.UpdatedUnix)
		query = query.Where(
			"(s.updated_at < ? OR (s.updated_at = ? AND s.swiper_id < ?))",
			ts, ts, cursor.SwiperID,
		)
	}

	if err := query.Find(&swipes).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(swipes) > limit {
		last := swipes[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			SwiperID:    last.SwiperID,
			UpdatedUnix: last.UpdatedAt.UnixMilli(),
		})
		nextToken = &token
		swipes = swipes[:limit]
	}

	return swipes, nextToken, nil
}

// CountLikers returns how many users liked the given target.
//
// Behavior:
//   - Counts only edges where target_id = X and action = like.
//   - Excludes likers the target explicitly skipped.
//   - Used in conjunction with the Redis counter (DB is fallback).
func (r *SwipeRepository) CountLikers(ctx context.Context, targetID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.action = ?", targetID, db.ActionLike).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.swiper_id = ?
				  AND s2.target_id = s.swiper_id
				  AND s2.action = ?
			)`, targetID, db.ActionSkip).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
