package repository

import (
	"context"
	"errors"

	"github.com/campusmatch/engine/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository provides data access methods for mutual match
// records. Matches are created once and never mutated here.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CanonicalPair orders two user ids so the smaller one is first.
// Match rows are always stored in canonical order, which is what lets
// the composite primary key enforce pair uniqueness.
func CanonicalPair(x, y uint64) (uint64, uint64) {
	if x > y {
		return y, x
	}
	return x, y
}

// GetMatch returns the match for the unordered pair, or nil when the
// pair has never matched.
func (r *MatchRepository) GetMatch(ctx context.Context, a, b uint64) (*db.Match, error) {
	a, b = CanonicalPair(a, b)
	var match db.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateMatchIfAbsent inserts the match for the unordered pair unless
// one already exists.
//
// Behavior:
//   - Insert uses ON CONFLICT DO NOTHING on the canonical pair key, so
//     two concurrent reciprocal-like detections race safely: the
//     database admits exactly one row.
//   - The loser of the race reads back the winner's record and returns
//     created=false.
//
// Example:
//
//	created, match, err := repo.CreateMatchIfAbsent(ctx, 2, 1)
func (r *MatchRepository) CreateMatchIfAbsent(ctx context.Context, x, y uint64) (bool, *db.Match, error) {
	a, b := CanonicalPair(x, y)
	match := db.Match{
		UserAID: a,
		UserBID: b,
		MatchID: uuid.NewString(),
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return false, nil, res.Error
	}
	if res.RowsAffected > 0 {
		return true, &match, nil
	}

	// lost the race (or the pair matched earlier); fetch the existing row
	existing, err := r.GetMatch(ctx, a, b)
	if err != nil {
		return false, nil, err
	}
	if existing == nil {
		// insert reported a conflict but no row is visible; surface it
		return false, nil, gorm.ErrRecordNotFound
	}
	return false, existing, nil
}

// ListMatches returns every match the user participates in, newest
// first. Read-only surface for downstream chat/notification systems.
func (r *MatchRepository) ListMatches(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("matched_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
