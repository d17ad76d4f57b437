package repository

import (
	"context"

	"github.com/campusmatch/engine/internal/db"

	"gorm.io/gorm"
)

// UserRepository provides read access to user attribute records. The
// engine never writes users; account lifecycle lives elsewhere.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetUser fetches a single user by id.
// Returns gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) GetUser(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListEligibleUsers performs the bulk read behind the candidate pool.
//
// Behavior:
//   - Never returns the requester or restricted accounts.
//   - Applies gender/school/program equality filters when set.
//   - Excludes the already-swiped target ids.
//   - Age filtering is NOT done here; the pool builder applies it by
//     birth-date comparison after the fetch, which is why callers
//     over-fetch.
func (r *UserRepository) ListEligibleUsers(ctx context.Context, c EligibleCriteria) ([]db.User, error) {
	query := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id <> ?", c.ExcludeID).
		Where("is_restricted = ?", false)

	if c.Gender != "" {
		query = query.Where("gender = ?", c.Gender)
	}
	if c.School != "" {
		query = query.Where("school = ?", c.School)
	}
	if c.Program != "" {
		query = query.Where("program = ?", c.Program)
	}
	if len(c.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", c.ExcludeIDs)
	}
	if c.Limit > 0 {
		query = query.Limit(c.Limit)
	}

	var users []db.User
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
