package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/campusmatch/engine/internal/db"
	"github.com/campusmatch/engine/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&db.Swipe{}, &db.Match{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestUpsertSwipeEdgeOverwrites(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// insert like
	err := repo.UpsertSwipeEdge(ctx, 1, 2, db.ActionLike)
	assert.NoError(t, err)

	// overwrite with skip
	err = repo.UpsertSwipeEdge(ctx, 1, 2, db.ActionSkip)
	assert.NoError(t, err)

	// still a single row, now a skip
	var count int64
	require.NoError(t, dbase.Model(&db.Swipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var s db.Swipe
	_ = dbase.First(&s).Error
	assert.Equal(t, db.ActionSkip, s.Action)
}

func TestGetSwipeEdge(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	edge, err := repo.GetSwipeEdge(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Nil(t, edge)

	require.NoError(t, repo.UpsertSwipeEdge(ctx, 1, 2, db.ActionLike))

	edge, err = repo.GetSwipeEdge(ctx, 1, 2)
	assert.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, db.ActionLike, edge.Action)

	// the reverse direction is a different edge
	edge, err = repo.GetSwipeEdge(ctx, 2, 1)
	assert.NoError(t, err)
	assert.Nil(t, edge)
}

func TestSwipedTargetIDs(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// both likes and skips count as prior interactions
	_ = repo.UpsertSwipeEdge(ctx, 1, 2, db.ActionLike)
	_ = repo.UpsertSwipeEdge(ctx, 1, 3, db.ActionSkip)
	_ = repo.UpsertSwipeEdge(ctx, 2, 1, db.ActionLike)

	ids, err := repo.SwipedTargetIDs(ctx, 1)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids)
}

func TestGetLikersExcludesSkipped(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// users 1,2 liked user 99
	_ = repo.UpsertSwipeEdge(ctx, 1, 99, db.ActionLike)
	_ = repo.UpsertSwipeEdge(ctx, 2, 99, db.ActionLike)
	// user 99 skipped user 2 → exclude
	_ = repo.UpsertSwipeEdge(ctx, 99, 2, db.ActionSkip)

	swipes, _, err := repo.GetLikers(ctx, 99, nil, 10)
	assert.NoError(t, err)
	assert.Len(t, swipes, 1)
	assert.Equal(t, uint64(1), swipes[0].SwiperID)
}

func TestCountLikers(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	_ = repo.UpsertSwipeEdge(ctx, 1, 99, db.ActionLike)
	_ = repo.UpsertSwipeEdge(ctx, 2, 99, db.ActionLike)
	_ = repo.UpsertSwipeEdge(ctx, 3, 99, db.ActionSkip)
	_ = repo.UpsertSwipeEdge(ctx, 99, 2, db.ActionSkip)

	count, err := repo.CountLikers(ctx, 99)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
