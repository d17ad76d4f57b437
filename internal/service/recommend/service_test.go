package recommend_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusmatch/engine/internal/app"
	"github.com/campusmatch/engine/internal/config"
	"github.com/campusmatch/engine/internal/db"
	svcErr "github.com/campusmatch/engine/internal/errors"
	"github.com/campusmatch/engine/internal/repository"
	"github.com/campusmatch/engine/internal/service/recommend"
)

//
// Test helpers
//

func birth(age int) time.Time {
	return time.Now().UTC().AddDate(-age, 0, -40)
}

// seedFeedUsers inserts a deterministic pool around requester 1
// (male, school "X", program "Econ", age 22, no prior swipes).
//
// Expected scores against requester 1:
//   - user 2: verified + same school + same program → 85
//   - user 3: verified → 70
//   - user 4: same school, one report → 55
//   - user 5: male → filtered by orientation
//   - user 6: restricted → always filtered
func seedFeedUsers(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	users := []db.User{
		{ID: 1, Name: "req", Email: "r@test.edu", PasswordHash: "x", Gender: "male", BirthDate: birth(22), School: "X", Program: "Econ"},
		{ID: 2, Name: "a", Email: "a@test.edu", PasswordHash: "x", Gender: "female", BirthDate: birth(21), School: "X", Program: "Econ", VerificationState: db.VerificationVerified},
		{ID: 3, Name: "b", Email: "b@test.edu", PasswordHash: "x", Gender: "female", BirthDate: birth(30), VerificationState: db.VerificationVerified},
		{ID: 4, Name: "c", Email: "c@test.edu", PasswordHash: "x", Gender: "female", BirthDate: birth(24), School: "X", ReportCount: 1},
		{ID: 5, Name: "d", Email: "d@test.edu", PasswordHash: "x", Gender: "male", BirthDate: birth(23), School: "X"},
		{ID: 6, Name: "e", Email: "e@test.edu", PasswordHash: "x", Gender: "female", BirthDate: birth(22), IsRestricted: true},
	}
	require.NoError(t, gdb.Create(&users).Error)
}

func setupFeed(t *testing.T) (*recommend.Service, *gorm.DB, repository.SwipeStore) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.User{}, &db.Swipe{}))
	seedFeedUsers(t, dbase)

	cfg := config.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests
	appCtx := app.New(dbase, nil, logger)

	swipes := repository.NewSwipeRepository(dbase)
	svc := recommend.NewService(appCtx, cfg, repository.NewUserRepository(dbase), swipes)
	return svc, dbase, swipes
}

//
// Tests
//

// TestBuildFeedRankedPage covers the ranked-page contract: three
// candidates scoring 85/70/55, page 1 of size 2 returns [85,70] with
// hasMore set.
func TestBuildFeedRankedPage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupFeed(t)

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, Page: 1, PageSize: 2})
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, uint64(2), resp.Candidates[0].ID)
	assert.Equal(t, 85, resp.Candidates[0].Score)
	assert.Equal(t, uint64(3), resp.Candidates[1].ID)
	assert.Equal(t, 70, resp.Candidates[1].Score)
	assert.Equal(t, 3, resp.Total)
	assert.True(t, resp.HasMore)
	assert.Empty(t, resp.Candidates[0].SharedInterests)
}

func TestBuildFeedPageBeyondTotal(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupFeed(t)

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, Page: 7, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
	assert.False(t, resp.HasMore)
}

func TestBuildFeedExcludesSwipedUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, swipes := setupFeed(t)

	// any prior edge excludes, whether like or skip
	require.NoError(t, swipes.UpsertSwipeEdge(ctx, 1, 2, db.ActionSkip))
	require.NoError(t, swipes.UpsertSwipeEdge(ctx, 1, 3, db.ActionLike))

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, uint64(4), resp.Candidates[0].ID)
}

func TestBuildFeedOrientationPassThrough(t *testing.T) {
	ctx := context.Background()
	svc, dbase, _ := setupFeed(t)

	// a requester outside the two-value mapping gets no orientation filter
	other := db.User{ID: 7, Name: "f", Email: "f@test.edu", PasswordHash: "x", Gender: "nonbinary", BirthDate: birth(22)}
	require.NoError(t, dbase.Create(&other).Error)

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 7})
	require.NoError(t, err)

	ids := make([]uint64, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		ids = append(ids, c.ID)
	}
	// everyone except self and the restricted user
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4, 5}, ids)
}

func TestBuildFeedAgeFilter(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupFeed(t)

	// user 3 is 30 and falls out of [18,25]
	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, MinAge: 18, MaxAge: 25})
	require.NoError(t, err)

	for _, c := range resp.Candidates {
		assert.NotEqual(t, uint64(3), c.ID)
	}
	assert.Equal(t, 2, resp.Total)
}

func TestBuildFeedSameSchoolFilter(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupFeed(t)

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, SameSchool: true})
	require.NoError(t, err)

	for _, c := range resp.Candidates {
		assert.Equal(t, "X", c.School)
	}
	assert.Equal(t, 2, resp.Total) // users 2 and 4
}

func TestBuildFeedInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupFeed(t)

	_, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, PageSize: 500})
	require.Error(t, err)
	// the rejection names the configured bound
	var httpErr *svcErr.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Message, "between 1 and 100")

	_, err = svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, Page: -1})
	assert.Error(t, err)

	_, err = svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1, MinAge: 30, MaxAge: 20})
	assert.Error(t, err)

	_, err = svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 404})
	assert.Error(t, err)
}

// TestBuildFeedDegradedStore serves the feed with an empty exclusion
// set when the interaction store is absent.
func TestBuildFeedDegradedStore(t *testing.T) {
	ctx := context.Background()
	_, dbase, _ := setupFeed(t)

	cfg := config.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(dbase, nil, logger)
	svc := recommend.NewService(appCtx, cfg, repository.NewUserRepository(dbase), repository.NewDisabledSwipeStore())

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

// stubSwipeStore lets the pool go stale on purpose: the exclusion read
// sees nothing while the page re-check still finds an edge.
type stubSwipeStore struct {
	repository.SwipeStore
	edge *db.Swipe
}

func (s *stubSwipeStore) SwipedTargetIDs(ctx context.Context, swiperID uint64) ([]uint64, error) {
	return nil, nil
}

func (s *stubSwipeStore) GetSwipeEdge(ctx context.Context, swiperID, targetID uint64) (*db.Swipe, error) {
	if s.edge != nil && s.edge.SwiperID == swiperID && s.edge.TargetID == targetID {
		return s.edge, nil
	}
	return nil, nil
}

func TestBuildFeedTagsStaleSwipes(t *testing.T) {
	ctx := context.Background()
	_, dbase, _ := setupFeed(t)

	cfg := config.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(dbase, nil, logger)
	stub := &stubSwipeStore{edge: &db.Swipe{SwiperID: 1, TargetID: 2, Action: db.ActionLike}}
	svc := recommend.NewService(appCtx, cfg, repository.NewUserRepository(dbase), stub)

	resp, err := svc.BuildFeed(ctx, recommend.FeedRequest{RequesterID: 1})
	require.NoError(t, err)

	var tagged *recommend.Candidate
	for i := range resp.Candidates {
		if resp.Candidates[i].ID == 2 {
			tagged = &resp.Candidates[i]
		}
	}
	require.NotNil(t, tagged)
	assert.True(t, tagged.IsLiked)
	assert.False(t, tagged.IsSkipped)
}
