package recommend_test

import (
	"testing"

	"github.com/campusmatch/engine/internal/db"
	"github.com/campusmatch/engine/internal/service/recommend"

	"github.com/stretchr/testify/assert"
)

func baseRequester() *db.User {
	return &db.User{
		ID:      1,
		Gender:  "male",
		School:  "Northgate University",
		Program: "Computer Science",
	}
}

func TestScoreBase(t *testing.T) {
	// nothing in common, unverified, no reports → base 50
	score := recommend.Score(baseRequester(), &db.User{ID: 2, Gender: "female"})
	assert.Equal(t, 50, score)
}

func TestScoreVerifiedBonus(t *testing.T) {
	cand := &db.User{ID: 2, VerificationState: db.VerificationVerified}
	assert.Equal(t, 70, recommend.Score(baseRequester(), cand))
}

func TestScoreSchoolAndProgramBonuses(t *testing.T) {
	req := baseRequester()

	sameSchool := &db.User{ID: 2, School: req.School}
	assert.Equal(t, 60, recommend.Score(req, sameSchool))

	sameProgram := &db.User{ID: 2, Program: req.Program}
	assert.Equal(t, 55, recommend.Score(req, sameProgram))

	both := &db.User{ID: 2, School: req.School, Program: req.Program}
	assert.Equal(t, 65, recommend.Score(req, both))

	// empty school on both sides earns nothing
	req.School = ""
	emptySchool := &db.User{ID: 2, School: ""}
	assert.Equal(t, 50, recommend.Score(req, emptySchool))
}

func TestScorePreferenceBonus(t *testing.T) {
	req := &db.User{ID: 1, PreferenceText: "Hiking photography coffee and travel"}

	// "hiking" and "photography" shared, "and" too short → +4
	cand := &db.User{ID: 2, PreferenceText: "photography hiking and food"}
	assert.Equal(t, 54, recommend.Score(req, cand))

	// candidate duplicates stack until the cap
	spam := &db.User{ID: 3, PreferenceText: "hiking hiking hiking hiking hiking hiking hiking hiking hiking hiking"}
	assert.Equal(t, 65, recommend.Score(req, spam))

	// one empty side disables the bonus
	empty := &db.User{ID: 4, PreferenceText: ""}
	assert.Equal(t, 50, recommend.Score(req, empty))
}

func TestScoreReportPenaltyAndFloor(t *testing.T) {
	req := baseRequester()

	// otherwise base 50 with 6 reports → 50 - 30 = 20
	reported := &db.User{ID: 2, ReportCount: 6}
	assert.Equal(t, 20, recommend.Score(req, reported))

	// heavy reports floor at zero, never negative
	heavy := &db.User{ID: 3, ReportCount: 30}
	assert.Equal(t, 0, recommend.Score(req, heavy))
}

func TestScoreDeterministic(t *testing.T) {
	req := baseRequester()
	cand := &db.User{
		ID:                2,
		School:            req.School,
		Program:           req.Program,
		VerificationState: db.VerificationVerified,
		PreferenceText:    "books films hiking",
		ReportCount:       1,
	}
	req.PreferenceText = "hiking books"

	first := recommend.Score(req, cand)
	second := recommend.Score(req, cand)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
}
