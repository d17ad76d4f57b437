package recommend

import (
	"time"

	"github.com/campusmatch/engine/internal/db"
)

// Candidate is a user projected for display in a requester's feed.
type Candidate struct {
	ID                uint64   `json:"id"`
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	School            string   `json:"school"`
	Program           string   `json:"program"`
	VerificationState string   `json:"verificationState"`
	Score             int      `json:"score"`
	SharedInterests   []string `json:"sharedInterests"`
	IsLiked           bool     `json:"isLiked"`
	IsSkipped         bool     `json:"isSkipped"`
}

// newCandidate projects a user record into a feed candidate.
// SharedInterests stays empty: no interest-matching data source exists
// yet, so the field is a placeholder for clients, not a computation.
func newCandidate(requester, user *db.User, now time.Time) Candidate {
	return Candidate{
		ID:                user.ID,
		Name:              user.Name,
		Age:               ageAt(user.BirthDate, now),
		Gender:            user.Gender,
		School:            user.School,
		Program:           user.Program,
		VerificationState: user.VerificationState,
		Score:             Score(requester, user),
		SharedInterests:   []string{},
	}
}

// ageAt derives age from birth date, accounting for whether the
// birthday has occurred yet this year.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// withinAgeRange checks an inclusive [minAge, maxAge] band by
// birth-date bound comparison rather than an exact age field: the user
// is at least minAge when born on or before now-minAge years, and at
// most maxAge when born after now-(maxAge+1) years.
func withinAgeRange(birth time.Time, minAge, maxAge int, now time.Time) bool {
	latest := now.AddDate(-minAge, 0, 0)
	earliest := now.AddDate(-(maxAge + 1), 0, 0)
	return !birth.After(latest) && birth.After(earliest)
}
