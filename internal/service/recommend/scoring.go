package recommend

import (
	"strings"

	"github.com/campusmatch/engine/internal/db"
)

// Scoring constants. The order of application and these exact values
// are fixed policy; clients and seed data assume them.
const (
	baseScore        = 50
	verifiedBonus    = 20
	sameSchoolBonus  = 10
	sameProgramBonus = 5
	prefTokenPoints  = 2
	prefBonusCap     = 15
	reportPenalty    = 5
	minTokenLen      = 4 // preference tokens shorter than this are ignored
)

// Score computes the compatibility score of candidate for requester.
// Pure and deterministic: no I/O, no clock, no randomness.
//
// Accumulates from a base of 50:
//  1. +20 verified candidate
//  2. +10 same non-empty school
//  3. +5 same non-empty program
//  4. +2 per shared preference token (case-insensitive, length > 3),
//     capped at +15
//  5. -5 per report against the candidate
//
// The result is floored at 0.
func Score(requester, candidate *db.User) int {
	score := baseScore

	if candidate.VerificationState == db.VerificationVerified {
		score += verifiedBonus
	}
	if candidate.School != "" && candidate.School == requester.School {
		score += sameSchoolBonus
	}
	if candidate.Program != "" && candidate.Program == requester.Program {
		score += sameProgramBonus
	}

	score += preferenceBonus(requester.PreferenceText, candidate.PreferenceText)

	score -= reportPenalty * int(candidate.ReportCount)

	if score < 0 {
		score = 0
	}
	return score
}

// preferenceBonus counts candidate preference tokens also present in
// the requester's text. Each candidate occurrence counts, so repeated
// words in the candidate's text stack until the cap.
func preferenceBonus(requesterText, candidateText string) int {
	if requesterText == "" || candidateText == "" {
		return 0
	}

	requesterTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(requesterText)) {
		if len(tok) >= minTokenLen {
			requesterTokens[tok] = struct{}{}
		}
	}

	shared := 0
	for _, tok := range strings.Fields(strings.ToLower(candidateText)) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, ok := requesterTokens[tok]; ok {
			shared++
		}
	}

	bonus := shared * prefTokenPoints
	if bonus > prefBonusCap {
		bonus = prefBonusCap
	}
	return bonus
}
