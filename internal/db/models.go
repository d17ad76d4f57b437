package db

import (
	"time"
)

// Verification states for a user profile.
const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
	VerificationRejected   = "rejected"
)

// Swipe actions.
const (
	ActionLike = "like"
	ActionSkip = "skip"
)

// User table. The engine reads user attributes; account lifecycle
// (registration, verification, moderation) is owned elsewhere.
// ReportCount is never decremented by this engine.
type User struct {
	ID                uint64 `gorm:"primaryKey;autoIncrement"`
	Name              string `gorm:"size:64;not null"`
	Email             string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash      string `gorm:"size:255;not null"`
	Gender            string `gorm:"size:16;not null;index:idx_gender_restricted,priority:1"`
	BirthDate         time.Time
	School            string    `gorm:"size:128"`
	Program           string    `gorm:"size:128"`
	PreferenceText    string    `gorm:"type:text"`
	VerificationState string    `gorm:"size:16;not null;default:unverified"`
	IsRestricted      bool      `gorm:"not null;default:false;index:idx_gender_restricted,priority:2"`
	ReportCount       uint      `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// Swipe represents a directed like/skip edge from swiper to target.
//
// Composite PK: (SwiperID, TargetID)
//   - Ensures a single row per ordered pair (overwrite guarantee).
//
// Indexes:
//   - idx_target_action_updated_swiper(target_id, action, updated_at DESC, swiper_id)
//     Optimizes "who liked me" lists with pagination.
//
// Fields:
//   - SwiperID: The user performing the swipe.
//   - TargetID: The user being liked/skipped.
//   - Action: "like" or "skip".
//   - CreatedAt: When the edge was first created.
//   - UpdatedAt: When the edge was last overwritten.
type Swipe struct {
	SwiperID  uint64    `gorm:"primaryKey;autoIncrement:false"`
	TargetID  uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_target_action_updated_swiper,priority:1"`
	Action    string    `gorm:"size:8;not null;index:idx_target_action_updated_swiper,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_target_action_updated_swiper,priority:3,sort:desc"`
}

// Match represents a mutual like between two users.
//
// Composite PK: (UserAID, UserBID) with UserAID < UserBID canonical
// ordering, so the database enforces at most one record per unordered
// pair. Insert-if-absent on this key is the atomic primitive that keeps
// concurrent reciprocal likes from creating duplicates.
//
// Rows are created once and never mutated or deleted by this engine;
// chat and notification systems consume them downstream.
type Match struct {
	UserAID   uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserBID   uint64    `gorm:"primaryKey;autoIncrement:false"`
	MatchID   string    `gorm:"size:36;uniqueIndex;not null"`
	MatchedAt time.Time `gorm:"autoCreateTime"`
}
