package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedSchools = []string{"Northgate University", "Riverside College", "Hillcrest Institute"}

var seedPrograms = []string{"Computer Science", "Biology", "Economics", "Design"}

var seedBios = []string{
	"love hiking photography and quiet coffee mornings",
	"always down for football movies and late night food runs",
	"bookworm into painting museums and indie music",
	"gym climbing travel and trying every campus food stall",
	"music festivals photography and long walks with good talks",
	"films cooking board games and weekend road trips",
}

// SeedTestData resets the database and populates it with demo users,
// swipes, and the matches implied by mutual likes.
//
// Behavior:
//  1. Clears existing data in `users`, `swipes`, and `matches` tables.
//  2. Creates 20 users (10 male, 10 female) across a few schools and
//     programs, with hashed passwords and preference bios.
//  3. Generates ~200 swipes with ~70% likes, and every 3rd ensures a
//     mutual like plus its match record.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"matches", "swipes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Reset auto-increment sequences (only for MySQL)
	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	log.Println("Cleared existing data")

	// --- Seed Users (10 male, 10 female) ---
	now := time.Now().UTC()
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		verification := VerificationVerified
		if i%4 == 0 {
			verification = VerificationPending
		}

		user := User{
			Name:              fmt.Sprintf("student%d", i),
			Email:             fmt.Sprintf("student%d@example.edu", i),
			PasswordHash:      string(hash),
			Gender:            gender,
			BirthDate:         now.AddDate(-(18 + r.Intn(10)), -r.Intn(12), -r.Intn(28)),
			School:            seedSchools[i%len(seedSchools)],
			Program:           seedPrograms[i%len(seedPrograms)],
			PreferenceText:    seedBios[i%len(seedBios)],
			VerificationState: verification,
			IsRestricted:      i == 20, // one restricted account, excluded from every feed
			ReportCount:       uint(r.Intn(3)),
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// --- Seed Swipes (~200) ---
	counter := 0
	for swiperID := 1; swiperID <= 20; swiperID++ {
		for j := 0; j < 12; j++ { // each user swipes on ~12 others
			targetID := uint64(r.Intn(20) + 1)
			if uint64(swiperID) == targetID {
				continue
			}

			var swiper, target User
			if err := db.First(&swiper, swiperID).Error; err != nil {
				continue
			}
			if err := db.First(&target, targetID).Error; err != nil {
				continue
			}
			if swiper.Gender == target.Gender {
				continue
			}

			// like probability 70%
			action := ActionSkip
			if r.Intn(100) < 70 {
				action = ActionLike
			}

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				action = ActionLike
				recip := Swipe{
					SwiperID: targetID,
					TargetID: uint64(swiperID),
					Action:   ActionLike,
				}
				db.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "target_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
				}).Create(&recip)

				a, b := uint64(swiperID), targetID
				if a > b {
					a, b = b, a
				}
				match := Match{UserAID: a, UserBID: b, MatchID: uuid.NewString()}
				db.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
					DoNothing: true,
				}).Create(&match)
			}

			swipe := Swipe{
				SwiperID: uint64(swiperID),
				TargetID: targetID,
				Action:   action,
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "target_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
			}).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			counter++
		}
	}

	return nil
}
