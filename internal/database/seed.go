package database

import (
	"fmt"
	"log"

	"reelmatch/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedMovies populates the movie catalog. Existing titles are left untouched
// so the command is safe to re-run.
func SeedMovies(db *gorm.DB) error {
	movies := []models.Movie{
		{Title: "The Grand Budapest Hotel", PosterURL: "https://image.tmdb.org/t/p/w500/eWdyYQreja6JGCzqHWXpWHDrrPo.jpg", Genre: "Comedy"},
		{Title: "Parasite", PosterURL: "https://image.tmdb.org/t/p/w500/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg", Genre: "Thriller"},
		{Title: "Inception", PosterURL: "https://image.tmdb.org/t/p/w500/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg", Genre: "Sci-Fi"},
		{Title: "La La Land", PosterURL: "https://image.tmdb.org/t/p/w500/uDO8zWDhfWwoFdKS4fzkUJt0Rf0.jpg", Genre: "Romance"},
		{Title: "Mad Max: Fury Road", PosterURL: "https://image.tmdb.org/t/p/w500/hA2ple9q4qnwxp3hKVNhroipsir.jpg", Genre: "Action"},
		{Title: "Spirited Away", PosterURL: "https://image.tmdb.org/t/p/w500/39wmItIWsg5sZMyRUHLkWBcuVCM.jpg", Genre: "Animation"},
		{Title: "Knives Out", PosterURL: "https://image.tmdb.org/t/p/w500/pThyQovXQrw2m0s9x82twj48Jq4.jpg", Genre: "Mystery"},
		{Title: "The Shining", PosterURL: "https://image.tmdb.org/t/p/w500/xazWoLealQwEgqZ89MLZklLZD3k.jpg", Genre: "Horror"},
		{Title: "Before Sunrise", PosterURL: "https://image.tmdb.org/t/p/w500/hYbMtGvhb0mWhGClYUhqDN3DwGB.jpg", Genre: "Romance"},
		{Title: "Whiplash", PosterURL: "https://image.tmdb.org/t/p/w500/7fn624j5lj3xTme2SgiLCeuedmO.jpg", Genre: "Drama"},
	}

	for _, m := range movies {
		var existing models.Movie
		err := db.Where("title = ?", m.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check movie %q: %w", m.Title, err)
		}
		if err := db.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to seed movie %q: %w", m.Title, err)
		}
	}

	log.Printf("Seeded movie catalog (%d titles).", len(movies))
	return nil
}

// SeedDemoData creates two linked demo accounts and a handful of swipes so a
// fresh environment has something to show. Password for both is "password123".
func SeedDemoData(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	alice := models.User{Email: "alice@example.com", PasswordHash: string(hash), DisplayName: "Alice"}
	bob := models.User{Email: "bob@example.com", PasswordHash: string(hash), DisplayName: "Bob"}

	for _, u := range []*models.User{&alice, &bob} {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			*u = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	// Link the demo pair both ways.
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", alice.ID).Update("partner_id", bob.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", bob.ID).Update("partner_id", alice.ID).Error
	}); err != nil {
		return fmt.Errorf("failed to link demo users: %w", err)
	}

	var movies []models.Movie
	if err := db.Order("id").Limit(4).Find(&movies).Error; err != nil {
		return err
	}

	for i, m := range movies {
		swipe := models.Swipe{UserID: alice.ID, MediaID: m.ID, Liked: i%2 == 0}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).Create(&swipe).Error; err != nil {
			return fmt.Errorf("failed to seed swipe: %w", err)
		}
	}

	log.Println("Seeded demo users alice@example.com / bob@example.com.")
	return nil
}
