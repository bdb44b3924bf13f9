package models

import "gorm.io/gorm"

// Movie represents one swipeable catalog entry. The catalog is read-only at
// runtime; rows are created by the seed command or by operators.
type Movie struct {
	gorm.Model
	Title     string `gorm:"size:255;not null"`
	PosterURL string `gorm:"size:512"`
	Genre     string `gorm:"size:100"`
}
