package models

import "time"

// Swipe records one user's like/dislike for one movie.
//
// The composite unique index on (user_id, media_id) guarantees a single row
// per pair; repeat swipes are upserts that overwrite Liked and refresh
// UpdatedAt.
type Swipe struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_swipes_user_media"`
	MediaID   uint `gorm:"not null;uniqueIndex:idx_swipes_user_media"`
	Liked     bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Media Movie `gorm:"foreignKey:MediaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
