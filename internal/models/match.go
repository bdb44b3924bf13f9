package models

import "time"

// Match records that two users both liked the same movie. Rows are created
// exactly once when the second of two partners likes a shared movie, and are
// never updated or deleted afterwards, even if either user later changes
// their swipe.
//
// The pair is stored normalized (User1ID < User2ID) so the unique index on
// (user1_id, user2_id, media_id) enforces at most one match per unordered
// pair and movie.
type Match struct {
	ID        uint `gorm:"primaryKey"`
	MediaID   uint `gorm:"not null;uniqueIndex:idx_matches_pair_media"`
	User1ID   uint `gorm:"not null;uniqueIndex:idx_matches_pair_media"`
	User2ID   uint `gorm:"not null;uniqueIndex:idx_matches_pair_media"`
	CreatedAt time.Time

	Media Movie `gorm:"foreignKey:MediaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User1 User  `gorm:"foreignKey:User1ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User2 User  `gorm:"foreignKey:User2ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NormalizePair orders two user IDs so the smaller comes first. Match rows
// always store the pair in this order.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
