package models

import "gorm.io/gorm"

// User represents a user account.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:255"`
	AvatarURL    string `gorm:"size:512"`

	// A user can be linked to at most one partner at a time. When A's
	// PartnerID points to B, B's PartnerID must point back to A; the
	// linking handlers maintain this with a single transaction.
	PartnerID *uint `gorm:"index"`
	Partner   *User `gorm:"foreignKey:PartnerID"`
}
