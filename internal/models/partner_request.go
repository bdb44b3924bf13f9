package models

import "time"

// RequestStatus defines the state of a partner request between two users.
type RequestStatus string

const (
	// StatusPending means the request is waiting for the recipient's decision.
	StatusPending RequestStatus = "pending"

	// StatusAccepted means the recipient accepted and the users are now partners.
	StatusAccepted RequestStatus = "accepted"

	// StatusRejected means the recipient declined. Rejected requests are kept
	// as history and a new request between the pair is allowed afterwards.
	StatusRejected RequestStatus = "rejected"
)

// PartnerRequest represents a proposal to link two users as partners.
// Only the recipient may resolve it; resolved requests are never deleted.
type PartnerRequest struct {
	ID          uint          `gorm:"primaryKey"`
	RequesterID uint          `gorm:"not null;index"`
	RecipientID uint          `gorm:"not null;index"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Requester User `gorm:"foreignKey:RequesterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
