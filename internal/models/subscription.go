package models

import "time"

// Subscription represents a follower-to-author relation.
// The primary key is a composite of (UserID, AuthorID) to ensure uniqueness.
// Self-subscriptions (UserID == AuthorID) are rejected before insert.
type Subscription struct {
	UserID    uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
