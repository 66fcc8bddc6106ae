package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Email        string `gorm:"size:254;unique;not null"`
	Username     string `gorm:"size:150;unique;not null"`
	FirstName    string `gorm:"size:150;not null"`
	LastName     string `gorm:"size:150;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID"`
}
