package models

import "gorm.io/gorm"

// Tag represents a recipe tag (e.g., "breakfast", "dinner").
// Slug and color are unique across tags; color is a #RRGGBB hex code.
type Tag struct {
	gorm.Model
	Name  string `gorm:"size:200;not null"`
	Slug  string `gorm:"size:200;unique;not null"`
	Color string `gorm:"size:7;unique;not null"`
}
