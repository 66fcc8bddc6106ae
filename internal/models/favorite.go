package models

import "time"

// Favorite is a user-recipe bookmark. Unique per (user, recipe) pair;
// the unique index arbitrates concurrent duplicate adds. No soft delete,
// a removed favorite must be addable again.
type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
