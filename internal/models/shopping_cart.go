package models

import "time"

// ShoppingCart marks a recipe whose ingredients go into the user's
// shopping list. Unique per (user, recipe) pair, no soft delete.
type ShoppingCart struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
