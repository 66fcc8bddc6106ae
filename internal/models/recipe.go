package models

import "gorm.io/gorm"

// Recipe represents a published recipe.
type Recipe struct {
	gorm.Model
	Name        string `gorm:"size:200;not null"`
	Image       string `gorm:"not null"`
	Text        string `gorm:"not null"`
	CookingTime int    `gorm:"not null"`
	AuthorID    uint   `gorm:"not null;index"`

	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Tags        []*Tag             `gorm:"many2many:recipe_tags;"`
}

// RecipeIngredient links a recipe to an ingredient with an amount.
// A recipe cannot list the same ingredient twice. The row has no soft
// delete: removing a link must free the unique pair immediately.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `gorm:"not null"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
