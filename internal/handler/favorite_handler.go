package handler

import (
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recipeRelation abstracts the two (user, recipe) pair tables so the
// add/remove flows stay identical for favorites and the shopping cart.
type recipeRelation struct {
	model    func() interface{}
	create   func(db *gorm.DB, userID, recipeID uint) error
	addedMsg string
	goneMsg  string
}

var favoriteRelation = recipeRelation{
	model: func() interface{} { return &models.Favorite{} },
	create: func(db *gorm.DB, userID, recipeID uint) error {
		return db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	},
	addedMsg: "This recipe is already in favorites!",
	goneMsg:  "This recipe is already removed from favorites!",
}

var cartRelation = recipeRelation{
	model: func() interface{} { return &models.ShoppingCart{} },
	create: func(db *gorm.DB, userID, recipeID uint) error {
		return db.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	},
	addedMsg: "This recipe is already in the shopping cart!",
	goneMsg:  "This recipe is already removed from the shopping cart!",
}

// addRecipeTo creates a (user, recipe) pair row and returns the recipe
// summary. A non-numeric recipe ID is a not-found, before any lookup.
func addRecipeTo(c *gin.Context, relation recipeRelation) {
	viewerID, _ := c.Get("userID")

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var count int64
	database.DB.Model(relation.model()).
		Where("user_id = ? AND recipe_id = ?", viewerID, uint(recipeID)).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": relation.addedMsg})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, uint(recipeID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := relation.create(database.DB, viewerID.(uint), recipe.ID); err != nil {
		// The unique pair index turns a lost race into the same conflict.
		c.JSON(http.StatusBadRequest, gin.H{"errors": relation.addedMsg})
		return
	}

	c.JSON(http.StatusCreated, newRecipeSummary(recipe))
}

// removeRecipeFrom deletes a (user, recipe) pair row.
func removeRecipeFrom(c *gin.Context, relation recipeRelation) {
	viewerID, _ := c.Get("userID")

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	result := database.DB.
		Where("user_id = ? AND recipe_id = ?", viewerID, uint(recipeID)).Delete(relation.model())
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": relation.goneMsg})
		return
	}

	c.Status(http.StatusNoContent)
}

// FavoriteRecipe godoc
// @Summary      Add a recipe to favorites
// @Description  Bookmarks the recipe for the current user.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Recipe ID"
// @Success      201  {object}  RecipeSummary
// @Failure      400  {object}  ErrorResponse "Already in favorites"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id}/favorite [post]
func FavoriteRecipe(c *gin.Context) {
	addRecipeTo(c, favoriteRelation)
}

// UnfavoriteRecipe godoc
// @Summary      Remove a recipe from favorites
// @Description  Removes the current user's bookmark for the recipe.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse "Already removed"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id}/favorite [delete]
func UnfavoriteRecipe(c *gin.Context) {
	removeRecipeFrom(c, favoriteRelation)
}

// AddToShoppingCart godoc
// @Summary      Add a recipe to the shopping cart
// @Description  Adds the recipe to the current user's shopping cart.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Recipe ID"
// @Success      201  {object}  RecipeSummary
// @Failure      400  {object}  ErrorResponse "Already in the cart"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id}/shopping_cart [post]
func AddToShoppingCart(c *gin.Context) {
	addRecipeTo(c, cartRelation)
}

// RemoveFromShoppingCart godoc
// @Summary      Remove a recipe from the shopping cart
// @Description  Removes the recipe from the current user's shopping cart.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse "Already removed"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id}/shopping_cart [delete]
func RemoveFromShoppingCart(c *gin.Context) {
	removeRecipeFrom(c, cartRelation)
}
