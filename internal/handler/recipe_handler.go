package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Bounds for ingredient amounts and cooking time, in line with the
// smallint columns they end up in.
const (
	minAmount = 1
	maxAmount = 32000
)

// region --- DTOs ---

// IngredientAmountInput references an ingredient with its amount.
type IngredientAmountInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput defines the structure for creating or updating a recipe.
type RecipeInput struct {
	Ingredients []IngredientAmountInput `json:"ingredients"`
	Tags        []uint                  `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
}

// RecipeIngredientResponse is an ingredient line within a recipe.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse defines the full recipe representation.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           ProfileResponse            `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeSummary is the short recipe representation returned from
// favorite/cart adds and inside subscription listings.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func newRecipeSummary(recipe models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// newRecipeResponse serializes a recipe as seen by the viewer. The recipe
// must be loaded with Author, Tags and Ingredients.Ingredient preloaded.
func newRecipeResponse(recipe models.Recipe, viewerID uint) RecipeResponse {
	tagResponses := make([]TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		if tag != nil {
			tagResponses = append(tagResponses, newTagResponse(*tag))
		}
	}

	ingredientResponses := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, link := range recipe.Ingredients {
		ingredientResponses = append(ingredientResponses, RecipeIngredientResponse{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}

	var isFavorited, isInCart bool
	if viewerID != 0 {
		var count int64
		database.DB.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).Count(&count)
		isFavorited = count > 0

		count = 0
		database.DB.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, recipe.ID).Count(&count)
		isInCart = count > 0
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tagResponses,
		Author:           buildProfileResponse(recipe.Author, viewerID),
		Ingredients:      ingredientResponses,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// endregion

// region --- Validation ---

// validateRecipeInput checks field-level rules and returns per-field messages.
func validateRecipeInput(input RecipeInput) map[string]string {
	errs := make(map[string]string)

	if input.Name == "" {
		errs["name"] = "Name is required!"
	}
	if input.Text == "" {
		errs["text"] = "Description is required!"
	}
	if input.Image == "" {
		errs["image"] = "Attach an image!"
	}
	if input.CookingTime < minAmount || input.CookingTime > maxAmount {
		errs["cooking_time"] = fmt.Sprintf("Cooking time must be between %d and %d minutes!", minAmount, maxAmount)
	}

	if len(input.Ingredients) == 0 {
		errs["ingredients"] = "Pick at least one ingredient!"
	} else {
		seen := make(map[uint]bool, len(input.Ingredients))
		for _, ingredient := range input.Ingredients {
			if seen[ingredient.ID] {
				errs["ingredients"] = "Ingredients must be unique!"
				break
			}
			seen[ingredient.ID] = true
			if ingredient.Amount < minAmount || ingredient.Amount > maxAmount {
				errs["ingredients"] = fmt.Sprintf("Ingredient amount must be between %d and %d!", minAmount, maxAmount)
				break
			}
		}
	}

	if len(input.Tags) == 0 {
		errs["tags"] = "Pick at least one tag!"
	} else {
		seen := make(map[uint]bool, len(input.Tags))
		for _, tagID := range input.Tags {
			if seen[tagID] {
				errs["tags"] = "Tags must be unique!"
				break
			}
			seen[tagID] = true
		}
	}

	return errs
}

// loadRecipeRelations resolves the referenced tags and verifies the
// ingredients exist. Missing references are reported as field errors.
func loadRecipeRelations(input RecipeInput, errs map[string]string) []*models.Tag {
	var tags []*models.Tag
	if _, ok := errs["tags"]; !ok {
		database.DB.Find(&tags, input.Tags)
		if len(tags) != len(input.Tags) {
			errs["tags"] = "Unknown tag!"
		}
	}

	if _, ok := errs["ingredients"]; !ok {
		ingredientIDs := make([]uint, 0, len(input.Ingredients))
		for _, ingredient := range input.Ingredients {
			ingredientIDs = append(ingredientIDs, ingredient.ID)
		}
		var count int64
		database.DB.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&count)
		if int(count) != len(ingredientIDs) {
			errs["ingredients"] = "Unknown ingredient!"
		}
	}

	return tags
}

// endregion

// region --- Handlers ---

// GetRecipes godoc
// @Summary      Get a list of recipes
// @Description  Retrieves a paginated list of recipes, newest first, with optional filtering by author, tags, favorites and shopping cart.
// @Tags         recipes
// @Produce      json
// @Param        author              query  int     false  "Author ID"
// @Param        tags                query  string  false  "Tag slugs (repeatable or comma-separated)"
// @Param        is_favorited        query  bool    false  "Only recipes favorited by the current user"
// @Param        is_in_shopping_cart query  bool    false  "Only recipes in the current user's shopping cart"
// @Param        page                query  int     false  "Page number" default(1)
// @Param        limit               query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[RecipeResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Authentication required for the requested filter"
// @Router       /recipes [get]
func GetRecipes(c *gin.Context) {
	viewerID, authed := currentUserID(c)

	params, err := parseRecipeFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (params.IsFavorited || params.IsInShoppingCart) && !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	tagIDs, err := resolveTagIDs(params.TagSlugs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tags"})
		return
	}

	// An over-restrictive tag filter is ignored rather than returning an
	// empty page: when no requested slug exists, or the tag restriction
	// empties the result, the tag filter falls back to a no-op.
	if len(tagIDs) > 0 {
		filteredTotal, err := countRecipes(params, viewerID, tagIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count recipes"})
			return
		}
		if filteredTotal == 0 {
			tagIDs = nil
		}
	}

	totalItems, err := countRecipes(params, viewerID, tagIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count recipes"})
		return
	}

	var recipes []models.Recipe
	err = buildRecipeQuery(params, viewerID, tagIDs).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, newRecipeResponse(recipe, viewerID))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetRecipeByID godoc
// @Summary      Get a single recipe
// @Description  Retrieves one recipe with its tags, ingredients and author.
// @Tags         recipes
// @Produce      json
// @Param        id   path      int  true  "Recipe ID"
// @Success      200  {object}  RecipeResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id} [get]
func GetRecipeByID(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe models.Recipe
	err = database.DB.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, viewerID))
}

// CreateRecipe godoc
// @Summary      Create a new recipe
// @Description  Creates a recipe with at least one unique ingredient and tag.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RecipeInput true "Recipe Info"
// @Success      201  {object}  RecipeResponse
// @Failure      400  {object}  map[string]map[string]string "Per-field validation errors"
// @Failure      401  {object}  ErrorResponse
// @Router       /recipes [post]
func CreateRecipe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := validateRecipeInput(input)
	tags := loadRecipeRelations(input, errs)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	links := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, ingredient := range input.Ingredients {
		links = append(links, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       ingredient.Amount,
		})
	}

	recipe := models.Recipe{
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		AuthorID:    viewerID.(uint),
		Tags:        tags,
		Ingredients: links,
	}

	if err := database.DB.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	database.DB.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipe.ID)

	c.JSON(http.StatusCreated, newRecipeResponse(recipe, viewerID.(uint)))
}

// UpdateRecipe godoc
// @Summary      Update a recipe
// @Description  Updates a recipe's fields and replaces its ingredient and tag links. Author or admin only.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Recipe ID"
// @Param        input body      RecipeInput true  "New Recipe Info"
// @Success      200   {object}  RecipeResponse
// @Failure      400   {object}  map[string]map[string]string "Per-field validation errors"
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Not the author"
// @Failure      404   {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id} [patch]
func UpdateRecipe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if recipe.AuthorID != viewerID.(uint) && !isAdmin(viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this recipe"})
		return
	}

	var input RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := validateRecipeInput(input)
	tags := loadRecipeRelations(input, errs)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}

		links := make([]models.RecipeIngredient, 0, len(input.Ingredients))
		for _, ingredient := range input.Ingredients {
			links = append(links, models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Amount:       ingredient.Amount,
			})
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		recipe.Name = input.Name
		recipe.Image = input.Image
		recipe.Text = input.Text
		recipe.CookingTime = input.CookingTime
		return tx.Save(&recipe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	database.DB.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipe.ID)

	c.JSON(http.StatusOK, newRecipeResponse(recipe, viewerID.(uint)))
}

// DeleteRecipe godoc
// @Summary      Delete a recipe
// @Description  Deletes a recipe with its ingredient links, tag links, favorites and cart entries. Author or admin only.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id} [delete]
func DeleteRecipe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if recipe.AuthorID != viewerID.(uint) && !isAdmin(viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this recipe"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&recipe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion

// region --- Helpers ---

func isAdmin(userID uint) bool {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return false
	}
	return user.Role == "admin"
}

// endregion
