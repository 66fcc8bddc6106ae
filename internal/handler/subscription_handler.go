package handler

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// SubscriptionResponse is an author profile enriched with their recipes.
type SubscriptionResponse struct {
	ProfileResponse
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// endregion

// Subscribe godoc
// @Summary      Subscribe to an author
// @Description  Subscribes the current user to the author's recipe feed.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id            path   int  true   "Author ID"
// @Param        recipes_limit query  int  false  "Max recipes returned per author"
// @Success      201  {object}  SubscriptionResponse
// @Failure      400  {object}  ErrorResponse "Already subscribed or self-subscription"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Author not found"
// @Router       /users/{id}/subscribe [post]
func Subscribe(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if viewerID.(uint) == uint(authorID) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "You cannot subscribe to yourself!"})
		return
	}

	var author models.User
	if err := database.DB.First(&author, uint(authorID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err = database.DB.Where("user_id = ? AND author_id = ?", viewerID, author.ID).
		First(&models.Subscription{}).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "You are already subscribed to this user!"})
		return
	}

	subscription := models.Subscription{
		UserID:   viewerID.(uint),
		AuthorID: author.ID,
	}
	if err := database.DB.Create(&subscription).Error; err != nil {
		// A concurrent subscribe may win the race on the composite key.
		c.JSON(http.StatusBadRequest, gin.H{"errors": "You are already subscribed to this user!"})
		return
	}

	c.JSON(http.StatusCreated, buildSubscriptionResponse(author, viewerID.(uint), recipesLimit(c)))
}

// Unsubscribe godoc
// @Summary      Unsubscribe from an author
// @Description  Removes the current user's subscription to the author.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Author ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse "Not subscribed"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Author not found"
// @Router       /users/{id}/subscribe [delete]
func Unsubscribe(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var author models.User
	if err := database.DB.First(&author, uint(authorID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result := database.DB.Where("user_id = ? AND author_id = ?", viewerID, author.ID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "You are not subscribed to this user!"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubscriptions godoc
// @Summary      List subscriptions
// @Description  Lists every author the current user follows, with their capped recipe lists.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        recipes_limit query  int  false  "Max recipes returned per author"
// @Param        page          query  int  false  "Page number" default(1)
// @Param        limit         query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[SubscriptionResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /users/subscriptions [get]
func ListSubscriptions(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", viewerID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count subscriptions"})
		return
	}

	var authors []models.User
	if err := query.Order("users.id").Limit(limit).Offset(offset).Find(&authors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
		return
	}

	lim := recipesLimit(c)
	responses := make([]SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		responses = append(responses, buildSubscriptionResponse(author, viewerID.(uint), lim))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// region --- Helpers ---

// recipesLimit reads the optional recipes_limit query parameter.
// Zero means no cap.
func recipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func buildSubscriptionResponse(author models.User, viewerID uint, limit int) SubscriptionResponse {
	var recipesCount int64
	database.DB.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&recipesCount)

	query := database.DB.Where("author_id = ?", author.ID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	query.Find(&recipes)

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, newRecipeSummary(recipe))
	}

	return SubscriptionResponse{
		ProfileResponse: buildProfileResponse(author, viewerID),
		Recipes:         summaries,
		RecipesCount:    recipesCount,
	}
}

// endregion
