package handler

import (
	"fmt"
	"strconv"
	"strings"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recipeFilterParams holds the optional recipe list filters.
type recipeFilterParams struct {
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// parseRecipeFilters reads the filter query parameters. Tag slugs may be
// repeated (?tags=a&tags=b) or comma-separated.
func parseRecipeFilters(c *gin.Context) (recipeFilterParams, error) {
	var params recipeFilterParams

	if author := c.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			return params, fmt.Errorf("invalid author ID")
		}
		params.AuthorID = uint(authorID)
	}

	for _, value := range c.QueryArray("tags") {
		params.TagSlugs = append(params.TagSlugs, splitCommaSeparated(value)...)
	}

	if value := c.Query("is_favorited"); value != "" {
		favorited, err := strconv.ParseBool(value)
		if err != nil {
			return params, fmt.Errorf("invalid is_favorited value")
		}
		params.IsFavorited = favorited
	}

	if value := c.Query("is_in_shopping_cart"); value != "" {
		inCart, err := strconv.ParseBool(value)
		if err != nil {
			return params, fmt.Errorf("invalid is_in_shopping_cart value")
		}
		params.IsInShoppingCart = inCart
	}

	return params, nil
}

// buildRecipeQuery composes a fresh recipe query from the filter parameters.
// tagIDs restricts to recipes carrying any of the tags; empty means no tag
// restriction.
func buildRecipeQuery(params recipeFilterParams, viewerID uint, tagIDs []uint) *gorm.DB {
	query := database.DB.Model(&models.Recipe{})

	if params.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", params.AuthorID)
	}
	if params.IsFavorited {
		query = query.Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", viewerID)
	}
	if params.IsInShoppingCart {
		query = query.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", viewerID)
	}
	if len(tagIDs) > 0 {
		query = query.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs).
			Group("recipes.id")
	}

	return query
}

// countRecipes counts the rows the filtered query would return. A grouped
// query needs a subquery count so GROUP BY does not skew the total.
func countRecipes(params recipeFilterParams, viewerID uint, tagIDs []uint) (int64, error) {
	var total int64
	query := buildRecipeQuery(params, viewerID, tagIDs)
	if len(tagIDs) > 0 {
		subQuery := query.Select("recipes.id")
		err := database.DB.Table("(?) as sub", subQuery).Count(&total).Error
		return total, err
	}
	err := query.Count(&total).Error
	return total, err
}

// resolveTagIDs maps requested slugs to the IDs of tags that actually exist.
// Unknown slugs are dropped; a result of nil means the tag filter is a no-op.
func resolveTagIDs(slugs []string) ([]uint, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tagIDs []uint
	err := database.DB.Model(&models.Tag{}).Where("slug IN ?", slugs).Pluck("id", &tagIDs).Error
	return tagIDs, err
}

// currentUserID reads the authenticated user from the context.
// The second return is false on anonymous requests.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	return value.(uint), true
}

// Helper to split comma-separated strings
func splitCommaSeparated(s string) []string {
	var result []string
	parts := strings.Split(s, ",")
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
