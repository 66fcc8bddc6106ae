package handler

import (
	"fmt"
	"net/http"
	"strings"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type shoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// DownloadShoppingCart godoc
// @Summary      Download the shopping list
// @Description  Aggregates ingredients across every recipe in the current user's cart, summed per (name, unit), as a plain-text attachment.
// @Tags         recipes
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string  "shopping_list.txt"
// @Failure      401  {object}  ErrorResponse
// @Router       /recipes/download_shopping_cart [get]
func DownloadShoppingCart(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	// One grouped query, so the report is consistent with the cart
	// contents at read time.
	var rows []shoppingListRow
	err := database.DB.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", viewerID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build shopping list"})
		return
	}

	var report strings.Builder
	report.WriteString("Shopping list:")
	for _, row := range rows {
		fmt.Fprintf(&report, "\n%s - %d %s", row.Name, row.Total, row.MeasurementUnit)
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.String()))
}
