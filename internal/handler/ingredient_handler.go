package handler

import (
	"net/http"
	"strconv"
	"strings"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func newIngredientResponse(ingredient models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// GetIngredients godoc
// @Summary      List ingredients
// @Description  Retrieves ingredients, optionally filtered by a case-insensitive name substring.
// @Tags         ingredients
// @Produce      json
// @Param        name  query     string  false  "Name substring"
// @Success      200   {array}   IngredientResponse
// @Router       /ingredients [get]
func GetIngredients(c *gin.Context) {
	query := database.DB.Model(&models.Ingredient{}).Order("name")

	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}

	response := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, newIngredientResponse(ingredient))
	}
	c.JSON(http.StatusOK, response)
}

// GetIngredientByID godoc
// @Summary      Get a single ingredient
// @Description  Retrieves one ingredient by its ID.
// @Tags         ingredients
// @Produce      json
// @Param        id   path      int  true  "Ingredient ID"
// @Success      200  {object}  IngredientResponse
// @Failure      404  {object}  ErrorResponse "Ingredient not found"
// @Router       /ingredients/{id} [get]
func GetIngredientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	var ingredient models.Ingredient
	if err := database.DB.First(&ingredient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, newIngredientResponse(ingredient))
}
