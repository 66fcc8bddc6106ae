package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type TagInput struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

var colorPattern = regexp.MustCompile(`^#[A-Fa-f0-9]{6}$`)

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Slug:  tag.Slug,
		Color: tag.Color,
	}
}

// GetTags godoc
// @Summary      Get all tags
// @Description  Retrieves a list of all available tags.
// @Tags         tags
// @Produce      json
// @Success      200  {array}   TagResponse
// @Router       /tags [get]
func GetTags(c *gin.Context) {
	var tags []models.Tag
	database.DB.Find(&tags)

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	c.JSON(http.StatusOK, response)
}

// GetTagByID godoc
// @Summary      Get a single tag
// @Description  Retrieves one tag by its ID.
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  TagResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /tags/{id} [get]
func GetTagByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var tag models.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag))
}

// CreateTag godoc
// @Summary      Create a new tag
// @Description  Creates a new tag for recipes. Color must be a unique #RRGGBB hex code.
// @Tags         admin-tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TagInput true "Tag Info"
// @Success      201  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Tag already exists"
// @Router       /admin/tags [post]
func CreateTag(c *gin.Context) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !colorPattern.MatchString(input.Color) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"color": "Color must be a hex code like #49B64E!"}})
		return
	}

	tag := models.Tag{Name: input.Name, Slug: input.Slug, Color: input.Color}
	if err := database.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag with this slug or color already exists"})
		return
	}

	c.JSON(http.StatusCreated, newTagResponse(tag))
}

// UpdateTag godoc
// @Summary      Update a tag
// @Description  Updates an existing tag.
// @Tags         admin-tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int      true  "Tag ID"
// @Param        input body      TagInput true  "New Tag Info"
// @Success      200   {object}  TagResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Tag not found"
// @Router       /admin/tags/{id} [patch]
func UpdateTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !colorPattern.MatchString(input.Color) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"color": "Color must be a hex code like #49B64E!"}})
		return
	}

	var tag models.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	tag.Name = input.Name
	tag.Slug = input.Slug
	tag.Color = input.Color
	if err := database.DB.Save(&tag).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag with this slug or color already exists"})
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag))
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Deletes an existing tag.
// @Tags         admin-tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  map[string]string "{"message": "Tag deleted"}"
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /admin/tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	result := database.DB.Unscoped().Delete(&models.Tag{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
