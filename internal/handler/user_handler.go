package handler

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"
	"foodgram/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email" example:"test@example.com"`
	Username  string `json:"username" binding:"required" example:"testuser"`
	FirstName string `json:"first_name" binding:"required" example:"Test"`
	LastName  string `json:"last_name" binding:"required" example:"User"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// ProfileResponse defines the structure for a user profile.
type ProfileResponse struct {
	ID           uint   `json:"id" example:"1"`
	Email        string `json:"email" example:"test@example.com"`
	Username     string `json:"username" example:"testuser"`
	FirstName    string `json:"first_name" example:"Test"`
	LastName     string `json:"last_name" example:"User"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- User Handlers ---

// ListUsers godoc
// @Summary      List users
// @Description  Retrieves a paginated list of users.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[ProfileResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func ListUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	var totalItems int64
	if err := database.DB.Model(&models.User{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := database.DB.Order("username").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := make([]ProfileResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, buildProfileResponse(user, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the profile for a specific user, including subscription status.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(targetUser, viewerID.(uint)))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(user, viewerID.(uint)))
}

// endregion

// region --- Helpers ---

// buildProfileResponse builds a profile as seen by the viewer. A viewerID of
// zero means the request is anonymous and is_subscribed is always false.
func buildProfileResponse(user models.User, viewerID uint) ProfileResponse {
	isSubscribed := false
	if viewerID != 0 && viewerID != user.ID {
		err := database.DB.Where("user_id = ? AND author_id = ?", viewerID, user.ID).
			First(&models.Subscription{}).Error
		isSubscribed = !errors.Is(err, gorm.ErrRecordNotFound)
	}

	return ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// endregion
