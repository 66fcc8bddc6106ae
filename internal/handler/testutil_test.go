package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"foodgram/backend/internal/auth"
	"foodgram/backend/internal/config"
	"foodgram/backend/internal/database"
	"foodgram/backend/internal/handler"
	"foodgram/backend/internal/models"
	"foodgram/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	apiV1 := router.Group("/api/v1")

	apiV1.POST("/auth/register", handler.RegisterUser)
	apiV1.POST("/auth/login", handler.LoginUser)

	apiV1.GET("/tags", handler.GetTags)
	apiV1.GET("/tags/:id", handler.GetTagByID)
	apiV1.GET("/ingredients", handler.GetIngredients)
	apiV1.GET("/ingredients/:id", handler.GetIngredientByID)

	recipeRoutes := apiV1.Group("/recipes")
	{
		recipeRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetRecipes)
		recipeRoutes.GET("/download_shopping_cart", auth.AuthMiddleware(), handler.DownloadShoppingCart)
		recipeRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetRecipeByID)

		recipeRoutes.POST("", auth.AuthMiddleware(), handler.CreateRecipe)
		recipeRoutes.PATCH("/:id", auth.AuthMiddleware(), handler.UpdateRecipe)
		recipeRoutes.DELETE("/:id", auth.AuthMiddleware(), handler.DeleteRecipe)

		recipeRoutes.POST("/:id/favorite", auth.AuthMiddleware(), handler.FavoriteRecipe)
		recipeRoutes.DELETE("/:id/favorite", auth.AuthMiddleware(), handler.UnfavoriteRecipe)
		recipeRoutes.POST("/:id/shopping_cart", auth.AuthMiddleware(), handler.AddToShoppingCart)
		recipeRoutes.DELETE("/:id/shopping_cart", auth.AuthMiddleware(), handler.RemoveFromShoppingCart)
	}

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("", handler.ListUsers)
		userRoutes.GET("/me", handler.GetMe)
		userRoutes.GET("/subscriptions", handler.ListSubscriptions)
		userRoutes.GET("/:id", handler.GetUserByID)

		userRoutes.POST("/:id/subscribe", handler.Subscribe)
		userRoutes.DELETE("/:id/subscribe", handler.Unsubscribe)
	}

	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminRoutes.POST("/tags", handler.CreateTag)
		adminRoutes.PATCH("/tags/:id", handler.UpdateTag)
		adminRoutes.DELETE("/tags/:id", handler.DeleteTag)
	}

	return router
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "irrelevant",
		Role:         "user",
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createAdmin(t *testing.T, username string) models.User {
	t.Helper()
	admin := createUser(t, username)
	require.NoError(t, database.DB.Model(&admin).Update("role", "admin").Error)
	admin.Role = "admin"
	return admin
}

func createTag(t *testing.T, name, slug, color string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug, Color: color}
	require.NoError(t, database.DB.Create(&tag).Error)
	return tag
}

func createIngredient(t *testing.T, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, database.DB.Create(&ingredient).Error)
	return ingredient
}

type ingredientAmount struct {
	Ingredient models.Ingredient
	Amount     int
}

func createRecipe(t *testing.T, author models.User, name string, tags []models.Tag, ingredients ...ingredientAmount) models.Recipe {
	t.Helper()

	tagRefs := make([]*models.Tag, 0, len(tags))
	for i := range tags {
		tagRefs = append(tagRefs, &tags[i])
	}

	links := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, item := range ingredients {
		links = append(links, models.RecipeIngredient{
			IngredientID: item.Ingredient.ID,
			Amount:       item.Amount,
		})
	}

	recipe := models.Recipe{
		Name:        name,
		Image:       "data:image/png;base64,aW1n",
		Text:        "How to cook " + name,
		CookingTime: 30,
		AuthorID:    author.ID,
		Tags:        tagRefs,
		Ingredients: links,
	}
	require.NoError(t, database.DB.Create(&recipe).Error)
	return recipe
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return "Bearer " + token
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRecipeList(t *testing.T, w *httptest.ResponseRecorder) handler.PaginatedResponse[handler.RecipeResponse] {
	t.Helper()
	var response handler.PaginatedResponse[handler.RecipeResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func recipeNames(response handler.PaginatedResponse[handler.RecipeResponse]) []string {
	names := make([]string, 0, len(response.Data))
	for _, recipe := range response.Data {
		names = append(names, recipe.Name)
	}
	return names
}

func listRecipesURL(query string) string {
	return fmt.Sprintf("/api/v1/recipes%s", query)
}
