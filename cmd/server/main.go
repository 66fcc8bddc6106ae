package main

import (
	"fmt"
	"log"
	"net/http"

	"foodgram/backend/internal/auth"
	"foodgram/backend/internal/config"
	"foodgram/backend/internal/database"
	"foodgram/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "foodgram/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Foodgram API
// @version         1.0
// @description     This is the API for the Foodgram recipe-sharing service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// One-time ingredient reference data import
	err := database.SeedIngredients(
		database.DB,
		config.AppConfig.IngredientsCSV,
		config.AppConfig.IngredientsJSON,
	)
	if err != nil {
		log.Fatalf("Failed to import ingredients: %v", err)
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Public reference data
		apiV1.GET("/tags", handler.GetTags)
		apiV1.GET("/tags/:id", handler.GetTagByID)
		apiV1.GET("/ingredients", handler.GetIngredients)
		apiV1.GET("/ingredients/:id", handler.GetIngredientByID)

		// Recipe routes
		recipeRoutes := apiV1.Group("/recipes")
		{
			// Listing and detail work anonymously; the favorite/cart
			// filters inside require a token.
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

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.ListUsers)
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/subscriptions", handler.ListSubscriptions) // Must be before /:id
			userRoutes.GET("/:id", handler.GetUserByID)

			userRoutes.POST("/:id/subscribe", handler.Subscribe)
			userRoutes.DELETE("/:id/subscribe", handler.Unsubscribe)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Tags CRUD
			tags := adminRoutes.Group("/tags")
			{
				tags.POST("", handler.CreateTag)
				tags.PATCH("/:id", handler.UpdateTag)
				tags.DELETE("/:id", handler.DeleteTag)
			}
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
