package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/handler"
	"foodgram/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRecipe(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	recipe := createRecipe(t, alice, "stew", []models.Tag{tag}, ingredientAmount{flour, 100})

	url := fmt.Sprintf("/api/v1/recipes/%d/favorite", recipe.ID)

	w := performRequest(router, http.MethodPost, url, authHeader(t, bob), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var summary handler.RecipeSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "stew", summary.Name)
	assert.Equal(t, 30, summary.CookingTime)
}

func TestFavoriteRecipeTwiceConflicts(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	recipe := createRecipe(t, alice, "stew", []models.Tag{tag}, ingredientAmount{flour, 100})

	url := fmt.Sprintf("/api/v1/recipes/%d/favorite", recipe.ID)
	token := authHeader(t, bob)

	w := performRequest(router, http.MethodPost, url, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", bob.ID, recipe.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUnfavoriteMissingEntry(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	recipe := createRecipe(t, alice, "stew", []models.Tag{tag}, ingredientAmount{flour, 100})

	url := fmt.Sprintf("/api/v1/recipes/%d/favorite", recipe.ID)

	w := performRequest(router, http.MethodDelete, url, authHeader(t, bob), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Favorite{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFavoriteNonNumericID(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	bob := createUser(t, "bob")
	token := authHeader(t, bob)

	w := performRequest(router, http.MethodPost, "/api/v1/recipes/abc/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodDelete, "/api/v1/recipes/abc/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShoppingCartAddRemove(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	recipe := createRecipe(t, alice, "stew", []models.Tag{tag}, ingredientAmount{flour, 100})

	url := fmt.Sprintf("/api/v1/recipes/%d/shopping_cart", recipe.ID)
	token := authHeader(t, bob)

	w := performRequest(router, http.MethodPost, url, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The pair is reusable after removal.
	w = performRequest(router, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddUnknownRecipeToCart(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	bob := createUser(t, "bob")

	w := performRequest(router, http.MethodPost, "/api/v1/recipes/999/shopping_cart", authHeader(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
