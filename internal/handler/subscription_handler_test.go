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

func subscribeURL(authorID uint) string {
	return fmt.Sprintf("/api/v1/users/%d/subscribe", authorID)
}

func TestSubscribe(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	createRecipe(t, alice, "stew", []models.Tag{tag}, ingredientAmount{flour, 100})
	createRecipe(t, alice, "soup", []models.Tag{tag}, ingredientAmount{flour, 100})

	w := performRequest(router, http.MethodPost, subscribeURL(alice.ID), authHeader(t, bob), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response handler.SubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, alice.ID, response.ID)
	assert.True(t, response.IsSubscribed)
	assert.EqualValues(t, 2, response.RecipesCount)
	assert.Len(t, response.Recipes, 2)
}

func TestSubscribeTwiceFails(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	token := authHeader(t, bob)

	w := performRequest(router, http.MethodPost, subscribeURL(alice.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, subscribeURL(alice.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Subscription{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSelfSubscriptionForbidden(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	bob := createUser(t, "bob")

	w := performRequest(router, http.MethodPost, subscribeURL(bob.ID), authHeader(t, bob), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Subscription{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	bob := createUser(t, "bob")

	w := performRequest(router, http.MethodPost, subscribeURL(999), authHeader(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	w := performRequest(router, http.MethodDelete, subscribeURL(alice.ID), authHeader(t, bob), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribe(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	require.NoError(t, database.DB.Create(&models.Subscription{UserID: bob.ID, AuthorID: alice.ID}).Error)

	w := performRequest(router, http.MethodDelete, subscribeURL(alice.ID), authHeader(t, bob), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	database.DB.Model(&models.Subscription{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListSubscriptionsWithRecipesLimit(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	tag := createTag(t, "Dinner", "dinner", "#112233")
	flour := createIngredient(t, "flour", "g")
	for _, name := range []string{"stew", "soup", "pie"} {
		createRecipe(t, alice, name, []models.Tag{tag}, ingredientAmount{flour, 100})
	}
	require.NoError(t, database.DB.Create(&models.Subscription{UserID: bob.ID, AuthorID: alice.ID}).Error)

	w := performRequest(router, http.MethodGet, "/api/v1/users/subscriptions?recipes_limit=2", authHeader(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response handler.PaginatedResponse[handler.SubscriptionResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)

	author := response.Data[0]
	assert.Equal(t, alice.ID, author.ID)
	assert.EqualValues(t, 3, author.RecipesCount)
	assert.Len(t, author.Recipes, 2)
	// Newest first within the capped list.
	assert.Equal(t, "pie", author.Recipes[0].Name)
}
