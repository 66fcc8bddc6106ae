package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedIngredientsLoadsCSVAndJSON(t *testing.T) {
	db := openTestDB(t)

	csvPath := writeFixture(t, "ingredients.csv", "flour,g\nsugar,g\n")
	jsonPath := writeFixture(t, "ingredients.json",
		`[{"name": "milk", "measurement_unit": "ml"}]`)

	require.NoError(t, database.SeedIngredients(db, csvPath, jsonPath))

	var ingredients []models.Ingredient
	require.NoError(t, db.Order("name").Find(&ingredients).Error)
	require.Len(t, ingredients, 3)
	assert.Equal(t, "flour", ingredients[0].Name)
	assert.Equal(t, "milk", ingredients[1].Name)
	assert.Equal(t, "ml", ingredients[1].MeasurementUnit)
	assert.Equal(t, "sugar", ingredients[2].Name)
}

func TestSeedIngredientsSkipsWhenPopulated(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)

	csvPath := writeFixture(t, "ingredients.csv", "flour,g\n")
	require.NoError(t, database.SeedIngredients(db, csvPath, ""))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeedIngredientsNoPathsIsNoop(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, database.SeedIngredients(db, "", ""))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}
