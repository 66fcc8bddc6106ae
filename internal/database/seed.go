package database

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"foodgram/backend/internal/models"

	"gorm.io/gorm"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// SeedIngredients loads the ingredient reference data from a CSV file
// (name,unit per row) and a JSON file ([{"name": ..., "measurement_unit": ...}]).
// The whole step is skipped if any ingredient already exists, so it is safe
// to run on every deployment but must not run concurrently with itself.
func SeedIngredients(db *gorm.DB, csvPath, jsonPath string) error {
	if csvPath == "" && jsonPath == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count ingredients: %w", err)
	}
	if count > 0 {
		log.Println("Ingredients already loaded, skipping import.")
		return nil
	}

	var ingredients []models.Ingredient

	if csvPath != "" {
		csvFile, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", csvPath, err)
		}
		defer csvFile.Close()

		reader := csv.NewReader(csvFile)
		reader.FieldsPerRecord = 2
		rows, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("read %s: %w", csvPath, err)
		}
		for _, row := range rows {
			ingredients = append(ingredients, models.Ingredient{
				Name:            row[0],
				MeasurementUnit: row[1],
			})
		}
	}

	if jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", jsonPath, err)
		}
		var records []ingredientRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("parse %s: %w", jsonPath, err)
		}
		for _, rec := range records {
			ingredients = append(ingredients, models.Ingredient{
				Name:            rec.Name,
				MeasurementUnit: rec.MeasurementUnit,
			})
		}
	}

	if len(ingredients) == 0 {
		return nil
	}

	if err := db.Create(&ingredients).Error; err != nil {
		return fmt.Errorf("insert ingredients: %w", err)
	}

	log.Printf("Imported %d ingredients from CSV and JSON files.", len(ingredients))
	return nil
}
