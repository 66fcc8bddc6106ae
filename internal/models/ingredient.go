package models

import "gorm.io/gorm"

// Ingredient represents an ingredient with its measurement unit.
// The same name may appear with different units, so uniqueness is on the pair.
type Ingredient struct {
	gorm.Model
	Name            string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit"`
}
