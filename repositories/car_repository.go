package repositories

import (
	"gorm.io/gorm"

	"carpool-api/models"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

// FirstOrCreate reuses the brandless car matching (model, seats) or
// inserts one. Used when a user registers a car by value instead of
// referencing an existing car_id.
func (r *CarRepository) FirstOrCreate(model string, seats int) (*models.Car, error) {
	var car models.Car
	err := r.db.Where("model = ? AND seats = ? AND brand_id IS NULL", model, seats).
		First(&car).Error
	if err == nil {
		return &car, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	car = models.Car{Model: model, Seats: seats}
	if err := r.db.Create(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}
