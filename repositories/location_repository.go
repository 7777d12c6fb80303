package repositories

import (
	"gorm.io/gorm"

	"carpool-api/models"
)

type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository accepts a plain handle or an open transaction.
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// FirstOrCreate reuses the location row matching (address, city) or
// inserts one. Idempotent by content: calling it twice with the same
// input yields the same row.
func (r *LocationRepository) FirstOrCreate(address string, cityID uint) (*models.Location, error) {
	var location models.Location
	err := r.db.Where(models.Location{Address: address, CityID: cityID}).
		FirstOrCreate(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetWithCity loads a location expanded two hops: city and country.
func (r *LocationRepository) GetWithCity(id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.Preload("City.Country").First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// CountReferences counts users and travels pointing at a location,
// excluding one user (the one being edited).
func (r *LocationRepository) CountReferences(locationID, excludeUserID uint) (int64, error) {
	var users int64
	err := r.db.Model(&models.User{}).
		Where("location_id = ? AND id <> ?", locationID, excludeUserID).
		Count(&users).Error
	if err != nil {
		return 0, err
	}

	var travels int64
	err = r.db.Model(&models.Travel{}).
		Where("start_location_id = ? OR destination_location_id = ?", locationID, locationID).
		Count(&travels).Error
	if err != nil {
		return 0, err
	}

	return users + travels, nil
}
