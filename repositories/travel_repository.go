package repositories

import (
	"errors"

	"gorm.io/gorm"

	"carpool-api/models"
)

var ErrTravelNotFound = errors.New("travel not found")

type TravelRepository struct {
	db *gorm.DB
}

func NewTravelRepository(db *gorm.DB) *TravelRepository {
	return &TravelRepository{db: db}
}

// listSelect joins a travel outward to both of its locations, each
// location's city and country, the driver, the car and its brand, and
// counts passenger rows in a grouped subquery. passengers_count is a
// count of association rows; it is independent of available_seats.
const listSelect = `
SELECT t.id AS travel_id,
       dl.address AS destination_address,
       sl.address AS start_location_address,
       t.date AS travel_date,
       t.fee AS travel_fee,
       t.km AS travel_km,
       t.price AS travel_price,
       t.available_seats AS travel_av_seats,
       dc.id AS destination_city_id,
       sc.id AS start_city_id,
       dc.name AS destination_city_name,
       sc.name AS start_city_name,
       dn.id AS destination_country_id,
       sn.id AS start_country_id,
       dn.name AS destination_country_name,
       sn.name AS start_country_name,
       u.id AS driver_id,
       u.firstname AS driver_firstname,
       u.lastname AS driver_lastname,
       ca.id AS car_id,
       ca.model AS car_model,
       ca.seats AS car_seats,
       b.name AS car_brand,
       COALESCE(p.passengers_count, 0) AS passengers_count
FROM travels t
JOIN locations dl ON dl.id = t.destination_location_id
JOIN cities dc ON dc.id = dl.city_id
JOIN countries dn ON dn.id = dc.country_id
JOIN locations sl ON sl.id = t.start_location_id
JOIN cities sc ON sc.id = sl.city_id
JOIN countries sn ON sn.id = sc.country_id
JOIN users u ON u.id = t.user_id
JOIN cars ca ON ca.id = t.car_id
LEFT JOIN brands b ON b.id = ca.brand_id
LEFT JOIN (
    SELECT travel_id, COUNT(*) AS passengers_count
    FROM user_travel
    GROUP BY travel_id
) p ON p.travel_id = t.id`

// ListUpcoming returns the denormalized rows for every travel dated
// today or later.
func (r *TravelRepository) ListUpcoming(today string) ([]models.TravelRow, error) {
	rows := []models.TravelRow{}
	err := r.db.Raw(listSelect+" WHERE t.date >= ? ORDER BY t.date, t.id", today).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns the same projection for a single travel, or
// ErrTravelNotFound when no row matches.
func (r *TravelRepository) GetByID(id uint) (*models.TravelRow, error) {
	rows := []models.TravelRow{}
	err := r.db.Raw(listSelect+" WHERE t.id = ?", id).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTravelNotFound
	}
	return &rows[0], nil
}

// CountPassengers counts association rows for one travel.
func (r *TravelRepository) CountPassengers(travelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.TravelPassenger{}).Where("travel_id = ?", travelID).Count(&count).Error
	return count, err
}
