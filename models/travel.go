package models

import (
	"time"
)

// Travel is a scheduled point-to-point trip. AvailableSeats is the
// capacity offered to passengers, never more than the car's seats
// minus the driver's.
type Travel struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	StartLocationID       uint      `json:"start_location_id" gorm:"not null"`
	DestinationLocationID uint      `json:"destination_location_id" gorm:"not null"`
	Date                  string    `json:"date" gorm:"not null;size:10"` // YYYY-MM-DD
	Fee                   float64   `json:"fee" gorm:"not null"`
	Km                    float64   `json:"km" gorm:"not null"`
	Price                 float64   `json:"price" gorm:"not null"`
	UserID                uint      `json:"user_id" gorm:"not null"` // driver
	CarID                 uint      `json:"car_id" gorm:"not null"`
	AvailableSeats        int       `json:"available_seats" gorm:"not null"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	StartLocation       *Location `json:"start_location,omitempty" gorm:"foreignKey:StartLocationID"`
	DestinationLocation *Location `json:"destination_location,omitempty" gorm:"foreignKey:DestinationLocationID"`
	Driver              *User     `json:"driver,omitempty" gorm:"foreignKey:UserID"`
	Car                 *Car      `json:"car,omitempty" gorm:"foreignKey:CarID"`
}

// TravelPassenger links a riding user to a travel, distinct from the
// driver relation on Travel itself.
type TravelPassenger struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uk_user_travel"`
	TravelID  uint      `json:"travel_id" gorm:"not null;uniqueIndex:uk_user_travel"`
	CreatedAt time.Time `json:"created_at"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Travel *Travel `json:"travel,omitempty" gorm:"foreignKey:TravelID"`
}

func (TravelPassenger) TableName() string {
	return "user_travel"
}

// TravelRow is the denormalized listing projection: one travel joined
// outward to both locations, their cities and countries, the driver,
// the car and its brand, plus the current passenger count.
type TravelRow struct {
	TravelID               uint    `json:"travel_id"`
	DestinationAddress     string  `json:"destination_address"`
	StartLocationAddress   string  `json:"start_location_address"`
	TravelDate             string  `json:"travel_date"`
	TravelFee              float64 `json:"travel_fee"`
	TravelKm               float64 `json:"travel_km"`
	TravelPrice            float64 `json:"travel_price"`
	TravelAvSeats          int     `json:"travel_av_seats"`
	DestinationCityID      uint    `json:"destination_city_id"`
	StartCityID            uint    `json:"start_city_id"`
	DestinationCityName    string  `json:"destination_city_name"`
	StartCityName          string  `json:"start_city_name"`
	DestinationCountryID   uint    `json:"destination_country_id"`
	StartCountryID         uint    `json:"start_country_id"`
	DestinationCountryName string  `json:"destination_country_name"`
	StartCountryName       string  `json:"start_country_name"`
	DriverID               uint    `json:"driver_id"`
	DriverFirstname        string  `json:"driver_firstname"`
	DriverLastname         string  `json:"driver_lastname"`
	CarID                  uint    `json:"car_id"`
	CarModel               string  `json:"car_model"`
	CarSeats               int     `json:"car_seats"`
	CarBrand               *string `json:"car_brand"`
	PassengersCount        int     `json:"passengers_count"`
}
