package models

// Location is a street address inside a city. Rows are shared: user
// registration reuses an existing row with the same address and city
// instead of inserting a duplicate.
type Location struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Address string `json:"address" gorm:"not null;size:255;uniqueIndex:uk_locations_address_city"`
	CityID  uint   `json:"city_id" gorm:"not null;uniqueIndex:uk_locations_address_city"`

	City *City `json:"city,omitempty" gorm:"foreignKey:CityID"`
}
