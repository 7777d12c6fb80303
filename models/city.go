package models

type City struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	PostalCode string `json:"postalcode" gorm:"not null;size:20"`
	CountryID  uint   `json:"country_id" gorm:"not null"`

	Country *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
}
