package models

type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`

	Cars []Car `json:"cars,omitempty" gorm:"foreignKey:BrandID"`
}

// Car seats count the driver's seat too; a travel can offer at most
// Seats-1 to passengers.
type Car struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Model   string `json:"model" gorm:"not null;size:100"`
	Seats   int    `json:"seats" gorm:"not null"`
	BrandID *uint  `json:"brand_id"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}
