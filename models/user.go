package models

import (
	"time"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Firstname  string    `json:"firstname" gorm:"not null;size:100"`
	Lastname   string    `json:"lastname" gorm:"not null;size:100"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password   string    `json:"-" gorm:"not null;size:255"`
	Phone      string    `json:"phone" gorm:"not null;size:30"`
	DOB        string    `json:"dob" gorm:"not null;size:10"` // YYYY-MM-DD
	Bio        string    `json:"bio" gorm:"type:text"`
	LocationID uint      `json:"location_id" gorm:"not null"`
	CarID      *uint     `json:"car_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Car      *Car      `json:"car,omitempty" gorm:"foreignKey:CarID"`
}
