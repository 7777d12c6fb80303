package models

type Country struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`

	Cities []City `json:"cities,omitempty" gorm:"foreignKey:CountryID"`
}
