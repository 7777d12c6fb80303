package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carpool-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the schema leaves-first so foreign keys always have
// a target table: Country -> City -> Location -> Brand -> Car -> User
// -> Travel -> passenger join rows.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.Location{},
		&models.Brand{},
		&models.Car{},
		&models.User{},
		&models.Travel{},
		&models.TravelPassenger{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

// addDatabaseConstraints backs the invariants that concurrent requests
// cannot protect in-process: no duplicate boarding of a travel and no
// duplicate location row per (address, city). AutoMigrate already
// creates these from the struct tags; the ALTERs cover databases
// migrated by earlier schema generations. Failures are warnings since
// the constraint usually exists already.
func addDatabaseConstraints(db *gorm.DB) error {
	if err := db.Exec("ALTER TABLE user_travel ADD CONSTRAINT uk_user_travel UNIQUE (user_id, travel_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for user_travel: %v\n", err)
	}

	if err := db.Exec("ALTER TABLE locations ADD CONSTRAINT uk_locations_address_city UNIQUE (address, city_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for locations: %v\n", err)
	}

	return nil
}

// SeedData populates reference data for development; production
// deployments start from an empty database.
func SeedData(db *gorm.DB) error {
	var countryCount int64
	db.Model(&models.Country{}).Count(&countryCount)

	if countryCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	countries := []models.Country{
		{Name: "Hungary"},
		{Name: "Austria"},
	}
	for i := range countries {
		if err := db.Create(&countries[i]).Error; err != nil {
			fmt.Printf("Warning: Could not create country %s: %v\n", countries[i].Name, err)
		}
	}

	cities := []models.City{
		{Name: "Budapest", PostalCode: "1011", CountryID: countries[0].ID},
		{Name: "Vienna", PostalCode: "1010", CountryID: countries[1].ID},
	}
	for i := range cities {
		if err := db.Create(&cities[i]).Error; err != nil {
			fmt.Printf("Warning: Could not create city %s: %v\n", cities[i].Name, err)
		}
	}

	brands := []models.Brand{
		{Name: "Toyota"},
		{Name: "Skoda"},
	}
	for i := range brands {
		if err := db.Create(&brands[i]).Error; err != nil {
			fmt.Printf("Warning: Could not create brand %s: %v\n", brands[i].Name, err)
		}
	}

	fmt.Println("Database seeded with reference data")
	return nil
}
