package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"carpool-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens a unique in-memory database per test name to
// avoid leakage via the shared cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// doJSON drives one handler through a fresh router and returns the
// recorder. Auth middleware is not mounted: these tests cover the
// entity semantics, not the token gate.
func doJSON(t *testing.T, method, path string, body interface{}, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	register(r)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return payload
}

// Seed helpers build the dependency chain leaves-first.

func seedCountry(t *testing.T, db *gorm.DB, name string) models.Country {
	t.Helper()
	country := models.Country{Name: name}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	return country
}

func seedCity(t *testing.T, db *gorm.DB, name string, countryID uint) models.City {
	t.Helper()
	city := models.City{Name: name, PostalCode: "0000", CountryID: countryID}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}
	return city
}

func seedLocation(t *testing.T, db *gorm.DB, address string, cityID uint) models.Location {
	t.Helper()
	location := models.Location{Address: address, CityID: cityID}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return location
}

func seedCar(t *testing.T, db *gorm.DB, model string, seats int) models.Car {
	t.Helper()
	car := models.Car{Model: model, Seats: seats}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func seedUser(t *testing.T, db *gorm.DB, email string, locationID uint) models.User {
	t.Helper()
	user := models.User{
		Firstname:  "Test",
		Lastname:   "User",
		Email:      email,
		Password:   "$2a$10$dummy",
		Phone:      "+3612345678",
		DOB:        "1990-01-01",
		LocationID: locationID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedTravelChain creates country -> city -> two locations -> car ->
// driver, returning everything a travel needs.
func seedTravelChain(t *testing.T, db *gorm.DB, seats int) (models.Location, models.Location, models.User, models.Car) {
	t.Helper()
	country := seedCountry(t, db, "Testland")
	city := seedCity(t, db, "Testville", country.ID)
	start := seedLocation(t, db, "1 Main St", city.ID)
	dest := seedLocation(t, db, "2 Side St", city.ID)
	car := seedCar(t, db, "X", seats)
	driver := seedUser(t, db, "driver@example.com", start.ID)
	return start, dest, driver, car
}
