package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"carpool-api/models"
	"carpool-api/utils"
)

func travelRoutes(tc *TravelController) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.POST("/travels", tc.CreateTravel)
		r.GET("/travels", tc.GetTravels)
		r.GET("/travels/:id", tc.GetTravel)
	}
}

// The canonical seat-capacity walk-through: a 4-seat car offers at
// most 3 passenger seats.
func TestCreateTravelSeatCapacity(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)

	body := gin.H{
		"startlocation_id": start.ID,
		"destination_id":   dest.ID,
		"date":             utils.Today(),
		"fee":              0,
		"km":               0,
		"price":            0,
		"user_id":          driver.ID,
		"car_id":           car.ID,
		"av_seats":         4,
	}
	w := doJSON(t, http.MethodPost, "/travels", body, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("av_seats=4 with 4-seat car: expected 422 got %d", w.Code)
	}
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	if _, ok := errs["av_seats"]; !ok {
		t.Fatalf("expected av_seats error, got %v", errs)
	}
	var count int64
	db.Model(&models.Travel{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed validation must not insert a row")
	}

	body["av_seats"] = 3
	w2 := doJSON(t, http.MethodPost, "/travels", body, register)
	if w2.Code != http.StatusCreated {
		t.Fatalf("av_seats=3: expected 201 got %d body=%s", w2.Code, w2.Body.String())
	}
	travel := decodeBody(t, w2)["travel"].(map[string]interface{})
	if travel["available_seats"].(float64) != 3 {
		t.Fatalf("unexpected available_seats: %v", travel["available_seats"])
	}

	// Zero seats offered is as invalid as too many.
	body["av_seats"] = 0
	if w3 := doJSON(t, http.MethodPost, "/travels", body, register); w3.Code != http.StatusUnprocessableEntity {
		t.Fatalf("av_seats=0: expected 422 got %d", w3.Code)
	}
}

func TestCreateTravelLocationLookups(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)

	// Two distinct existing locations must both resolve; the second
	// lookup must not inherit the first one's id.
	body := gin.H{
		"startlocation_id": start.ID,
		"destination_id":   dest.ID,
		"date":             utils.Today(),
		"user_id":          driver.ID,
		"car_id":           car.ID,
		"av_seats":         3,
	}
	w := doJSON(t, http.MethodPost, "/travels", body, register)
	if w.Code != http.StatusCreated {
		t.Fatalf("distinct locations: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	travel := decodeBody(t, w)["travel"].(map[string]interface{})
	if travel["start_location_id"].(float64) != float64(start.ID) ||
		travel["destination_location_id"].(float64) != float64(dest.ID) {
		t.Fatalf("location ids not stored as sent: %v", travel)
	}

	// A loop trip with the same start and destination is allowed.
	body["destination_id"] = start.ID
	w2 := doJSON(t, http.MethodPost, "/travels", body, register)
	if w2.Code != http.StatusCreated {
		t.Fatalf("same-location travel: expected 201 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestCreateTravelCarResolvedFirst(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	// No car seeded at all: the car error must come back alone, even
	// though every other field is bad too.
	body := gin.H{"car_id": 42}
	w := doJSON(t, http.MethodPost, "/travels", body, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	if len(errs) != 1 {
		t.Fatalf("expected only the car error, got %v", errs)
	}
	msgs := errs["car_id"].([]interface{})
	if msgs[0] != "car not found" {
		t.Fatalf("unexpected car error: %v", msgs)
	}
}

func TestCreateTravelRejectsPastDate(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	body := gin.H{
		"startlocation_id": start.ID,
		"destination_id":   dest.ID,
		"date":             yesterday,
		"user_id":          driver.ID,
		"car_id":           car.ID,
		"av_seats":         2,
	}
	w := doJSON(t, http.MethodPost, "/travels", body, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for past date got %d", w.Code)
	}
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	if _, ok := errs["date"]; !ok {
		t.Fatalf("expected date error, got %v", errs)
	}
}

func TestCreateTravelNegativeNumbers(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)
	body := gin.H{
		"startlocation_id": start.ID,
		"destination_id":   dest.ID,
		"date":             utils.Today(),
		"fee":              -1,
		"km":               -0.5,
		"price":            -10,
		"user_id":          driver.ID,
		"car_id":           car.ID,
		"av_seats":         2,
	}
	w := doJSON(t, http.MethodPost, "/travels", body, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	for _, field := range []string{"fee", "km", "price"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}
}

func TestListUpcomingTravelsFiltersPast(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	for _, date := range []string{yesterday, utils.Today(), tomorrow} {
		travel := models.Travel{
			StartLocationID:       start.ID,
			DestinationLocationID: dest.ID,
			Date:                  date,
			UserID:                driver.ID,
			CarID:                 car.ID,
			AvailableSeats:        3,
		}
		if err := db.Create(&travel).Error; err != nil {
			t.Fatalf("seed travel: %v", err)
		}
	}

	w := doJSON(t, http.MethodGet, "/travels", nil, register)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	travels := decodeBody(t, w)["travels"].([]interface{})
	if len(travels) != 2 {
		t.Fatalf("expected today+tomorrow only, got %d rows", len(travels))
	}
	for _, raw := range travels {
		row := raw.(map[string]interface{})
		if row["travel_date"].(string) < utils.Today() {
			t.Fatalf("past travel leaked into listing: %v", row["travel_date"])
		}
	}
}

func TestGetTravelProjectionAndNotFound(t *testing.T) {
	db := setupTestDB(t)
	tc := NewTravelController(db)
	register := travelRoutes(tc)

	start, dest, driver, car := seedTravelChain(t, db, 4)
	travel := models.Travel{
		StartLocationID:       start.ID,
		DestinationLocationID: dest.ID,
		Date:                  utils.Today(),
		Fee:                   2.5,
		Km:                    120,
		Price:                 15,
		UserID:                driver.ID,
		CarID:                 car.ID,
		AvailableSeats:        3,
	}
	if err := db.Create(&travel).Error; err != nil {
		t.Fatalf("seed travel: %v", err)
	}
	db.Create(&models.TravelPassenger{UserID: driver.ID, TravelID: travel.ID})

	w := doJSON(t, http.MethodGet, "/travels/1", nil, register)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	row := decodeBody(t, w)["travel"].(map[string]interface{})
	if row["start_location_address"] != "1 Main St" || row["destination_address"] != "2 Side St" {
		t.Fatalf("address projection wrong: %v", row)
	}
	if row["start_city_name"] != "Testville" || row["destination_country_name"] != "Testland" {
		t.Fatalf("city/country projection wrong: %v", row)
	}
	if row["driver_firstname"] != "Test" || row["car_model"] != "X" {
		t.Fatalf("driver/car projection wrong: %v", row)
	}
	if row["passengers_count"].(float64) != 1 {
		t.Fatalf("expected passengers_count 1, got %v", row["passengers_count"])
	}
	if row["travel_av_seats"].(float64) != 3 {
		t.Fatalf("expected travel_av_seats 3, got %v", row["travel_av_seats"])
	}

	// Missing id is a 404, same as every other entity.
	w2 := doJSON(t, http.MethodGet, "/travels/99", nil, register)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w2.Code)
	}
}
