package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"carpool-api/models"
)

func TestCreateAndGetCountry(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCountryController(db)
	register := func(r *gin.Engine) {
		r.POST("/countries", cc.CreateCountry)
		r.GET("/countries/:id", cc.GetCountry)
	}

	w := doJSON(t, http.MethodPost, "/countries", gin.H{"name": "Testland"}, register)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	payload := decodeBody(t, w)
	country, ok := payload["country"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected country key, got %v", payload)
	}
	if country["name"] != "Testland" {
		t.Fatalf("unexpected name %v", country["name"])
	}
	if country["id"].(float64) != 1 {
		t.Fatalf("expected id 1 got %v", country["id"])
	}

	// Round-trip by id
	w2 := doJSON(t, http.MethodGet, "/countries/1", nil, register)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	got := decodeBody(t, w2)["country"].(map[string]interface{})
	if got["name"] != "Testland" {
		t.Fatalf("round-trip name mismatch: %v", got["name"])
	}
}

func TestCreateCountryValidationAndConflict(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCountryController(db)
	register := func(r *gin.Engine) {
		r.POST("/countries", cc.CreateCountry)
	}

	w := doJSON(t, http.MethodPost, "/countries", gin.H{"name": ""}, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	payload := decodeBody(t, w)
	if _, ok := payload["errors"].(map[string]interface{})["name"]; !ok {
		t.Fatalf("expected name error, got %v", payload)
	}

	seedCountry(t, db, "Testland")
	w2 := doJSON(t, http.MethodPost, "/countries", gin.H{"name": "Testland"}, register)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w2.Code)
	}

	var count int64
	db.Model(&models.Country{}).Count(&count)
	if count != 1 {
		t.Fatalf("conflict must not create a row, have %d", count)
	}
}

func TestGetCountryNotFound(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCountryController(db)
	register := func(r *gin.Engine) {
		r.GET("/countries/:id", cc.GetCountry)
	}

	w := doJSON(t, http.MethodGet, "/countries/42", nil, register)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestDeleteCountryRestrictsDependents(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCountryController(db)
	register := func(r *gin.Engine) {
		r.DELETE("/countries/:id", cc.DeleteCountry)
	}

	country := seedCountry(t, db, "Testland")
	seedCity(t, db, "Testville", country.ID)

	w := doJSON(t, http.MethodDelete, "/countries/1", nil, register)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for country with cities got %d", w.Code)
	}

	// Without dependents the delete goes through.
	empty := seedCountry(t, db, "Emptyland")
	w2 := doJSON(t, http.MethodDelete, "/countries/2", nil, register)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	var gone models.Country
	if err := db.First(&gone, empty.ID).Error; err == nil {
		t.Fatalf("expected country %d deleted", empty.ID)
	}
}

func TestDeleteCountryFailedDependentCheck(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCountryController(db)
	register := func(r *gin.Engine) {
		r.DELETE("/countries/:id", cc.DeleteCountry)
	}

	country := seedCountry(t, db, "Testland")

	// When the dependent count cannot run it must not read as "no
	// dependents": the delete is refused, not silently performed.
	if err := db.Exec("DROP TABLE cities").Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}
	w := doJSON(t, http.MethodDelete, "/countries/1", nil, register)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
	var still models.Country
	if err := db.First(&still, country.ID).Error; err != nil {
		t.Fatalf("country must survive a failed dependent check: %v", err)
	}
}

func TestCityRequiresExistingCountry(t *testing.T) {
	db := setupTestDB(t)
	cc := NewCityController(db)
	register := func(r *gin.Engine) {
		r.POST("/cities", cc.CreateCity)
	}

	w := doJSON(t, http.MethodPost, "/cities", gin.H{"name": "Testville", "postalcode": "0000", "country_id": 99}, register)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	payload := decodeBody(t, w)
	if _, ok := payload["errors"].(map[string]interface{})["country_id"]; !ok {
		t.Fatalf("expected country_id error, got %v", payload)
	}

	seedCountry(t, db, "Testland")
	w2 := doJSON(t, http.MethodPost, "/cities", gin.H{"name": "Testville", "postalcode": "0000", "country_id": 1}, register)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestBrandConflictAndRestrictDelete(t *testing.T) {
	db := setupTestDB(t)
	bc := NewBrandController(db)
	register := func(r *gin.Engine) {
		r.POST("/brands", bc.CreateBrand)
		r.DELETE("/brands/:id", bc.DeleteBrand)
	}

	w := doJSON(t, http.MethodPost, "/brands", gin.H{"name": "Toyota"}, register)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	w2 := doJSON(t, http.MethodPost, "/brands", gin.H{"name": "Toyota"}, register)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w2.Code)
	}

	brandID := uint(1)
	db.Create(&models.Car{Model: "Corolla", Seats: 5, BrandID: &brandID})
	w3 := doJSON(t, http.MethodDelete, "/brands/1", nil, register)
	if w3.Code != http.StatusConflict {
		t.Fatalf("expected 409 for brand with cars got %d", w3.Code)
	}
}
