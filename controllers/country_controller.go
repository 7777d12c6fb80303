package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/utils"
)

type CountryController struct {
	db *gorm.DB
}

func NewCountryController(db *gorm.DB) *CountryController {
	return &CountryController{db: db}
}

type CreateCountryRequest struct {
	Name string `json:"name"`
}

func (cc *CountryController) GetCountries(c *gin.Context) {
	var countries []models.Country
	if err := cc.db.Find(&countries).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "countries", countries)
}

func (cc *CountryController) GetCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Country not found")
		return
	}

	var country models.Country
	if err := cc.db.First(&country, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Country not found")
		return
	}

	utils.SendResource(c, "country", country)
}

func (cc *CountryController) CreateCountry(c *gin.Context) {
	var req CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.SendValidationErrors(c, fieldErrors{"name": {"The name field is required."}})
		return
	}

	var existing models.Country
	if err := cc.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Country already exists")
		return
	}

	country := models.Country{Name: req.Name}
	if err := cc.db.Create(&country).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Country created successfully", "country", country)
}

func (cc *CountryController) DeleteCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Country not found")
		return
	}

	var country models.Country
	if err := cc.db.First(&country, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Country not found")
		return
	}

	// Restrict delete: removing a country with cities would leave
	// dangling country_id references.
	var dependents int64
	if err := cc.db.Model(&models.City{}).Where("country_id = ?", id).Count(&dependents).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	if dependents > 0 {
		utils.SendError(c, http.StatusConflict, "Country has dependent cities")
		return
	}

	if err := cc.db.Delete(&country).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Country deleted successfully")
}
