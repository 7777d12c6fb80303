package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/utils"
)

type CityController struct {
	db *gorm.DB
}

func NewCityController(db *gorm.DB) *CityController {
	return &CityController{db: db}
}

type CreateCityRequest struct {
	Name       string `json:"name"`
	PostalCode string `json:"postalcode"`
	CountryID  uint   `json:"country_id"`
}

func (cc *CityController) GetCities(c *gin.Context) {
	var cities []models.City
	if err := cc.db.Preload("Country").Find(&cities).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "cities", cities)
}

func (cc *CityController) GetCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "City not found")
		return
	}

	var city models.City
	if err := cc.db.Preload("Country").First(&city, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "City not found")
		return
	}

	utils.SendResource(c, "city", city)
}

func (cc *CityController) CreateCity(c *gin.Context) {
	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	errs := fieldErrors{}
	if req.Name == "" {
		errs.add("name", "The name field is required.")
	}
	if strings.TrimSpace(req.PostalCode) == "" {
		errs.add("postalcode", "The postalcode field is required.")
	}
	if req.CountryID == 0 {
		errs.add("country_id", "The country_id field is required.")
	} else {
		var country models.Country
		if err := cc.db.First(&country, req.CountryID).Error; err != nil {
			errs.add("country_id", "The selected country_id is invalid.")
		}
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	var existing models.City
	if err := cc.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "City already exists")
		return
	}

	city := models.City{
		Name:       req.Name,
		PostalCode: strings.TrimSpace(req.PostalCode),
		CountryID:  req.CountryID,
	}
	if err := cc.db.Create(&city).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "City created successfully", "city", city)
}

func (cc *CityController) DeleteCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "City not found")
		return
	}

	var city models.City
	if err := cc.db.First(&city, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "City not found")
		return
	}

	var dependents int64
	if err := cc.db.Model(&models.Location{}).Where("city_id = ?", id).Count(&dependents).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	if dependents > 0 {
		utils.SendError(c, http.StatusConflict, "City has dependent locations")
		return
	}

	if err := cc.db.Delete(&city).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "City deleted successfully")
}
