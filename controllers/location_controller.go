package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/repositories"
	"carpool-api/utils"
)

type LocationController struct {
	db *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{db: db}
}

type CreateLocationRequest struct {
	Address string `json:"address"`
	CityID  uint   `json:"city_id"`
}

func (lc *LocationController) GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := lc.db.Preload("City.Country").Find(&locations).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "locations", locations)
}

func (lc *LocationController) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Location not found")
		return
	}

	location, err := repositories.NewLocationRepository(lc.db).GetWithCity(id)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Location not found")
		return
	}

	utils.SendResource(c, "location", location)
}

func (lc *LocationController) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Address = strings.TrimSpace(req.Address)

	errs := fieldErrors{}
	if req.Address == "" {
		errs.add("address", "The address field is required.")
	}
	if req.CityID == 0 {
		errs.add("city_id", "The city_id field is required.")
	} else {
		var city models.City
		if err := lc.db.First(&city, req.CityID).Error; err != nil {
			errs.add("city_id", "The selected city_id is invalid.")
		}
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	var existing models.Location
	if err := lc.db.Where("address = ? AND city_id = ?", req.Address, req.CityID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Location already exists")
		return
	}

	location := models.Location{Address: req.Address, CityID: req.CityID}
	if err := lc.db.Create(&location).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Location created successfully", "location", location)
}

func (lc *LocationController) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Location not found")
		return
	}

	var location models.Location
	if err := lc.db.First(&location, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Location not found")
		return
	}

	refs, err := repositories.NewLocationRepository(lc.db).CountReferences(id, 0)
	if err != nil {
		utils.SendServerError(c)
		return
	}
	if refs > 0 {
		utils.SendError(c, http.StatusConflict, "Location is referenced by users or travels")
		return
	}

	if err := lc.db.Delete(&location).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Location deleted successfully")
}
