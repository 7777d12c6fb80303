package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/utils"
)

type CarController struct {
	db *gorm.DB
}

func NewCarController(db *gorm.DB) *CarController {
	return &CarController{db: db}
}

type CreateCarRequest struct {
	Model   string `json:"model"`
	Seats   int    `json:"seats"`
	BrandID *uint  `json:"brand_id"`
}

func (cc *CarController) validate(req *CreateCarRequest) fieldErrors {
	errs := fieldErrors{}
	req.Model = strings.TrimSpace(req.Model)
	if req.Model == "" {
		errs.add("model", "The model field is required.")
	}
	if req.Seats < 1 {
		errs.add("seats", "The seats field must be at least 1.")
	}
	if req.BrandID != nil {
		var brand models.Brand
		if err := cc.db.First(&brand, *req.BrandID).Error; err != nil {
			errs.add("brand_id", "The selected brand_id is invalid.")
		}
	}
	return errs
}

func (cc *CarController) GetCars(c *gin.Context) {
	var cars []models.Car
	if err := cc.db.Preload("Brand").Find(&cars).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "cars", cars)
}

func (cc *CarController) GetCar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	var car models.Car
	if err := cc.db.Preload("Brand").First(&car, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	utils.SendResource(c, "car", car)
}

func (cc *CarController) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := cc.validate(&req); len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	car := models.Car{Model: req.Model, Seats: req.Seats, BrandID: req.BrandID}
	if err := cc.db.Create(&car).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Car created successfully", "car", car)
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	var car models.Car
	if err := cc.db.First(&car, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := cc.validate(&req); len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	updates := map[string]interface{}{
		"model":    req.Model,
		"seats":    req.Seats,
		"brand_id": req.BrandID,
	}
	if err := cc.db.Model(&car).Updates(updates).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Car updated successfully")
}

func (cc *CarController) DeleteCar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	var car models.Car
	if err := cc.db.First(&car, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Car not found")
		return
	}

	var users int64
	if err := cc.db.Model(&models.User{}).Where("car_id = ?", id).Count(&users).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	var travels int64
	if err := cc.db.Model(&models.Travel{}).Where("car_id = ?", id).Count(&travels).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	if users+travels > 0 {
		utils.SendError(c, http.StatusConflict, "Car is referenced by users or travels")
		return
	}

	if err := cc.db.Delete(&car).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Car deleted successfully")
}
