package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/utils"
)

type BrandController struct {
	db *gorm.DB
}

func NewBrandController(db *gorm.DB) *BrandController {
	return &BrandController{db: db}
}

type CreateBrandRequest struct {
	Name string `json:"name"`
}

func (bc *BrandController) GetBrands(c *gin.Context) {
	var brands []models.Brand
	if err := bc.db.Preload("Cars").Find(&brands).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "brands", brands)
}

func (bc *BrandController) GetBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Brand not found")
		return
	}

	var brand models.Brand
	if err := bc.db.Preload("Cars").First(&brand, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Brand not found")
		return
	}

	utils.SendResource(c, "brand", brand)
}

func (bc *BrandController) CreateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.SendValidationErrors(c, fieldErrors{"name": {"The name field is required."}})
		return
	}

	var existing models.Brand
	if err := bc.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Brand already exists")
		return
	}

	brand := models.Brand{Name: req.Name}
	if err := bc.db.Create(&brand).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Brand created successfully", "brand", brand)
}

func (bc *BrandController) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Brand not found")
		return
	}

	var brand models.Brand
	if err := bc.db.First(&brand, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Brand not found")
		return
	}

	var dependents int64
	if err := bc.db.Model(&models.Car{}).Where("brand_id = ?", id).Count(&dependents).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	if dependents > 0 {
		utils.SendError(c, http.StatusConflict, "Brand has dependent cars")
		return
	}

	if err := bc.db.Delete(&brand).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Brand deleted successfully")
}
