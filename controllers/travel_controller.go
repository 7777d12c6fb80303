package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/repositories"
	"carpool-api/utils"
)

type TravelController struct {
	db   *gorm.DB
	repo *repositories.TravelRepository
}

func NewTravelController(db *gorm.DB) *TravelController {
	return &TravelController{
		db:   db,
		repo: repositories.NewTravelRepository(db),
	}
}

type CreateTravelRequest struct {
	StartLocationID uint    `json:"startlocation_id"`
	DestinationID   uint    `json:"destination_id"`
	Date            string  `json:"date"`
	Fee             float64 `json:"fee"`
	Km              float64 `json:"km"`
	Price           float64 `json:"price"`
	UserID          uint    `json:"user_id"`
	CarID           uint    `json:"car_id"`
	AvSeats         int     `json:"av_seats"`
}

func (tc *TravelController) CreateTravel(c *gin.Context) {
	var req CreateTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The car is resolved before everything else: the seat bound
	// depends on it.
	var car models.Car
	if err := tc.db.First(&car, req.CarID).Error; err != nil {
		utils.SendValidationErrors(c, fieldErrors{"car_id": {"car not found"}})
		return
	}
	maxSeats := car.Seats - 1 // one seat belongs to the driver

	errs := fieldErrors{}
	var startLoc models.Location
	if req.StartLocationID == 0 {
		errs.add("startlocation_id", "The startlocation_id field is required.")
	} else if err := tc.db.First(&startLoc, req.StartLocationID).Error; err != nil {
		errs.add("startlocation_id", "The selected startlocation_id is invalid.")
	}
	var destLoc models.Location
	if req.DestinationID == 0 {
		errs.add("destination_id", "The destination_id field is required.")
	} else if err := tc.db.First(&destLoc, req.DestinationID).Error; err != nil {
		errs.add("destination_id", "The selected destination_id is invalid.")
	}
	if req.Date == "" {
		errs.add("date", "The date field is required.")
	} else if !utils.IsValidDate(req.Date) {
		errs.add("date", "The date is not a valid date.")
	} else if utils.IsPastDate(req.Date) {
		errs.add("date", "The date must be today or later.")
	}
	if req.Fee < 0 {
		errs.add("fee", "The fee must be at least 0.")
	}
	if req.Km < 0 {
		errs.add("km", "The km must be at least 0.")
	}
	if req.Price < 0 {
		errs.add("price", "The price must be at least 0.")
	}
	var driver models.User
	if req.UserID == 0 {
		errs.add("user_id", "The user_id field is required.")
	} else if err := tc.db.First(&driver, req.UserID).Error; err != nil {
		errs.add("user_id", "The selected user_id is invalid.")
	}
	if req.AvSeats < 1 || req.AvSeats > maxSeats {
		errs.add("av_seats", fmt.Sprintf("The av_seats must be between 1 and %d.", maxSeats))
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	travel := models.Travel{
		StartLocationID:       req.StartLocationID,
		DestinationLocationID: req.DestinationID,
		Date:                  req.Date,
		Fee:                   req.Fee,
		Km:                    req.Km,
		Price:                 req.Price,
		UserID:                req.UserID,
		CarID:                 req.CarID,
		AvailableSeats:        req.AvSeats,
	}

	// Single-row insert, wrapped for rollback-on-failure only.
	err := tc.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&travel).Error
	})
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Travel created successfully", "travel", travel)
}

// GetTravels lists the denormalized projection of every travel dated
// today or later.
func (tc *TravelController) GetTravels(c *gin.Context) {
	rows, err := tc.repo.ListUpcoming(utils.Today())
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "travels", rows)
}

func (tc *TravelController) GetTravel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Travel not found")
		return
	}

	row, err := tc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTravelNotFound) {
			utils.SendError(c, http.StatusNotFound, "Travel not found")
			return
		}
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "travel", row)
}
