package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/repositories"
	"carpool-api/utils"
)

var (
	errAlreadyJoined = errors.New("already joined")
	errTravelFull    = errors.New("travel full")
)

type PassengerController struct {
	db *gorm.DB
}

func NewPassengerController(db *gorm.DB) *PassengerController {
	return &PassengerController{db: db}
}

type JoinTravelRequest struct {
	UserID   uint `json:"user_id"`
	TravelID uint `json:"travel_id"`
}

// JoinTravel boards a user onto a travel. Duplicate boarding and
// boarding past the seat capacity are rejected inside the insert
// transaction; the unique (user_id, travel_id) index backs the
// duplicate check against concurrent joins.
func (pc *PassengerController) JoinTravel(c *gin.Context) {
	var req JoinTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := fieldErrors{}
	var user models.User
	if req.UserID == 0 {
		errs.add("user_id", "The user_id field is required.")
	} else if err := pc.db.First(&user, req.UserID).Error; err != nil {
		errs.add("user_id", "The selected user_id is invalid.")
	}
	var travel models.Travel
	if req.TravelID == 0 {
		errs.add("travel_id", "The travel_id field is required.")
	} else if err := pc.db.First(&travel, req.TravelID).Error; err != nil {
		errs.add("travel_id", "The selected travel_id is invalid.")
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	passenger := models.TravelPassenger{
		UserID:   req.UserID,
		TravelID: req.TravelID,
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		var existing models.TravelPassenger
		err := tx.Where("user_id = ? AND travel_id = ?", req.UserID, req.TravelID).
			First(&existing).Error
		if err == nil {
			return errAlreadyJoined
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		boarded, err := repositories.NewTravelRepository(tx).CountPassengers(req.TravelID)
		if err != nil {
			return err
		}
		if boarded >= int64(travel.AvailableSeats) {
			return errTravelFull
		}

		return tx.Create(&passenger).Error
	})
	switch {
	case errors.Is(err, errAlreadyJoined):
		utils.SendError(c, http.StatusConflict, "User already joined this travel")
		return
	case errors.Is(err, errTravelFull):
		utils.SendValidationErrors(c, fieldErrors{"travel_id": {"The travel has no available seats left."}})
		return
	case err != nil:
		utils.SendServerError(c)
		return
	}

	utils.SendCreated(c, "Joined travel successfully", "passenger", passenger)
}

func (pc *PassengerController) LeaveTravel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "Passenger not found")
		return
	}

	var passenger models.TravelPassenger
	if err := pc.db.First(&passenger, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Passenger not found")
		return
	}

	if err := pc.db.Delete(&passenger).Error; err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "Left travel successfully")
}
