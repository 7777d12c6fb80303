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

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

type UpdateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Bio       string `json:"bio"`
	Address   string `json:"address"`
	CityID    uint   `json:"city_id"`
	CarID     *uint  `json:"car_id"`
	CarModel  string `json:"car_model"`
	CarSeats  int    `json:"car_seats"`
}

type PatchUserRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	DOB       *string `json:"dob"`
	Bio       *string `json:"bio"`
	Address   *string `json:"address"`
	CityID    *uint   `json:"city_id"`
	CarID     *uint   `json:"car_id"`
}

func (uc *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	err := uc.db.Preload("Car.Brand").Preload("Location.City.Country").Find(&users).Error
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendResource(c, "users", users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	err := uc.db.Preload("Car.Brand").Preload("Location.City.Country").First(&user, id).Error
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResource(c, "user", user)
}

// UpdateUser is the full-replace path: every identity field except the
// password is required again.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)
	req.Email = strings.TrimSpace(req.Email)
	req.Address = strings.TrimSpace(req.Address)
	req.CarModel = strings.TrimSpace(req.CarModel)

	errs := fieldErrors{}
	if req.Firstname == "" {
		errs.add("firstname", "The firstname field is required.")
	}
	if req.Lastname == "" {
		errs.add("lastname", "The lastname field is required.")
	}
	if req.Email == "" {
		errs.add("email", "The email field is required.")
	} else if !utils.IsValidEmail(req.Email) {
		errs.add("email", "The email must be a valid email address.")
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs.add("phone", "The phone field is required.")
	}
	if req.DOB == "" {
		errs.add("dob", "The dob field is required.")
	} else if !utils.IsValidDate(req.DOB) {
		errs.add("dob", "The dob is not a valid date.")
	}
	if req.Address == "" {
		errs.add("address", "The address field is required.")
	}
	if req.CityID == 0 {
		errs.add("city_id", "The city_id field is required.")
	} else {
		var city models.City
		if err := uc.db.First(&city, req.CityID).Error; err != nil {
			errs.add("city_id", "The selected city_id is invalid.")
		}
	}
	if req.CarID != nil {
		var car models.Car
		if err := uc.db.First(&car, *req.CarID).Error; err != nil {
			errs.add("car_id", "The selected car_id is invalid.")
		}
	} else if req.CarModel != "" || req.CarSeats != 0 {
		if req.CarModel == "" {
			errs.add("car_model", "The car_model field is required when car_seats is present.")
		}
		if req.CarSeats < 1 {
			errs.add("car_seats", "The car_seats field must be at least 1.")
		}
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	// Uniqueness check excludes the user's own row.
	var existing models.User
	if err := uc.db.Where("email = ? AND id <> ?", req.Email, user.ID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		location, err := repositories.NewLocationRepository(tx).FirstOrCreate(req.Address, req.CityID)
		if err != nil {
			return err
		}

		carID := req.CarID
		if carID == nil && req.CarModel != "" {
			car, err := repositories.NewCarRepository(tx).FirstOrCreate(req.CarModel, req.CarSeats)
			if err != nil {
				return err
			}
			carID = &car.ID
		}

		updates := map[string]interface{}{
			"firstname":   req.Firstname,
			"lastname":    req.Lastname,
			"email":       req.Email,
			"phone":       strings.TrimSpace(req.Phone),
			"dob":         req.DOB,
			"bio":         req.Bio,
			"location_id": location.ID,
			"car_id":      carID,
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "User updated successfully")
}

// PatchUser updates any subset of fields. A supplied address or city
// is merged with the user's current location: the row is edited in
// place when nothing else references it, otherwise the user is
// repointed at a first-or-create row and the shared one is left alone.
func (uc *UserController) PatchUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := uc.db.Preload("Location").First(&user, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var req PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := fieldErrors{}
	if req.Firstname != nil && strings.TrimSpace(*req.Firstname) == "" {
		errs.add("firstname", "The firstname field must not be empty.")
	}
	if req.Lastname != nil && strings.TrimSpace(*req.Lastname) == "" {
		errs.add("lastname", "The lastname field must not be empty.")
	}
	if req.Email != nil && !utils.IsValidEmail(strings.TrimSpace(*req.Email)) {
		errs.add("email", "The email must be a valid email address.")
	}
	if req.DOB != nil && !utils.IsValidDate(*req.DOB) {
		errs.add("dob", "The dob is not a valid date.")
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) == "" {
		errs.add("address", "The address field must not be empty.")
	}
	if req.CityID != nil {
		var city models.City
		if err := uc.db.First(&city, *req.CityID).Error; err != nil {
			errs.add("city_id", "The selected city_id is invalid.")
		}
	}
	if req.CarID != nil {
		var car models.Car
		if err := uc.db.First(&car, *req.CarID).Error; err != nil {
			errs.add("car_id", "The selected car_id is invalid.")
		}
	}
	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	if req.Email != nil {
		var existing models.User
		if err := uc.db.Where("email = ? AND id <> ?", strings.TrimSpace(*req.Email), user.ID).First(&existing).Error; err == nil {
			utils.SendError(c, http.StatusConflict, "Email already registered")
			return
		}
	}

	updates := map[string]interface{}{}
	if req.Firstname != nil {
		updates["firstname"] = strings.TrimSpace(*req.Firstname)
	}
	if req.Lastname != nil {
		updates["lastname"] = strings.TrimSpace(*req.Lastname)
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.DOB != nil {
		updates["dob"] = *req.DOB
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.CarID != nil {
		updates["car_id"] = *req.CarID
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if req.Address != nil || req.CityID != nil {
			locationID, err := uc.resolveLocation(tx, &user, req.Address, req.CityID)
			if err != nil {
				return err
			}
			updates["location_id"] = locationID
		}

		if len(updates) == 0 {
			return nil
		}
		// A fresh statement keeps the preloaded Location association
		// from overwriting location_id at save time.
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
	})
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "User updated successfully")
}

// resolveLocation merges the supplied address/city with the user's
// current location values and returns the location id to point at.
func (uc *UserController) resolveLocation(tx *gorm.DB, user *models.User, address *string, cityID *uint) (uint, error) {
	newAddress := user.Location.Address
	newCityID := user.Location.CityID
	if address != nil {
		newAddress = strings.TrimSpace(*address)
	}
	if cityID != nil {
		newCityID = *cityID
	}

	if newAddress == user.Location.Address && newCityID == user.Location.CityID {
		return user.LocationID, nil
	}

	// Another row already holding the target content wins; the unique
	// (address, city_id) index forbids a second copy.
	var match models.Location
	err := tx.Where("address = ? AND city_id = ?", newAddress, newCityID).First(&match).Error
	if err == nil {
		return match.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	refs, err := repositories.NewLocationRepository(tx).CountReferences(user.LocationID, user.ID)
	if err != nil {
		return 0, err
	}
	if refs == 0 {
		err := tx.Model(&models.Location{}).Where("id = ?", user.LocationID).
			Updates(map[string]interface{}{"address": newAddress, "city_id": newCityID}).Error
		return user.LocationID, err
	}

	location, err := repositories.NewLocationRepository(tx).FirstOrCreate(newAddress, newCityID)
	if err != nil {
		return 0, err
	}
	return location.ID, nil
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	// Restrict: travels keep their driver reference, so a driving
	// user cannot be removed while those rows exist.
	var driving int64
	if err := uc.db.Model(&models.Travel{}).Where("user_id = ?", id).Count(&driving).Error; err != nil {
		utils.SendServerError(c)
		return
	}
	if driving > 0 {
		utils.SendError(c, http.StatusConflict, "User is the driver of existing travels")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.TravelPassenger{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.SendServerError(c)
		return
	}

	utils.SendMessage(c, "User deleted successfully")
}
