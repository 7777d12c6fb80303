package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carpool-api/models"
	"carpool-api/repositories"
	"carpool-api/services"
	"carpool-api/utils"
)

type AuthController struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, jwtSecret string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Bio       string `json:"bio"`
	Address   string `json:"address"`
	CityID    uint   `json:"city_id"`

	// A car can be linked by id or registered by value.
	CarID    *uint  `json:"car_id"`
	CarModel string `json:"car_model"`
	CarSeats int    `json:"car_seats"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
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
	if req.Password == "" {
		errs.add("password", "The password field is required.")
	} else if !utils.IsValidPassword(req.Password) {
		errs.add("password", "The password must be at least 6 characters.")
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
		if err := ac.db.First(&city, req.CityID).Error; err != nil {
			errs.add("city_id", "The selected city_id is invalid.")
		}
	}
	if req.CarID != nil {
		var car models.Car
		if err := ac.db.First(&car, *req.CarID).Error; err != nil {
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

	// Duplicate email gets its own conflict signal before the unique
	// index would fire with a generic failure.
	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendServerError(c)
		return
	}

	// Location (and a by-value car) are resolved inside the same
	// transaction as the user insert, so a failed registration leaves
	// no orphan rows behind.
	var user models.User
	err = ac.db.Transaction(func(tx *gorm.DB) error {
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

		user = models.User{
			Firstname:  req.Firstname,
			Lastname:   req.Lastname,
			Email:      req.Email,
			Password:   string(hashedPassword),
			Phone:      strings.TrimSpace(req.Phone),
			DOB:        req.DOB,
			Bio:        req.Bio,
			LocationID: location.ID,
			CarID:      carID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		utils.SendServerError(c)
		return
	}

	go func() {
		if err := ac.emailService.SendWelcomeEmail(user.Email, user.Firstname); err != nil {
			log.Printf("Failed to send welcome email: %v", err)
		}
	}()

	utils.SendCreated(c, "Registration successful", "user", user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) generateJWT(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
