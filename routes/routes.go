package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carpool-api/config"
	"carpool-api/controllers"
	"carpool-api/middleware"
	"carpool-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	countryController := controllers.NewCountryController(db)
	cityController := controllers.NewCityController(db)
	brandController := controllers.NewBrandController(db)
	locationController := controllers.NewLocationController(db)
	carController := controllers.NewCarController(db)
	userController := controllers.NewUserController(db)
	travelController := controllers.NewTravelController(db)
	passengerController := controllers.NewPassengerController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	v1.GET("/countries", countryController.GetCountries)
	v1.GET("/countries/:id", countryController.GetCountry)
	v1.GET("/cities", cityController.GetCities)
	v1.GET("/cities/:id", cityController.GetCity)
	v1.GET("/brands", brandController.GetBrands)
	v1.GET("/brands/:id", brandController.GetBrand)
	v1.GET("/locations", locationController.GetLocations)
	v1.GET("/locations/:id", locationController.GetLocation)
	v1.GET("/cars", carController.GetCars)
	v1.GET("/cars/:id", carController.GetCar)
	v1.GET("/travels", travelController.GetTravels)
	v1.GET("/travels/:id", travelController.GetTravel)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		countries := protected.Group("/countries")
		{
			countries.POST("/", countryController.CreateCountry)
			countries.DELETE("/:id", countryController.DeleteCountry)
		}

		cities := protected.Group("/cities")
		{
			cities.POST("/", cityController.CreateCity)
			cities.DELETE("/:id", cityController.DeleteCity)
		}

		brands := protected.Group("/brands")
		{
			brands.POST("/", brandController.CreateBrand)
			brands.DELETE("/:id", brandController.DeleteBrand)
		}

		locations := protected.Group("/locations")
		{
			locations.POST("/", locationController.CreateLocation)
			locations.DELETE("/:id", locationController.DeleteLocation)
		}

		cars := protected.Group("/cars")
		{
			cars.POST("/", carController.CreateCar)
			cars.PUT("/:id", carController.UpdateCar)
			cars.DELETE("/:id", carController.DeleteCar)
		}

		users := protected.Group("/users")
		{
			users.GET("/", userController.GetUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.PATCH("/:id", userController.PatchUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		travels := protected.Group("/travels")
		{
			travels.POST("/", travelController.CreateTravel)
		}

		passengers := protected.Group("/passengers")
		{
			passengers.POST("/", passengerController.JoinTravel)
			passengers.DELETE("/:id", passengerController.LeaveTravel)
		}
	}
}
