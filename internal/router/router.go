package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tripplanner/internal/auth"
	"tripplanner/internal/config"
	"tripplanner/internal/errors"
	"tripplanner/internal/handler"
)

const (
	projectName = "Travel Planner API"
	version     = "1.0.0"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	tripHandler *handler.TripHandler,
	activityHandler *handler.ActivityHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Welcome to " + projectName,
			"version": version,
			"status":  "running",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public auth routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	// Routes requiring a valid bearer token
	authGroup.GET("/me", authHandler.Me, BearerAuth(jwtService, tokenStore))

	// Itinerary placeholders
	trips := e.Group("/trips")
	trips.GET("", tripHandler.ListTrips)
	trips.POST("", tripHandler.CreateTrip)
	trips.GET("/:id", tripHandler.GetTrip)
	trips.PUT("/:id", tripHandler.UpdateTrip)
	trips.DELETE("/:id", tripHandler.DeleteTrip)

	activities := e.Group("/activities")
	activities.GET("/trip/:tripId", activityHandler.ListTripActivities)
	activities.POST("/trip/:tripId", activityHandler.CreateActivity)
	activities.GET("/:id", activityHandler.GetActivity)
	activities.PUT("/:id", activityHandler.UpdateActivity)
	activities.DELETE("/:id", activityHandler.DeleteActivity)
}

// BearerAuth returns an echo-jwt middleware that validates access tokens
// through the token service and the revocation blacklist. Every failure mode
// produces the same 401 so callers cannot tell them apart.
func BearerAuth(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if claims.ID != "" && tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID) {
				return nil, auth.ErrInvalidToken
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, errors.New("could not validate credentials", errors.CodeInvalidToken))
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
