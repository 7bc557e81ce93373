package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TripHandler holds the placeholder trip endpoints. The routes are reserved;
// the itinerary logic behind them is not part of this service yet.
type TripHandler struct{}

// NewTripHandler creates a new trip handler.
func NewTripHandler() *TripHandler {
	return &TripHandler{}
}

// ListTrips godoc
// @Summary List trips for the current user
// @Tags trips
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /trips [get]
func (h *TripHandler) ListTrips(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Get all trips endpoint - TODO: Implement",
		"trips":   []interface{}{},
	})
}

// GetTrip godoc
// @Summary Get a trip by ID
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /trips/{id} [get]
func (h *TripHandler) GetTrip(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Get trip %s endpoint - TODO: Implement", c.Param("id")),
	})
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags trips
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /trips [post]
func (h *TripHandler) CreateTrip(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Create trip endpoint - TODO: Implement",
	})
}

// UpdateTrip godoc
// @Summary Update a trip
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /trips/{id} [put]
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Update trip %s endpoint - TODO: Implement", c.Param("id")),
	})
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /trips/{id} [delete]
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Delete trip %s endpoint - TODO: Implement", c.Param("id")),
	})
}
