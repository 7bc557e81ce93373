package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ActivityHandler holds the placeholder activity endpoints.
type ActivityHandler struct{}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler() *ActivityHandler {
	return &ActivityHandler{}
}

// ListTripActivities godoc
// @Summary List activities for a trip
// @Tags activities
// @Produce json
// @Param tripId path int true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/trip/{tripId} [get]
func (h *ActivityHandler) ListTripActivities(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":    fmt.Sprintf("Get activities for trip %s - TODO: Implement", c.Param("tripId")),
		"activities": []interface{}{},
	})
}

// GetActivity godoc
// @Summary Get an activity by ID
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Get activity %s endpoint - TODO: Implement", c.Param("id")),
	})
}

// CreateActivity godoc
// @Summary Create an activity for a trip
// @Tags activities
// @Produce json
// @Param tripId path int true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/trip/{tripId} [post]
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Create activity for trip %s - TODO: Implement", c.Param("tripId")),
	})
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/{id} [put]
func (h *ActivityHandler) UpdateActivity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Update activity %s endpoint - TODO: Implement", c.Param("id")),
	})
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Delete activity %s endpoint - TODO: Implement", c.Param("id")),
	})
}
