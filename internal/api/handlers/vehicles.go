package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/services"
)

// VehicleHandler handles vehicle HTTP requests
type VehicleHandler struct {
	deliveryService *services.DeliveryService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(deliveryService *services.DeliveryService) *VehicleHandler {
	return &VehicleHandler{deliveryService: deliveryService}
}

// HandleListVehicles returns all vehicles
func (h *VehicleHandler) HandleListVehicles(c *gin.Context) {
	vehicles, err := h.deliveryService.ListVehicles(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// HandleAvailableVehicles returns the vehicles whose working window covers
// the requested start and end times
func (h *VehicleHandler) HandleAvailableVehicles(c *gin.Context) {
	startTime := c.Query("startTime")
	endTime := c.Query("endTime")

	vehicles, err := h.deliveryService.AvailableVehicles(c.Request.Context(), startTime, endTime)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format. Use HH:mm:ss (e.g., 08:00:00)."})
			return
		}
		log.Error().Err(err).Msg("Failed to query available vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query available vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// HandleGetVehicle returns one vehicle by id
func (h *VehicleHandler) HandleGetVehicle(c *gin.Context) {
	vehicle, err := h.deliveryService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Error().Err(err).Str("vehicle_id", c.Param("id")).Msg("Failed to get vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// HandleCreateVehicle creates a vehicle
func (h *VehicleHandler) HandleCreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		log.Error().Err(err).Msg("Invalid vehicle request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.deliveryService.CreateVehicle(c.Request.Context(), &vehicle); err != nil {
		log.Error().Err(err).Str("vehicle_id", vehicle.VehicleID).Msg("Failed to create vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/vehicles/%s", vehicle.VehicleID))
	c.JSON(http.StatusCreated, vehicle)
}

// HandleUpdateVehicle replaces the mutable fields of a vehicle
func (h *VehicleHandler) HandleUpdateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		log.Error().Err(err).Msg("Invalid vehicle request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.deliveryService.UpdateVehicle(c.Request.Context(), c.Param("id"), &vehicle)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle ID mismatch"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		default:
			log.Error().Err(err).Str("vehicle_id", c.Param("id")).Msg("Failed to update vehicle")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDeleteVehicle deletes a vehicle
func (h *VehicleHandler) HandleDeleteVehicle(c *gin.Context) {
	err := h.deliveryService.DeleteVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Error().Err(err).Str("vehicle_id", c.Param("id")).Msg("Failed to delete vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the handler's routes
func (h *VehicleHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/vehicles")
	group.GET("", h.HandleListVehicles)
	group.GET("/available", h.HandleAvailableVehicles)
	group.GET("/:id", h.HandleGetVehicle)
	group.POST("", h.HandleCreateVehicle)
	group.PUT("/:id", h.HandleUpdateVehicle)
	group.DELETE("/:id", h.HandleDeleteVehicle)
}
