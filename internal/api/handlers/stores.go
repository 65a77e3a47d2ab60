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

// StoreHandler handles store HTTP requests
type StoreHandler struct {
	deliveryService *services.DeliveryService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(deliveryService *services.DeliveryService) *StoreHandler {
	return &StoreHandler{deliveryService: deliveryService}
}

// HandleListStores returns all stores
func (h *StoreHandler) HandleListStores(c *gin.Context) {
	stores, err := h.deliveryService.ListStores(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// HandleGetStore returns one store by id
func (h *StoreHandler) HandleGetStore(c *gin.Context) {
	store, err := h.deliveryService.GetStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		log.Error().Err(err).Str("store_id", c.Param("id")).Msg("Failed to get store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get store"})
		return
	}
	c.JSON(http.StatusOK, store)
}

// HandleCreateStore creates a store
func (h *StoreHandler) HandleCreateStore(c *gin.Context) {
	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		log.Error().Err(err).Msg("Invalid store request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.deliveryService.CreateStore(c.Request.Context(), &store); err != nil {
		log.Error().Err(err).Str("store_id", store.StoreID).Msg("Failed to create store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/stores/%s", store.StoreID))
	c.JSON(http.StatusCreated, store)
}

// HandleUpdateStore replaces the mutable fields of a store
func (h *StoreHandler) HandleUpdateStore(c *gin.Context) {
	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		log.Error().Err(err).Msg("Invalid store request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.deliveryService.UpdateStore(c.Request.Context(), c.Param("id"), &store)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Store ID mismatch"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		default:
			log.Error().Err(err).Str("store_id", c.Param("id")).Msg("Failed to update store")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDeleteStore deletes a store
func (h *StoreHandler) HandleDeleteStore(c *gin.Context) {
	err := h.deliveryService.DeleteStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		log.Error().Err(err).Str("store_id", c.Param("id")).Msg("Failed to delete store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the handler's routes
func (h *StoreHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/stores")
	group.GET("", h.HandleListStores)
	group.GET("/:id", h.HandleGetStore)
	group.POST("", h.HandleCreateStore)
	group.PUT("/:id", h.HandleUpdateStore)
	group.DELETE("/:id", h.HandleDeleteStore)
}
