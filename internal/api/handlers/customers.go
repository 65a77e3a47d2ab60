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
	"github.com/amity-sujit/quadroute/internal/tracing"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	deliveryService *services.DeliveryService
	tracer          tracing.Tracer
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(deliveryService *services.DeliveryService, tracer tracing.Tracer) *CustomerHandler {
	return &CustomerHandler{
		deliveryService: deliveryService,
		tracer:          tracer,
	}
}

// HandleListCustomers returns all customers
func (h *CustomerHandler) HandleListCustomers(c *gin.Context) {
	customers, err := h.deliveryService.ListCustomers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list customers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// HandleGetCustomer returns one customer by id
func (h *CustomerHandler) HandleGetCustomer(c *gin.Context) {
	customer, err := h.deliveryService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Error().Err(err).Str("customer_id", c.Param("id")).Msg("Failed to get customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// HandleCreateCustomer creates a customer
func (h *CustomerHandler) HandleCreateCustomer(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-customer")
	defer h.tracer.EndTransaction(txn)

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Error().Err(err).Msg("Invalid customer request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	h.tracer.AddAttribute(txn, "customer_id", customer.CustomerID)

	if err := h.deliveryService.CreateCustomer(c.Request.Context(), &customer); err != nil {
		log.Error().Err(err).Str("customer_id", customer.CustomerID).Msg("Failed to create customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/customers/%s", customer.CustomerID))
	c.JSON(http.StatusCreated, customer)
}

// HandleUpdateCustomer replaces the mutable fields of a customer
func (h *CustomerHandler) HandleUpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Error().Err(err).Msg("Invalid customer request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.deliveryService.UpdateCustomer(c.Request.Context(), c.Param("id"), &customer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer ID mismatch"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		default:
			log.Error().Err(err).Str("customer_id", c.Param("id")).Msg("Failed to update customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleDeleteCustomer deletes a customer
func (h *CustomerHandler) HandleDeleteCustomer(c *gin.Context) {
	err := h.deliveryService.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Error().Err(err).Str("customer_id", c.Param("id")).Msg("Failed to delete customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the handler's routes
func (h *CustomerHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/customers")
	group.GET("", h.HandleListCustomers)
	group.GET("/:id", h.HandleGetCustomer)
	group.POST("", h.HandleCreateCustomer)
	group.PUT("/:id", h.HandleUpdateCustomer)
	group.DELETE("/:id", h.HandleDeleteCustomer)
}
