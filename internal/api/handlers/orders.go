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

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	deliveryService *services.DeliveryService
	tracer          tracing.Tracer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(deliveryService *services.DeliveryService, tracer tracing.Tracer) *OrderHandler {
	return &OrderHandler{
		deliveryService: deliveryService,
		tracer:          tracer,
	}
}

// AssignVehicleRequest carries the vehicle to assign to an order
type AssignVehicleRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
}

// HandleListOrders returns all orders
func (h *OrderHandler) HandleListOrders(c *gin.Context) {
	orders, err := h.deliveryService.ListOrders(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// HandleGetOrder returns one order by id
func (h *OrderHandler) HandleGetOrder(c *gin.Context) {
	order, err := h.deliveryService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Error().Err(err).Str("order_id", c.Param("id")).Msg("Failed to get order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// HandleListOrdersByCustomer returns the orders of one customer
func (h *OrderHandler) HandleListOrdersByCustomer(c *gin.Context) {
	orders, err := h.deliveryService.ListOrdersByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Error().Err(err).Str("customer_id", c.Param("customerId")).Msg("Failed to list customer orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customer orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// HandleCreateOrder creates an order
func (h *OrderHandler) HandleCreateOrder(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-order")
	defer h.tracer.EndTransaction(txn)

	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		log.Error().Err(err).Msg("Invalid order request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	h.tracer.AddAttribute(txn, "order_id", order.OrderID)
	h.tracer.AddAttribute(txn, "customer_id", order.CustomerID)

	err := h.deliveryService.CreateOrder(c.Request.Context(), &order)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCustomer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CustomerId: Customer does not exist."})
			return
		}
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		h.tracer.RecordError(txn, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/orders/%s", order.OrderID))
	c.JSON(http.StatusCreated, order)
}

// HandleUpdateOrder replaces the mutable fields of an order
func (h *OrderHandler) HandleUpdateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		log.Error().Err(err).Msg("Invalid order request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.deliveryService.UpdateOrder(c.Request.Context(), c.Param("id"), &order)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID mismatch"})
		case errors.Is(err, services.ErrInvalidCustomer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CustomerId: Customer does not exist."})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			log.Error().Err(err).Str("order_id", c.Param("id")).Msg("Failed to update order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAssignVehicle assigns a vehicle to an order and returns the updated order
func (h *OrderHandler) HandleAssignVehicle(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-assign-vehicle")
	defer h.tracer.EndTransaction(txn)

	var req AssignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid assign-vehicle request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		h.tracer.RecordError(txn, err)
		return
	}

	h.tracer.AddAttribute(txn, "order_id", c.Param("id"))
	h.tracer.AddAttribute(txn, "vehicle_id", req.VehicleID)

	order, err := h.deliveryService.AssignVehicle(c.Request.Context(), c.Param("id"), req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrInvalidVehicle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid VehicleId: Vehicle does not exist."})
		default:
			log.Error().Err(err).Str("order_id", c.Param("id")).Msg("Failed to assign vehicle")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign vehicle"})
			h.tracer.RecordError(txn, err)
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// HandleDeleteOrder deletes an order
func (h *OrderHandler) HandleDeleteOrder(c *gin.Context) {
	err := h.deliveryService.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Error().Err(err).Str("order_id", c.Param("id")).Msg("Failed to delete order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the handler's routes
func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/orders")
	group.GET("", h.HandleListOrders)
	group.GET("/:id", h.HandleGetOrder)
	group.GET("/customer/:customerId", h.HandleListOrdersByCustomer)
	group.POST("", h.HandleCreateOrder)
	group.POST("/:id/assign-vehicle", h.HandleAssignVehicle)
	group.PUT("/:id", h.HandleUpdateOrder)
	group.DELETE("/:id", h.HandleDeleteOrder)
}
