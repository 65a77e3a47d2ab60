package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/services"
)

// DairyHandler handles dairy distribution HTTP requests
type DairyHandler struct {
	dairyService *services.DairyService
}

// NewDairyHandler creates a new dairy handler
func NewDairyHandler(dairyService *services.DairyService) *DairyHandler {
	return &DairyHandler{dairyService: dairyService}
}

// AddressRequest carries a new address together with its customer link fields
type AddressRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	MobileNumber string  `json:"mobile_number" binding:"required"`
	Pincode      string  `json:"pincode" binding:"required,len=6,numeric"`
	FlatHouse    string  `json:"flat_house" binding:"required"`
	AreaStreet   string  `json:"area_street" binding:"required"`
	Landmark     *string `json:"landmark"`
	TownCity     string  `json:"town_city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	Country      string  `json:"country" binding:"required"`

	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
	DeliveryInstructions *string  `json:"delivery_instructions"`

	TimeSlotID int  `json:"time_slot_id" binding:"required"`
	IsDefault  bool `json:"is_default"`
}

// HandleCreateCustomer creates a dairy customer
func (h *DairyHandler) HandleCreateCustomer(c *gin.Context) {
	var customer models.DairyCustomer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Error().Err(err).Msg("Invalid dairy customer request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dairyService.CreateCustomer(c.Request.Context(), &customer); err != nil {
		log.Error().Err(err).Msg("Failed to create dairy customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/dairycustomers/%d", customer.CustomerID))
	c.JSON(http.StatusCreated, customer)
}

// HandleGetCustomer returns one dairy customer by id
func (h *DairyHandler) HandleGetCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	customer, err := h.dairyService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Error().Err(err).Int("customer_id", id).Msg("Failed to get dairy customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// HandleAddCustomerAddress stores an address and links it to a customer
func (h *DairyHandler) HandleAddCustomerAddress(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid address request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := &models.DairyAddress{
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
		Pincode:      req.Pincode,
		FlatHouse:    req.FlatHouse,
		AreaStreet:   req.AreaStreet,
		Landmark:     req.Landmark,
		TownCity:     req.TownCity,
		State:        req.State,
		Country:      req.Country,

		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		DeliveryInstructions: req.DeliveryInstructions,
	}

	created, err := h.dairyService.AddCustomerAddress(
		c.Request.Context(), customerID, address, req.TimeSlotID, req.IsDefault)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Error().Err(err).Int("customer_id", customerID).Msg("Failed to add customer address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add address"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/dairycustomers/%d/addresses/%d", customerID, created.AddressID))
	c.JSON(http.StatusCreated, created)
}

// HandleGetCustomerAddress returns one customer address link with its
// embedded address
func (h *DairyHandler) HandleGetCustomerAddress(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}
	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	link, err := h.dairyService.GetCustomerAddress(c.Request.Context(), customerID, addressID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		log.Error().Err(err).Int("customer_id", customerID).Int("address_id", addressID).
			Msg("Failed to get customer address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get address"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// HandleListTimeSlots returns all delivery time slots
func (h *DairyHandler) HandleListTimeSlots(c *gin.Context) {
	slots, err := h.dairyService.ListTimeSlots(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list time slots")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list time slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// RegisterRoutes registers the handler's routes
func (h *DairyHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/dairycustomers")
	group.POST("", h.HandleCreateCustomer)
	group.GET("/timeslots", h.HandleListTimeSlots)
	group.GET("/:customerId", h.HandleGetCustomer)
	group.POST("/:customerId/addresses", h.HandleAddCustomerAddress)
	group.GET("/:customerId/addresses/:addressId", h.HandleGetCustomerAddress)
}
